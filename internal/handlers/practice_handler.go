package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/adaptive"
	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/selection"
	"github.com/smithrashell/CodeMaster-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

type PracticeHandler struct {
	Service        *service.PracticeService
	MasteryService *service.MasteryService
}

func NewPracticeHandler(s *service.PracticeService, ms *service.MasteryService) *PracticeHandler {
	return &PracticeHandler{
		Service:        s,
		MasteryService: ms,
	}
}

// RebuildGraph runs the full batch rebuild of the tag and relationship graphs
func (h *PracticeHandler) RebuildGraph(c *gin.Context) {
	if err := h.Service.BuildProblemRelationships(context.Background()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to rebuild problem graph",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Problem graph rebuilt"})
}

// RecordAttempt stores one attempt and feeds it to the pattern learner
func (h *PracticeHandler) RecordAttempt(c *gin.Context) {
	var req struct {
		ProblemID   string `json:"problem_id" binding:"required"`
		LeetcodeID  string `json:"leetcode_id"`
		Success     bool   `json:"success"`
		TimeSpentMs int64  `json:"time_spent_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if req.TimeSpentMs < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_spent_ms must not be negative"})
		return
	}

	attempt := &models.AttemptRecord{
		ProblemID:   req.ProblemID,
		LeetcodeID:  req.LeetcodeID,
		Success:     req.Success,
		TimeSpentMs: req.TimeSpentMs,
		AttemptDate: time.Now(),
	}
	if err := h.Service.RecordAttempt(context.Background(), attempt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to record attempt",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// ComposeSession ranks the supplied candidate problems for the next practice
// session. Candidates may be given by id or resolved from a tag.
func (h *PracticeHandler) ComposeSession(c *gin.Context) {
	var req struct {
		ProblemIDs []string `json:"problem_ids"`
		Tag        string   `json:"tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := c.GetHeader("X-User-ID")
	ctx := context.Background()

	candidates, err := h.resolveCandidates(ctx, req.ProblemIDs, req.Tag)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load candidates",
			"details": err.Error(),
		})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"problems": []selection.ScoredProblem{}})
		return
	}

	userState, err := h.MasteryService.UserState(ctx)
	if err != nil {
		// Scoring works without mastery alignment, keep going.
		userState = nil
	}

	scored := h.Service.SelectOptimalProblems(ctx, userID, candidates, userState)
	c.JSON(http.StatusOK, gin.H{"problems": scored})
}

// CompleteSession records a finished session and runs the difficulty
// progression evaluation.
func (h *PracticeHandler) CompleteSession(c *gin.Context) {
	var req struct {
		SessionType string `json:"session_type"`
		Difficulty  string `json:"difficulty"`
		Attempts    int    `json:"attempts" binding:"required"`
		Correct     int    `json:"correct"`
		TimeSpentMs int64  `json:"time_spent_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if req.Correct > req.Attempts {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct cannot exceed attempts"})
		return
	}

	session := &models.PracticeSession{
		UserID:      c.GetHeader("X-User-ID"),
		SessionType: req.SessionType,
		Difficulty:  req.Difficulty,
		Attempts:    req.Attempts,
		Correct:     req.Correct,
		TimeSpentMs: req.TimeSpentMs,
		CompletedAt: time.Now(),
	}

	state, result, err := h.Service.CompleteSession(context.Background(), session, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to complete session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":      state,
		"progressed": result,
	})
}

// EvaluateProgression runs the progression machine on an accuracy value
// without recording a session, useful for previews.
func (h *PracticeHandler) EvaluateProgression(c *gin.Context) {
	var req struct {
		Accuracy *float64         `json:"accuracy" binding:"required"`
		Config   *adaptive.Config `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if *req.Accuracy < 0 || *req.Accuracy > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accuracy must be between 0 and 1"})
		return
	}

	userID := c.GetHeader("X-User-ID")
	// Accuracy-only preview session; no volume is folded into the stats.
	session := models.PracticeSession{
		SessionType: models.SessionTypeStandard,
		Accuracy:    *req.Accuracy,
	}
	state, result, err := h.Service.EvaluateDifficultyProgression(context.Background(), userID, session, req.Config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to evaluate progression",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":      state,
		"progressed": result,
	})
}

// GetProgressionState returns the caller's current difficulty state
func (h *PracticeHandler) GetProgressionState(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	state, err := h.Service.SessionState.Get(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load session state",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetReviewSchedule returns today's spaced-repetition queue
func (h *PracticeHandler) GetReviewSchedule(c *gin.Context) {
	length := 5
	if raw := c.Query("length"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "length must be a positive integer"})
			return
		}
		length = parsed
	}

	userID := c.GetHeader("X-User-ID")
	problems, err := h.Service.GetDailyReviewSchedule(context.Background(), userID, length)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to build review schedule",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

// GetRelatedProblems returns the problem's outgoing relationship edges,
// strongest first.
func (h *PracticeHandler) GetRelatedProblems(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Service.Problems.FindByID(context.Background(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}

	relationships, err := h.Service.Relationships.FindBySource(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load relationships",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": relationships})
}

// GetMastery returns per-tag mastery derived from the attempt history
func (h *PracticeHandler) GetMastery(c *gin.Context) {
	masteries, err := h.MasteryService.ComputeTagMastery(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute tag mastery",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": masteries})
}

func (h *PracticeHandler) resolveCandidates(ctx context.Context, problemIDs []string, tag string) ([]models.Problem, error) {
	if len(problemIDs) > 0 {
		candidates := make([]models.Problem, 0, len(problemIDs))
		for _, id := range problemIDs {
			problem, err := h.Service.Problems.FindByID(ctx, id)
			if err != nil {
				continue
			}
			candidates = append(candidates, *problem)
		}
		return candidates, nil
	}
	if tag != "" {
		return h.Service.Problems.FindByTag(ctx, tag)
	}
	return h.Service.Problems.FindAll(ctx)
}
