package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/adaptive"
	"github.com/smithrashell/CodeMaster-sub007/internal/cache"
	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/relgraph"
	"github.com/smithrashell/CodeMaster-sub007/internal/repository"
	"github.com/smithrashell/CodeMaster-sub007/internal/scheduler"
	"github.com/smithrashell/CodeMaster-sub007/internal/selection"
	"github.com/smithrashell/CodeMaster-sub007/internal/taggraph"
)

// PracticeService composes the storage collaborators with the engine
// packages. All engine math is pure; this layer owns every read and write.
type PracticeService struct {
	Problems      *repository.ProblemRepository
	Attempts      *repository.AttemptRepository
	Relationships *repository.RelationshipRepository
	TagGraph      *repository.TagRelationshipRepository
	SessionState  *repository.SessionStateRepository
	Analytics     *repository.SessionAnalyticsRepository
	Reviews       *repository.ReviewRepository

	snapshots *cache.SnapshotCache
	composer  *selection.Composer
	machine   *adaptive.Machine
}

func NewPracticeService(
	problems *repository.ProblemRepository,
	attempts *repository.AttemptRepository,
	relationships *repository.RelationshipRepository,
	tagGraph *repository.TagRelationshipRepository,
	sessionState *repository.SessionStateRepository,
	analytics *repository.SessionAnalyticsRepository,
	reviews *repository.ReviewRepository,
	snapshots *cache.SnapshotCache,
) *PracticeService {
	return &PracticeService{
		Problems:      problems,
		Attempts:      attempts,
		Relationships: relationships,
		TagGraph:      tagGraph,
		SessionState:  sessionState,
		Analytics:     analytics,
		Reviews:       reviews,
		snapshots:     snapshots,
		composer:      selection.NewComposer(),
		machine:       adaptive.NewMachine(nil), // default progression gates
	}
}

// BuildProblemRelationships runs the full batch rebuild: tag graph, tag
// classification, relationship build/trim/restore, then clear-then-rewrite
// persistence. Callers must treat it as an exclusive job and never run it
// concurrently with session composition. Each rewrite is retried once; a
// second failure propagates so the caller keeps the stale graph instead of
// a half-rebuilt one.
func (s *PracticeService) BuildProblemRelationships(ctx context.Context) error {
	problems, err := s.Problems.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	nodes := taggraph.BuildNodes(problems)
	if err := retryOnce(func() error { return s.TagGraph.ReplaceAll(ctx, nodes) }); err != nil {
		return fmt.Errorf("rewriting tag graph: %w", err)
	}

	similarity := taggraph.NewSimilarity(nodes)
	result := relgraph.Build(problems, similarity.Score, relgraph.DefaultEdgeLimit)

	if err := retryOnce(func() error { return s.Relationships.ReplaceAll(ctx, result.Retained) }); err != nil {
		return fmt.Errorf("rewriting relationships: %w", err)
	}

	if s.snapshots != nil {
		s.snapshots.Invalidate(ctx)
	}

	log.Printf("Rebuilt problem graph: %d problems, %d tags, %d edges retained, %d sources with overflow",
		len(problems), len(nodes), len(result.Retained), len(result.Removed))
	return nil
}

// RecordAttempt appends the attempt, moves the problem's Leitner box, and
// feeds the pattern learner.
func (s *PracticeService) RecordAttempt(ctx context.Context, attempt *models.AttemptRecord) error {
	if attempt == nil || attempt.ProblemID == "" {
		log.Printf("Warning: ignoring attempt with no problem id")
		return nil
	}
	if attempt.AttemptDate.IsZero() {
		attempt.AttemptDate = time.Now()
	}
	if err := s.Attempts.Insert(ctx, attempt); err != nil {
		return fmt.Errorf("recording attempt: %w", err)
	}
	s.advanceReview(ctx, attempt)
	return s.UpdateSuccessPatterns(ctx, attempt.ProblemID, attempt)
}

// advanceReview updates the problem's spaced-repetition state. Failures here
// never block attempt recording.
func (s *PracticeService) advanceReview(ctx context.Context, attempt *models.AttemptRecord) {
	item, err := s.Reviews.FindByProblemID(ctx, attempt.ProblemID)
	if err != nil {
		log.Printf("Review item for %s unavailable, skipping box update: %v", attempt.ProblemID, err)
		return
	}
	next := scheduler.Advance(*item, attempt.Success, attempt.AttemptDate)
	if err := s.Reviews.Upsert(ctx, &next); err != nil {
		log.Printf("Failed to save review item for %s: %v", attempt.ProblemID, err)
	}
}

// UpdateSuccessPatterns adjusts relationship strengths from one completed
// attempt. Invalid input no-ops with a warning; per-edge write failures are
// logged and skipped so one bad record never blocks the rest of the batch.
func (s *PracticeService) UpdateSuccessPatterns(ctx context.Context, problemID string, attempt *models.AttemptRecord) error {
	if problemID == "" || attempt == nil {
		log.Printf("Warning: updateSuccessPatterns called with missing input, skipping")
		return nil
	}
	if attempt.TimeSpentMs < 0 {
		log.Printf("Warning: attempt on %s has negative time spent, skipping", problemID)
		return nil
	}

	problem, err := s.Problems.FindByID(ctx, problemID)
	if err != nil {
		return fmt.Errorf("loading problem %s: %w", problemID, err)
	}

	recent, err := s.Attempts.FindRecent(ctx, relgraph.RecentWindowSize, true, relgraph.RecentWindowDays)
	if err != nil {
		return fmt.Errorf("loading recent attempts: %w", err)
	}

	snapshot := s.relationshipSnapshot(ctx)
	updates := relgraph.LearnUpdates(*problem, *attempt, recent, snapshot)
	if len(updates) == 0 {
		return nil
	}

	applied := 0
	for i := range updates {
		if err := s.Relationships.Upsert(ctx, &updates[i]); err != nil {
			log.Printf("Failed to upsert relationship %s->%s: %v",
				updates[i].ProblemID1, updates[i].ProblemID2, err)
			continue
		}
		applied++
	}
	if applied > 0 && s.snapshots != nil {
		s.snapshots.Invalidate(ctx)
	}
	return nil
}

// SelectOptimalProblems ranks the candidates for the next session. The
// shared scoring context is computed once per batch; if it cannot be built
// at all, the candidates come back in input order rather than failing the
// user's practice flow.
func (s *PracticeService) SelectOptimalProblems(ctx context.Context, userID string, candidates []models.Problem, userState *selection.UserState) []selection.ScoredProblem {
	scoringCache, err := s.buildScoringCache(ctx, userID)
	if err != nil {
		log.Printf("Scoring pipeline degraded, returning candidates unsorted: %v", err)
		fallback := make([]selection.ScoredProblem, len(candidates))
		for i, c := range candidates {
			fallback[i] = selection.ScoredProblem{Problem: c, Score: selection.NeutralScore}
		}
		return fallback
	}
	return s.composer.SelectOptimalProblems(candidates, userState, scoringCache)
}

// EvaluateDifficultyProgression runs one completed session through the
// progression machine and persists the new state.
func (s *PracticeService) EvaluateDifficultyProgression(ctx context.Context, userID string, session models.PracticeSession, config *adaptive.Config) (*models.SessionState, *adaptive.Result, error) {
	state, err := s.SessionState.Get(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session state: %w", err)
	}

	machine := s.machine
	if config != nil {
		machine = adaptive.NewMachine(config)
	}

	window := machine.DemotionWindow()
	recentStandard, err := s.Analytics.FindRecent(ctx, userID, window, true)
	if err != nil {
		return nil, nil, fmt.Errorf("loading recent sessions: %w", err)
	}

	next, result := machine.Evaluate(state, session, recentStandard, time.Now())
	if err := s.SessionState.Put(ctx, next); err != nil {
		return nil, nil, fmt.Errorf("saving session state: %w", err)
	}
	return next, result, nil
}

// GetDailyReviewSchedule picks at most sessionLength review problems within
// the user's difficulty cap, ascending by scheduled review date.
func (s *PracticeService) GetDailyReviewSchedule(ctx context.Context, userID string, sessionLength int) ([]models.Problem, error) {
	state, err := s.SessionState.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading session state: %w", err)
	}

	items, err := s.Reviews.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading review items: %w", err)
	}
	problems, err := s.Problems.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	byID := make(map[string]models.Problem, len(problems))
	for _, p := range problems {
		byID[p.ID] = p
	}

	candidates := make([]scheduler.ReviewCandidate, 0, len(items))
	for _, item := range items {
		problem, ok := byID[item.ProblemID]
		if !ok {
			continue
		}
		candidates = append(candidates, scheduler.ReviewCandidate{Problem: problem, Review: item})
	}

	return scheduler.DailySchedule(candidates, state.CurrentDifficultyCap, sessionLength, time.Now()), nil
}

// CompleteSession records the session summary and evaluates progression in
// one step.
func (s *PracticeService) CompleteSession(ctx context.Context, session *models.PracticeSession, config *adaptive.Config) (*models.SessionState, *adaptive.Result, error) {
	if session.SessionType == "" {
		session.SessionType = models.SessionTypeStandard
	}
	if session.CompletedAt.IsZero() {
		session.CompletedAt = time.Now()
	}
	if session.Attempts > 0 {
		session.Accuracy = float64(session.Correct) / float64(session.Attempts)
	}
	if err := s.Analytics.Insert(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("recording session: %w", err)
	}
	return s.EvaluateDifficultyProgression(ctx, session.UserID, *session, config)
}

// buildScoringCache assembles the per-batch context: one relationship
// snapshot, the recent-success window resolved to problems, one plateau
// check.
func (s *PracticeService) buildScoringCache(ctx context.Context, userID string) (*selection.ScoringCache, error) {
	recent, err := s.Attempts.FindRecent(ctx, relgraph.RecentWindowSize, true, relgraph.RecentWindowDays)
	if err != nil {
		return nil, fmt.Errorf("loading recent attempts: %w", err)
	}

	recentProblems := make([]models.Problem, 0, len(recent))
	for _, a := range recent {
		problem, err := s.Problems.FindByID(ctx, a.ProblemID)
		if err != nil {
			log.Printf("Skipping recent success %s in scoring cache: %v", a.ProblemID, err)
			continue
		}
		recentProblems = append(recentProblems, *problem)
	}

	sessions, err := s.Analytics.FindRecent(ctx, userID, 3, false)
	if err != nil {
		return nil, fmt.Errorf("loading recent sessions: %w", err)
	}

	return &selection.ScoringCache{
		RecentSuccesses: recentProblems,
		Relationships:   s.relationshipSnapshot(ctx),
		IsPlateauing:    selection.DetectPlateau(sessions),
	}, nil
}

// relationshipSnapshot reads the full relationship map, through the redis
// cache when available. An empty map is a valid snapshot: scoring falls
// back to neutral strengths.
func (s *PracticeService) relationshipSnapshot(ctx context.Context) relgraph.Map {
	if s.snapshots != nil {
		if rels, ok := s.snapshots.GetRelationships(ctx); ok {
			return relgraph.NewMap(rels)
		}
	}

	rels, err := s.Relationships.FindAll(ctx)
	if err != nil {
		log.Printf("Relationship snapshot unavailable, scoring with neutral strengths: %v", err)
		return relgraph.Map{}
	}
	if s.snapshots != nil {
		s.snapshots.SetRelationships(ctx, rels)
	}
	return relgraph.NewMap(rels)
}

func retryOnce(op func() error) error {
	if err := op(); err != nil {
		log.Printf("Batch write failed, retrying once: %v", err)
		return op()
	}
	return nil
}
