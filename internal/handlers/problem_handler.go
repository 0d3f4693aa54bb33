package handlers

import (
	"context"
	"net/http"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProblemHandler struct {
	Problems *repository.ProblemRepository
	TagGraph *repository.TagRelationshipRepository
}

func NewProblemHandler(problems *repository.ProblemRepository, tagGraph *repository.TagRelationshipRepository) *ProblemHandler {
	return &ProblemHandler{Problems: problems, TagGraph: tagGraph}
}

// ListProblems returns the catalog, optionally filtered by ?tag=
func (h *ProblemHandler) ListProblems(c *gin.Context) {
	var (
		problems []models.Problem
		err      error
	)
	if tag := c.Query("tag"); tag != "" {
		problems, err = h.Problems.FindByTag(context.Background(), tag)
	} else {
		problems, err = h.Problems.FindAll(context.Background())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

// GetProblem retrieves one catalog entry
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	id := c.Param("id")
	problem, err := h.Problems.FindByID(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}
	c.JSON(http.StatusOK, problem)
}

// CreateProblem adds a catalog entry. The relationship graph picks it up on
// the next rebuild.
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var problem models.Problem
	if err := c.ShouldBindJSON(&problem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if problem.Difficulty != models.DifficultyEasy &&
		problem.Difficulty != models.DifficultyMedium &&
		problem.Difficulty != models.DifficultyHard {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be Easy, Medium or Hard"})
		return
	}
	if err := h.Problems.Create(context.Background(), &problem); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, problem)
}

// ListTags returns the tag graph nodes with their classifications
func (h *ProblemHandler) ListTags(c *gin.Context) {
	nodes, err := h.TagGraph.FindAll(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": nodes})
}
