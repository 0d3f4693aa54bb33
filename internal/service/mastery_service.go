package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/repository"
	"github.com/smithrashell/CodeMaster-sub007/internal/selection"
)

// MasteryService derives per-tag mastery from the attempt history joined
// with the tag graph's thresholds.
type MasteryService struct {
	Problems *repository.ProblemRepository
	Attempts *repository.AttemptRepository
	TagGraph *repository.TagRelationshipRepository
}

func NewMasteryService(
	problems *repository.ProblemRepository,
	attempts *repository.AttemptRepository,
	tagGraph *repository.TagRelationshipRepository,
) *MasteryService {
	return &MasteryService{Problems: problems, Attempts: attempts, TagGraph: tagGraph}
}

// ComputeTagMastery aggregates every recorded attempt per tag. A tag counts
// as mastered only when both its success rate clears the node's threshold
// and the attempt volume clears the node's minimum.
func (s *MasteryService) ComputeTagMastery(ctx context.Context) ([]models.TagMastery, error) {
	attempts, err := s.Attempts.FindRecent(ctx, 0, false, 0)
	if err != nil {
		return nil, fmt.Errorf("loading attempt history: %w", err)
	}
	problems, err := s.Problems.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	nodes, err := s.TagGraph.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tag graph: %w", err)
	}

	tagsByProblem := make(map[string][]string, len(problems))
	for _, p := range problems {
		tagsByProblem[p.ID] = p.Tags
	}
	nodeByTag := make(map[string]models.TagNode, len(nodes))
	for _, n := range nodes {
		nodeByTag[n.Tag] = n
	}

	type tally struct {
		attempts  int
		successes int
	}
	tallies := make(map[string]*tally)
	for _, a := range attempts {
		for _, tag := range tagsByProblem[a.ProblemID] {
			t, ok := tallies[tag]
			if !ok {
				t = &tally{}
				tallies[tag] = t
			}
			t.attempts++
			if a.Success {
				t.successes++
			}
		}
	}

	result := make([]models.TagMastery, 0, len(tallies))
	for tag, t := range tallies {
		rate := float64(t.successes) / float64(t.attempts)

		mastery := models.TagMastery{
			Tag:          tag,
			MasteryLevel: rate,
			Attempts:     t.attempts,
			SuccessRate:  rate,
			// Confidence grows with volume and saturates at 1.0.
			ConfidenceScore: confidenceFromVolume(t.attempts),
		}
		if node, ok := nodeByTag[tag]; ok {
			mastery.Mastered = rate >= node.MasteryThreshold && t.attempts >= node.MinAttemptsRequired
		}
		result = append(result, mastery)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Tag < result[j].Tag })
	return result, nil
}

// UserState packages the mastery map the way the session composer consumes
// it.
func (s *MasteryService) UserState(ctx context.Context) (*selection.UserState, error) {
	masteries, err := s.ComputeTagMastery(ctx)
	if err != nil {
		return nil, err
	}
	state := &selection.UserState{TagMastery: make(map[string]models.TagMastery, len(masteries))}
	for _, m := range masteries {
		state.TagMastery[m.Tag] = m
	}
	return state, nil
}

func confidenceFromVolume(attempts int) float64 {
	confidence := float64(attempts) / 10.0
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
