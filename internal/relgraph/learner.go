package relgraph

import "github.com/smithrashell/CodeMaster-sub007/internal/models"

// Transition deltas applied to a relationship when a recent success is
// followed by the completed attempt.
const (
	deltaStrongSuccess = 0.30
	deltaSlowSuccess   = 0.10
	deltaFailure       = -0.40
	deltaWeakSignal    = 0.05

	decayRate = 0.05
)

// RecentWindow bounds the learner's context: the most recent successful
// attempts pulled before each update.
const (
	RecentWindowSize = 5
	RecentWindowDays = 7
)

// TransitionDelta classifies a completed attempt against the recommended
// solve time for its difficulty.
func TransitionDelta(success bool, timeSpentMs, recommendedMs int64) float64 {
	switch {
	case success && timeSpentMs <= recommendedMs:
		return deltaStrongSuccess
	case success && float64(timeSpentMs) <= 1.3*float64(recommendedMs):
		return deltaSlowSuccess
	case !success || float64(timeSpentMs) > 1.5*float64(recommendedMs):
		return deltaFailure
	default:
		return deltaWeakSignal
	}
}

// ConfidenceMultiplier scales deltas by how much recent context exists.
// Fewer than 3 recent successes dilute the signal; it never drops below 0.3.
func ConfidenceMultiplier(recentCount int) float64 {
	denom := recentCount
	if denom < 3 {
		denom = 3
	}
	rate := float64(recentCount) / float64(denom)
	if rate < 0.3 {
		return 0.3
	}
	if rate > 1.0 {
		return 1.0
	}
	return rate
}

// UpdateStrength applies decay-to-neutral plus the confidence-scaled delta
// and clamps into the learned range. With no further signal, repeated decay
// converges any strength toward neutral 2.0.
func UpdateStrength(current, delta float64) float64 {
	decay := (models.NeutralRelationshipStrength - current) * decayRate
	return models.ClampStrength(current + decay + delta)
}

// LearnUpdates computes the relationship upserts triggered by one completed
// attempt, pairing each recent success with the completed problem. Returns
// nil when there is no recent context (no-op). Pure over the snapshot, so
// repeated calls with the same inputs produce the same upserts.
func LearnUpdates(completed models.Problem, attempt models.AttemptRecord, recent []models.AttemptRecord, snapshot Map) []models.ProblemRelationship {
	if len(recent) == 0 {
		return nil
	}

	recommended := models.RecommendedSolveTimeMs(completed.Difficulty)
	delta := TransitionDelta(attempt.Success, attempt.TimeSpentMs, recommended)
	delta *= ConfidenceMultiplier(len(recent))

	var updates []models.ProblemRelationship
	seen := make(map[string]bool, len(recent))
	for _, r := range recent {
		if r.ProblemID == "" || r.ProblemID == completed.ID || seen[r.ProblemID] {
			continue
		}
		seen[r.ProblemID] = true

		current := models.NeutralRelationshipStrength
		if s, ok := snapshot.Strength(r.ProblemID, completed.ID); ok {
			// Strengths from the initial build may sit outside the learned
			// range; the first update re-bounds them.
			current = models.ClampStrength(s)
		}

		updates = append(updates, models.ProblemRelationship{
			ProblemID1: r.ProblemID,
			ProblemID2: completed.ID,
			Strength:   UpdateStrength(current, delta),
		})
	}
	return updates
}
