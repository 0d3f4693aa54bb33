package selection

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// Composer ranks candidate problems for the next practice session.
type Composer struct{}

// NewComposer creates a new session composer.
func NewComposer() *Composer {
	return &Composer{}
}

// SelectOptimalProblems scores every candidate against the shared cache and
// returns them sorted descending by score. A failure scoring one candidate
// substitutes the neutral score and continues; a degraded ranking beats
// blocking the user's practice flow.
func (c *Composer) SelectOptimalProblems(candidates []models.Problem, userState *UserState, cache *ScoringCache) []ScoredProblem {
	scored := make([]ScoredProblem, len(candidates))
	for i, candidate := range candidates {
		score, err := c.Score(candidate, userState, cache)
		if err != nil {
			log.Printf("scoring candidate %q failed, using neutral score: %v", candidate.ID, err)
			score = NeutralScore
		}
		scored[i] = ScoredProblem{Problem: candidate, Score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Score computes the optimal-path score for a single candidate, always
// within [0.1, 5.0] for valid input.
func (c *Composer) Score(candidate models.Problem, userState *UserState, cache *ScoringCache) (float64, error) {
	if candidate.ID == "" {
		return 0, fmt.Errorf("candidate has no id")
	}
	if cache == nil {
		return 0, fmt.Errorf("scoring cache is required")
	}

	score := NeutralScore

	score *= c.relationshipFactor(candidate, cache)

	if userState != nil && userState.TagMastery != nil {
		score *= c.masteryAlignment(candidate, userState)
	}

	score *= c.diversityBonus(candidate, cache)

	if cache.IsPlateauing {
		switch candidate.Difficulty {
		case models.DifficultyHard:
			score *= 1.2
		case models.DifficultyEasy:
			score *= 0.8
		}
	}

	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}

// relationshipFactor averages the learned edge strength from each recent
// success to the candidate, neutral 2.0 when no edge exists, normalized
// against the 3.0 midpoint.
func (c *Composer) relationshipFactor(candidate models.Problem, cache *ScoringCache) float64 {
	avg := models.NeutralRelationshipStrength
	if len(cache.RecentSuccesses) > 0 {
		total := 0.0
		for _, recent := range cache.RecentSuccesses {
			strength, ok := cache.Relationships.Strength(recent.ID, candidate.ID)
			if !ok {
				strength = models.NeutralRelationshipStrength
			}
			total += strength
		}
		avg = total / float64(len(cache.RecentSuccesses))
	}
	return avg / 3.0
}

// masteryAlignment multiplies per-tag adjustments: exploration of barely
// attempted tags is rewarded, mastered tags slightly discounted, weak tags
// deprioritized. The cumulative adjustment clamps to [0.5, 1.5].
func (c *Composer) masteryAlignment(candidate models.Problem, userState *UserState) float64 {
	alignment := 1.0
	matched := false

	for _, tag := range candidate.Tags {
		mastery, ok := userState.TagMastery[tag]
		if !ok {
			alignment *= 1.2
			continue
		}
		matched = true
		switch {
		case mastery.Mastered:
			alignment *= 0.95
		case mastery.SuccessRate > 0.7:
			alignment *= 1.2
		case mastery.SuccessRate > 0.4:
			alignment *= 1.3
		case mastery.Attempts < 3:
			alignment *= 1.4
		default:
			alignment *= 0.8
		}
	}

	if matched {
		alignment *= 1.1
	}

	if alignment < 0.5 {
		alignment = 0.5
	}
	if alignment > 1.5 {
		alignment = 1.5
	}
	return alignment
}

// diversityBonus favors candidates whose tags overlap little with the
// recent-success window.
func (c *Composer) diversityBonus(candidate models.Problem, cache *ScoringCache) float64 {
	if len(candidate.Tags) == 0 {
		return 1.3
	}

	recentTags := make(map[string]bool)
	for _, recent := range cache.RecentSuccesses {
		for _, tag := range recent.Tags {
			recentTags[strings.ToLower(tag)] = true
		}
	}

	overlap := 0
	for _, tag := range candidate.Tags {
		if recentTags[strings.ToLower(tag)] {
			overlap++
		}
	}

	ratio := float64(overlap) / float64(len(candidate.Tags))
	switch {
	case ratio <= 0.2:
		return 1.3
	case ratio <= 0.5:
		return 1.1
	case ratio <= 0.8:
		return 0.9
	default:
		return 0.7
	}
}

// DetectPlateau flags a stalled user: aggregate accuracy under 0.6 across
// the most recent 3 sessions, with at least one attempt recorded. Absence
// of data never counts as a plateau.
func DetectPlateau(sessions []models.PracticeSession) bool {
	if len(sessions) == 0 {
		return false
	}
	if len(sessions) > 3 {
		sessions = sessions[:3]
	}

	attempts, correct := 0, 0
	for _, s := range sessions {
		attempts += s.Attempts
		correct += s.Correct
	}
	if attempts == 0 {
		return false
	}
	return float64(correct)/float64(attempts) < 0.6
}
