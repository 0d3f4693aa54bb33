package selection

import (
	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/relgraph"
)

// Final score bounds for a candidate.
const (
	MinScore = 0.1
	MaxScore = 5.0

	NeutralScore = 1.0
)

// ScoringCache is the shared context precomputed once per scoring batch:
// one relationship snapshot, one recent-success window, one plateau check.
type ScoringCache struct {
	RecentSuccesses []models.Problem
	Relationships   relgraph.Map
	IsPlateauing    bool
}

// UserState carries the caller's tag mastery map. Optional; scoring skips
// mastery alignment when absent.
type UserState struct {
	TagMastery map[string]models.TagMastery
}

// ScoredProblem pairs a candidate with its computed path score.
type ScoredProblem struct {
	Problem models.Problem `json:"problem"`
	Score   float64        `json:"score"`
}
