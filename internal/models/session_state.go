package models

import "time"

// Escape hatch reason tags recorded on promotion.
const (
	ReasonStandardVolumeGate    = "standard_volume_gate"
	ReasonStagnationEscapeHatch = "stagnation_escape_hatch"
)

type DifficultyTimeStats struct {
	Problems  int   `bson:"problems" json:"problems"`
	TotalTime int64 `bson:"total_time" json:"total_time"`
	AvgTime   int64 `bson:"avg_time" json:"avg_time"`
}

type EscapeHatches struct {
	SessionsAtCurrentDifficulty int       `bson:"sessions_at_current_difficulty" json:"sessions_at_current_difficulty"`
	LastPromotionTimestamp      time.Time `bson:"last_promotion_timestamp" json:"last_promotion_timestamp"`
	SessionsWithoutPromotion    int       `bson:"sessions_without_promotion" json:"sessions_without_promotion"`
	ActivatedEscapeHatches      []string  `bson:"activated_escape_hatches" json:"activated_escape_hatches"`
}

// SessionState is the single per-user progression record, read-modify-written
// once per completed session.
type SessionState struct {
	ID                   string                         `bson:"_id,omitempty" json:"id"`
	UserID               string                         `bson:"user_id" json:"user_id"`
	CurrentDifficultyCap string                         `bson:"current_difficulty_cap" json:"current_difficulty_cap"`
	DifficultyTimeStats  map[string]DifficultyTimeStats `bson:"difficulty_time_stats" json:"difficulty_time_stats"`
	EscapeHatches        EscapeHatches                  `bson:"escape_hatches" json:"escape_hatches"`
	UpdatedAt            time.Time                      `bson:"updated_at" json:"updated_at"`
}

// NewSessionState returns the defaults created the first time a user is seen.
func NewSessionState(userID string) *SessionState {
	return &SessionState{
		UserID:               userID,
		CurrentDifficultyCap: DifficultyEasy,
		DifficultyTimeStats: map[string]DifficultyTimeStats{
			DifficultyEasy:   {},
			DifficultyMedium: {},
			DifficultyHard:   {},
		},
		EscapeHatches: EscapeHatches{
			ActivatedEscapeHatches: []string{},
		},
	}
}

// HasEscapeHatch reports whether a reason tag was already recorded at the
// current difficulty.
func (s *SessionState) HasEscapeHatch(reason string) bool {
	for _, r := range s.EscapeHatches.ActivatedEscapeHatches {
		if r == reason {
			return true
		}
	}
	return false
}
