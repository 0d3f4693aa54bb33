package adaptive

import (
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// Machine is the difficulty progression state machine. Evaluation is a pure
// function over the session state, so it unit-tests without any store.
type Machine struct {
	config *Config
}

// NewMachine creates a progression machine.
func NewMachine(config *Config) *Machine {
	if config == nil {
		config = DefaultConfig()
	}
	if config.DemotionWindow <= 0 {
		config.DemotionWindow = DefaultConfig().DemotionWindow
	}
	return &Machine{config: config}
}

// DemotionWindow reports how many recent standard sessions the demotion
// check inspects.
func (m *Machine) DemotionWindow() int {
	return m.config.DemotionWindow
}

// Evaluate runs one completed session through the machine and returns the
// new state plus what was decided. The session's problem volume is folded
// into the per-difficulty stats before the gates read them, so volume
// accumulated across sessions eventually clears the promotion gates. The
// demotion check runs first and is independent of the promotion gates; the
// cap never moves more than one tier per evaluation.
func (m *Machine) Evaluate(state *models.SessionState, session models.PracticeSession, recentStandard []models.PracticeSession, now time.Time) (*models.SessionState, *Result) {
	next := cloneState(state)
	result := &Result{NewCap: next.CurrentDifficultyCap}

	foldSessionStats(next, session)
	accuracy := session.Accuracy

	if m.shouldDemote(next.CurrentDifficultyCap, recentStandard) {
		next.CurrentDifficultyCap = demote(next.CurrentDifficultyCap)
		next.EscapeHatches.SessionsAtCurrentDifficulty = 0
		next.EscapeHatches.SessionsWithoutPromotion = 0
		next.UpdatedAt = now
		result.Demoted = true
		result.NewCap = next.CurrentDifficultyCap
		return next, result
	}

	problemsAtDifficulty := next.DifficultyTimeStats[next.CurrentDifficultyCap].Problems

	reason := ""
	switch {
	case next.CurrentDifficultyCap == models.DifficultyHard:
		// Hard cannot promote further.
	case problemsAtDifficulty >= m.config.PromotionMinProblems && accuracy >= m.config.PromotionAccuracy:
		reason = models.ReasonStandardVolumeGate
	case problemsAtDifficulty >= m.config.StagnationProblems:
		// Anti-stall guarantee: enough volume promotes regardless of accuracy.
		reason = models.ReasonStagnationEscapeHatch
	}

	if reason != "" {
		next.CurrentDifficultyCap = promote(next.CurrentDifficultyCap)
		next.EscapeHatches.SessionsAtCurrentDifficulty = 0
		next.EscapeHatches.SessionsWithoutPromotion = 0
		next.EscapeHatches.LastPromotionTimestamp = now
		next.EscapeHatches.ActivatedEscapeHatches = []string{}
		if reason == models.ReasonStagnationEscapeHatch {
			next.EscapeHatches.ActivatedEscapeHatches = []string{models.ReasonStagnationEscapeHatch}
		}
		next.UpdatedAt = now
		result.Promoted = true
		result.Reason = reason
		result.NewCap = next.CurrentDifficultyCap
		return next, result
	}

	next.EscapeHatches.SessionsAtCurrentDifficulty++
	next.EscapeHatches.SessionsWithoutPromotion++
	next.UpdatedAt = now
	return next, result
}

// foldSessionStats accumulates the completed session's problem count and
// time into the stats bucket for its difficulty. Sessions with no recorded
// difficulty count against the current cap.
func foldSessionStats(state *models.SessionState, session models.PracticeSession) {
	if session.Attempts <= 0 {
		return
	}
	difficulty := session.Difficulty
	if difficulty == "" {
		difficulty = state.CurrentDifficultyCap
	}
	stats := state.DifficultyTimeStats[difficulty]
	stats.Problems += session.Attempts
	stats.TotalTime += session.TimeSpentMs
	stats.AvgTime = stats.TotalTime / int64(stats.Problems)
	state.DifficultyTimeStats[difficulty] = stats
}

// shouldDemote inspects the last completed standard sessions: exactly a full
// window, all below the demotion accuracy. Fewer than a full window never
// demotes, and Easy cannot demote further.
func (m *Machine) shouldDemote(cap string, recentStandard []models.PracticeSession) bool {
	if cap == models.DifficultyEasy {
		return false
	}
	if len(recentStandard) < m.config.DemotionWindow {
		return false
	}
	window := recentStandard[:m.config.DemotionWindow]
	for _, s := range window {
		if s.Accuracy >= m.config.DemotionAccuracy {
			return false
		}
	}
	return true
}

func promote(cap string) string {
	switch cap {
	case models.DifficultyEasy:
		return models.DifficultyMedium
	case models.DifficultyMedium:
		return models.DifficultyHard
	default:
		return cap
	}
}

func demote(cap string) string {
	switch cap {
	case models.DifficultyHard:
		return models.DifficultyMedium
	case models.DifficultyMedium:
		return models.DifficultyEasy
	default:
		return cap
	}
}

func cloneState(state *models.SessionState) *models.SessionState {
	next := *state
	next.DifficultyTimeStats = make(map[string]models.DifficultyTimeStats, len(state.DifficultyTimeStats))
	for k, v := range state.DifficultyTimeStats {
		next.DifficultyTimeStats[k] = v
	}
	next.EscapeHatches.ActivatedEscapeHatches = append([]string{}, state.EscapeHatches.ActivatedEscapeHatches...)
	return &next
}
