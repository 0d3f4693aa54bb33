package adaptive

import (
	"testing"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

func stateAt(cap string, problemsAtCap int) *models.SessionState {
	state := models.NewSessionState("user-1")
	state.CurrentDifficultyCap = cap
	stats := state.DifficultyTimeStats[cap]
	stats.Problems = problemsAtCap
	state.DifficultyTimeStats[cap] = stats
	return state
}

func sessionOf(accuracy float64) models.PracticeSession {
	return models.PracticeSession{
		SessionType: models.SessionTypeStandard,
		Accuracy:    accuracy,
	}
}

func lowAccuracyWindow(accuracies ...float64) []models.PracticeSession {
	sessions := make([]models.PracticeSession, len(accuracies))
	for i, a := range accuracies {
		sessions[i] = models.PracticeSession{
			SessionType: models.SessionTypeStandard,
			Attempts:    10,
			Correct:     int(a * 10),
			Accuracy:    a,
		}
	}
	return sessions
}

func TestStandardPromotionGate(t *testing.T) {
	machine := NewMachine(nil)
	now := time.Now()

	next, result := machine.Evaluate(stateAt(models.DifficultyEasy, 4), sessionOf(0.85), nil, now)

	if !result.Promoted {
		t.Fatal("Expected promotion")
	}
	if result.Reason != models.ReasonStandardVolumeGate {
		t.Errorf("Expected reason %s, got %s", models.ReasonStandardVolumeGate, result.Reason)
	}
	if next.CurrentDifficultyCap != models.DifficultyMedium {
		t.Errorf("Expected cap Medium, got %s", next.CurrentDifficultyCap)
	}
	if next.EscapeHatches.SessionsAtCurrentDifficulty != 0 {
		t.Errorf("Expected sessions at difficulty reset, got %d", next.EscapeHatches.SessionsAtCurrentDifficulty)
	}
	if len(next.EscapeHatches.ActivatedEscapeHatches) != 0 {
		t.Errorf("Expected escape hatches cleared, got %v", next.EscapeHatches.ActivatedEscapeHatches)
	}
	if !next.EscapeHatches.LastPromotionTimestamp.Equal(now) {
		t.Error("Expected promotion timestamp recorded")
	}
}

func TestStagnationEscapeHatch(t *testing.T) {
	machine := NewMachine(nil)

	next, result := machine.Evaluate(stateAt(models.DifficultyMedium, 9), sessionOf(0.3), nil, time.Now())

	if !result.Promoted {
		t.Fatal("Expected stagnation promotion despite low accuracy")
	}
	if result.Reason != models.ReasonStagnationEscapeHatch {
		t.Errorf("Expected reason %s, got %s", models.ReasonStagnationEscapeHatch, result.Reason)
	}
	if next.CurrentDifficultyCap != models.DifficultyHard {
		t.Errorf("Expected cap Hard, got %s", next.CurrentDifficultyCap)
	}
	if !next.HasEscapeHatch(models.ReasonStagnationEscapeHatch) {
		t.Error("Expected stagnation hatch recorded")
	}
}

func TestStagnationOnlyWhenStandardGateUnmet(t *testing.T) {
	machine := NewMachine(nil)

	// Meets both volume gates; the standard gate takes precedence.
	_, result := machine.Evaluate(stateAt(models.DifficultyEasy, 9), sessionOf(0.9), nil, time.Now())
	if result.Reason != models.ReasonStandardVolumeGate {
		t.Errorf("Expected standard gate, got %s", result.Reason)
	}

	// Volume below the stagnation bar and accuracy below the gate: no promotion.
	_, result = machine.Evaluate(stateAt(models.DifficultyEasy, 7), sessionOf(0.5), nil, time.Now())
	if result.Promoted {
		t.Error("Expected no promotion below both gates")
	}
}

func TestHardCannotPromote(t *testing.T) {
	machine := NewMachine(nil)

	next, result := machine.Evaluate(stateAt(models.DifficultyHard, 20), sessionOf(1.0), nil, time.Now())
	if result.Promoted {
		t.Error("Hard must not promote further")
	}
	if next.CurrentDifficultyCap != models.DifficultyHard {
		t.Errorf("Expected cap unchanged, got %s", next.CurrentDifficultyCap)
	}
}

func TestCapNeverSkipsTier(t *testing.T) {
	machine := NewMachine(nil)

	next, _ := machine.Evaluate(stateAt(models.DifficultyEasy, 50), sessionOf(1.0), nil, time.Now())
	if next.CurrentDifficultyCap == models.DifficultyHard {
		t.Error("Easy promoted straight to Hard")
	}
	if next.CurrentDifficultyCap != models.DifficultyMedium {
		t.Errorf("Expected Medium, got %s", next.CurrentDifficultyCap)
	}
}

func TestDemotionRequiresFullWindow(t *testing.T) {
	machine := NewMachine(nil)

	_, result := machine.Evaluate(stateAt(models.DifficultyHard, 0), sessionOf(0.4), lowAccuracyWindow(0.4, 0.3), time.Now())
	if result.Demoted {
		t.Error("Two analyzed sessions must never demote")
	}
}

func TestDemotionAfterThreeBadSessions(t *testing.T) {
	machine := NewMachine(nil)

	next, result := machine.Evaluate(stateAt(models.DifficultyHard, 0), sessionOf(0.4), lowAccuracyWindow(0.4, 0.3, 0.45), time.Now())
	if !result.Demoted {
		t.Fatal("Expected demotion after three sub-0.5 sessions")
	}
	if next.CurrentDifficultyCap != models.DifficultyMedium {
		t.Errorf("Expected demotion Hard->Medium, got %s", next.CurrentDifficultyCap)
	}
	if next.EscapeHatches.SessionsAtCurrentDifficulty != 0 {
		t.Errorf("Expected sessions at difficulty reset, got %d", next.EscapeHatches.SessionsAtCurrentDifficulty)
	}
}

func TestDemotionSkippedWhenOneSessionHealthy(t *testing.T) {
	machine := NewMachine(nil)

	_, result := machine.Evaluate(stateAt(models.DifficultyMedium, 0), sessionOf(0.4), lowAccuracyWindow(0.4, 0.6, 0.3), time.Now())
	if result.Demoted {
		t.Error("One healthy session in the window must block demotion")
	}
}

func TestEasyCannotDemote(t *testing.T) {
	machine := NewMachine(nil)

	next, result := machine.Evaluate(stateAt(models.DifficultyEasy, 0), sessionOf(0.1), lowAccuracyWindow(0.1, 0.1, 0.1), time.Now())
	if result.Demoted {
		t.Error("Easy must not demote")
	}
	if next.CurrentDifficultyCap != models.DifficultyEasy {
		t.Errorf("Expected cap Easy, got %s", next.CurrentDifficultyCap)
	}
}

func TestNoPromotionIncrementsCounters(t *testing.T) {
	machine := NewMachine(nil)

	state := stateAt(models.DifficultyMedium, 2)
	state.EscapeHatches.SessionsAtCurrentDifficulty = 3
	state.EscapeHatches.SessionsWithoutPromotion = 5

	next, result := machine.Evaluate(state, sessionOf(0.6), nil, time.Now())
	if result.Promoted || result.Demoted {
		t.Fatal("Expected no cap change")
	}
	if next.EscapeHatches.SessionsAtCurrentDifficulty != 4 {
		t.Errorf("Expected sessions at difficulty 4, got %d", next.EscapeHatches.SessionsAtCurrentDifficulty)
	}
	if next.EscapeHatches.SessionsWithoutPromotion != 6 {
		t.Errorf("Expected sessions without promotion 6, got %d", next.EscapeHatches.SessionsWithoutPromotion)
	}
}

func TestSessionVolumeAdvancesPromotionGate(t *testing.T) {
	machine := NewMachine(nil)

	session := models.PracticeSession{
		SessionType: models.SessionTypeStandard,
		Difficulty:  models.DifficultyEasy,
		Attempts:    4,
		Correct:     4,
		Accuracy:    1.0,
		TimeSpentMs: 4_000_000,
	}

	next, result := machine.Evaluate(models.NewSessionState("user-1"), session, nil, time.Now())

	if !result.Promoted {
		t.Fatal("Expected a single 4-problem session to clear the standard gate")
	}
	stats := next.DifficultyTimeStats[models.DifficultyEasy]
	if stats.Problems != 4 {
		t.Errorf("Expected 4 problems folded into Easy stats, got %d", stats.Problems)
	}
	if stats.TotalTime != 4_000_000 {
		t.Errorf("Expected total time 4000000, got %d", stats.TotalTime)
	}
	if stats.AvgTime != 1_000_000 {
		t.Errorf("Expected avg time 1000000, got %d", stats.AvgTime)
	}
}

func TestPerfectSessionsNeverStallAtEasy(t *testing.T) {
	machine := NewMachine(nil)
	state := models.NewSessionState("user-1")

	for i := 0; i < 20; i++ {
		session := models.PracticeSession{
			SessionType: models.SessionTypeStandard,
			Difficulty:  state.CurrentDifficultyCap,
			Attempts:    2,
			Correct:     2,
			Accuracy:    1.0,
		}
		state, _ = machine.Evaluate(state, session, nil, time.Now())
	}

	if state.CurrentDifficultyCap != models.DifficultyHard {
		t.Errorf("Expected 20 perfect sessions to reach Hard, got %s", state.CurrentDifficultyCap)
	}
	if state.EscapeHatches.SessionsWithoutPromotion >= 20 {
		t.Errorf("Promotion counter never reset: %d", state.EscapeHatches.SessionsWithoutPromotion)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	machine := NewMachine(nil)

	state := stateAt(models.DifficultyEasy, 4)
	session := sessionOf(0.85)
	session.Attempts = 3
	machine.Evaluate(state, session, nil, time.Now())

	if state.CurrentDifficultyCap != models.DifficultyEasy {
		t.Error("Evaluate mutated the input state")
	}
	if state.EscapeHatches.SessionsAtCurrentDifficulty != 0 {
		t.Error("Evaluate mutated input escape hatches")
	}
	if state.DifficultyTimeStats[models.DifficultyEasy].Problems != 4 {
		t.Error("Evaluate mutated input difficulty stats")
	}
}
