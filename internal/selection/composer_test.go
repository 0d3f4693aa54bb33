package selection

import (
	"math"
	"testing"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
	"github.com/smithrashell/CodeMaster-sub007/internal/relgraph"
)

func abs(x float64) float64 {
	return math.Abs(x)
}

func emptyCache() *ScoringCache {
	return &ScoringCache{Relationships: relgraph.Map{}}
}

func TestScoreWithinBounds(t *testing.T) {
	composer := NewComposer()

	candidates := []models.Problem{
		{ID: "a", Difficulty: models.DifficultyEasy, Tags: []string{"array"}},
		{ID: "b", Difficulty: models.DifficultyHard, Tags: []string{"dynamic-programming", "graph"}},
		{ID: "c", Difficulty: models.DifficultyMedium},
	}
	caches := []*ScoringCache{
		emptyCache(),
		{
			RecentSuccesses: []models.Problem{{ID: "r", Tags: []string{"array"}}},
			Relationships: relgraph.NewMap([]models.ProblemRelationship{
				{ProblemID1: "r", ProblemID2: "a", Strength: 5.0},
			}),
			IsPlateauing: true,
		},
	}
	states := []*UserState{
		nil,
		{TagMastery: map[string]models.TagMastery{
			"array": {Tag: "array", SuccessRate: 0.9, Attempts: 20},
		}},
	}

	for _, cache := range caches {
		for _, state := range states {
			for _, candidate := range candidates {
				score, err := composer.Score(candidate, state, cache)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if score < MinScore || score > MaxScore {
					t.Errorf("Score %.3f for %s outside [0.1,5.0]", score, candidate.ID)
				}
			}
		}
	}
}

func TestRelationshipFactor(t *testing.T) {
	composer := NewComposer()

	cache := &ScoringCache{
		RecentSuccesses: []models.Problem{{ID: "r1"}, {ID: "r2"}},
		Relationships: relgraph.NewMap([]models.ProblemRelationship{
			{ProblemID1: "r1", ProblemID2: "cand", Strength: 4.0},
			// r2 has no edge to cand: defaults to neutral 2.0.
		}),
	}

	got := composer.relationshipFactor(models.Problem{ID: "cand"}, cache)
	expected := ((4.0 + 2.0) / 2) / 3.0
	if abs(got-expected) > 0.0001 {
		t.Errorf("Expected factor %.3f, got %.3f", expected, got)
	}
}

func TestDiversityBonus(t *testing.T) {
	composer := NewComposer()

	recent := []models.Problem{
		{ID: "r", Tags: []string{"t1", "t2", "t3", "t4"}},
	}

	testCases := []struct {
		name     string
		tags     []string
		expected float64
	}{
		{"no overlap", []string{"x1", "x2", "x3", "x4", "x5"}, 1.3},
		{"low overlap", []string{"t1", "x2", "x3", "x4", "x5"}, 1.3},  // 1/5 = 0.2
		{"moderate overlap", []string{"t1", "t2", "x3", "x4"}, 1.1},   // 2/4 = 0.5
		{"high overlap", []string{"t1", "t2", "t3", "t4", "x5"}, 0.9}, // 4/5 = 0.8
		{"full overlap", []string{"t1", "t2", "t3"}, 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache := &ScoringCache{RecentSuccesses: recent, Relationships: relgraph.Map{}}
			got := composer.diversityBonus(models.Problem{ID: "c", Tags: tc.tags}, cache)
			if abs(got-tc.expected) > 0.0001 {
				t.Errorf("Expected %.1f, got %.1f", tc.expected, got)
			}
		})
	}
}

func TestMasteryAlignment(t *testing.T) {
	composer := NewComposer()

	state := &UserState{TagMastery: map[string]models.TagMastery{
		"mastered-tag": {Mastered: true, SuccessRate: 0.95, Attempts: 30},
		"strong-tag":   {SuccessRate: 0.8, Attempts: 10},
		"learning-tag": {SuccessRate: 0.5, Attempts: 8},
		"new-tag":      {SuccessRate: 0.0, Attempts: 1},
		"weak-tag":     {SuccessRate: 0.2, Attempts: 12},
	}}

	testCases := []struct {
		name     string
		tags     []string
		expected float64
	}{
		{"mastered", []string{"mastered-tag"}, 0.95 * 1.1},
		{"strong", []string{"strong-tag"}, 1.2 * 1.1},
		{"learning", []string{"learning-tag"}, 1.3 * 1.1},
		{"exploration", []string{"new-tag"}, 1.5}, // 1.4 * 1.1 clamped
		{"weak", []string{"weak-tag"}, 0.8 * 1.1},
		{"unknown tag alone", []string{"never-seen"}, 1.2},
		{"clamped high", []string{"new-tag", "learning-tag", "strong-tag"}, 1.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := composer.masteryAlignment(models.Problem{ID: "c", Tags: tc.tags}, state)
			if abs(got-tc.expected) > 0.0001 {
				t.Errorf("Expected %.3f, got %.3f", tc.expected, got)
			}
			if got < 0.5 || got > 1.5 {
				t.Errorf("Alignment %.3f outside [0.5,1.5]", got)
			}
		})
	}
}

func TestPlateauAdjustment(t *testing.T) {
	composer := NewComposer()

	cache := emptyCache()
	cache.IsPlateauing = true

	hard := models.Problem{ID: "h", Difficulty: models.DifficultyHard}
	easy := models.Problem{ID: "e", Difficulty: models.DifficultyEasy}

	hardScore, _ := composer.Score(hard, nil, cache)
	easyScore, _ := composer.Score(easy, nil, cache)

	if hardScore <= easyScore {
		t.Errorf("Plateauing should favor hard problems: hard=%.3f easy=%.3f", hardScore, easyScore)
	}
}

func TestSelectOptimalProblemsSortsDescending(t *testing.T) {
	composer := NewComposer()

	cache := &ScoringCache{
		RecentSuccesses: []models.Problem{{ID: "r", Tags: []string{"array"}}},
		Relationships: relgraph.NewMap([]models.ProblemRelationship{
			{ProblemID1: "r", ProblemID2: "strong", Strength: 5.0},
			{ProblemID1: "r", ProblemID2: "weak", Strength: 0.5},
		}),
	}
	candidates := []models.Problem{
		{ID: "weak", Difficulty: models.DifficultyMedium, Tags: []string{"graph"}},
		{ID: "strong", Difficulty: models.DifficultyMedium, Tags: []string{"graph"}},
	}

	ranked := composer.SelectOptimalProblems(candidates, nil, cache)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 scored problems, got %d", len(ranked))
	}
	if ranked[0].Problem.ID != "strong" {
		t.Errorf("Expected strong first, got %s", ranked[0].Problem.ID)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Ranking not descending at %d", i)
		}
	}
}

func TestSelectOptimalProblemsNeutralOnBadCandidate(t *testing.T) {
	composer := NewComposer()

	candidates := []models.Problem{
		{ID: ""}, // invalid: no id
		{ID: "ok", Difficulty: models.DifficultyEasy},
	}

	ranked := composer.SelectOptimalProblems(candidates, nil, emptyCache())
	if len(ranked) != 2 {
		t.Fatalf("A bad candidate must not abort the batch, got %d results", len(ranked))
	}
	for _, sp := range ranked {
		if sp.Problem.ID == "" && sp.Score != NeutralScore {
			t.Errorf("Expected neutral score for bad candidate, got %.3f", sp.Score)
		}
	}
}

func TestDetectPlateau(t *testing.T) {
	testCases := []struct {
		name     string
		sessions []models.PracticeSession
		expected bool
	}{
		{"no data", nil, false},
		{"no attempts", []models.PracticeSession{{Attempts: 0}, {Attempts: 0}}, false},
		{"low accuracy", []models.PracticeSession{
			{Attempts: 5, Correct: 2}, {Attempts: 5, Correct: 2}, {Attempts: 5, Correct: 3},
		}, true},
		{"healthy accuracy", []models.PracticeSession{
			{Attempts: 5, Correct: 4}, {Attempts: 5, Correct: 4}, {Attempts: 5, Correct: 5},
		}, false},
		{"only recent three count", []models.PracticeSession{
			{Attempts: 5, Correct: 4}, {Attempts: 5, Correct: 4}, {Attempts: 5, Correct: 4},
			{Attempts: 5, Correct: 0}, {Attempts: 5, Correct: 0},
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectPlateau(tc.sessions)
			if got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}
