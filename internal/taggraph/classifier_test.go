package taggraph

import (
	"testing"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		dist     models.DifficultyDistribution
		expected string
	}{
		{"large easy-heavy tag", models.DifficultyDistribution{Easy: 200, Medium: 10, Hard: 5}, models.ClassCoreConcept},
		{"small easy-heavy tag reclassifies fundamental", models.DifficultyDistribution{Easy: 20, Medium: 5, Hard: 2}, models.ClassFundamentalTechnique},
		{"hard-only tag", models.DifficultyDistribution{Hard: 30}, models.ClassAdvancedTechnique},
		{"medium-heavy mid-size tag", models.DifficultyDistribution{Easy: 30, Medium: 60, Hard: 20}, models.ClassFundamentalTechnique},
		{"empty tag defaults advanced", models.DifficultyDistribution{}, models.ClassAdvancedTechnique},
		{"high complexity ratio", models.DifficultyDistribution{Easy: 10, Medium: 20, Hard: 170}, models.ClassAdvancedTechnique},
		{"hard-leaning large tag", models.DifficultyDistribution{Easy: 50, Medium: 60, Hard: 70}, models.ClassAdvancedTechnique},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.dist)
			if got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestMasteryThreshold(t *testing.T) {
	testCases := []struct {
		name           string
		classification string
		dist           models.DifficultyDistribution
		expected       float64
	}{
		{"core base", models.ClassCoreConcept, models.DifficultyDistribution{Easy: 100}, 0.75},
		{"fundamental base", models.ClassFundamentalTechnique, models.DifficultyDistribution{Medium: 60}, 0.80},
		{"advanced base", models.ClassAdvancedTechnique, models.DifficultyDistribution{Easy: 5, Medium: 10, Hard: 10}, 0.85},
		{"hard-heavy discount", models.ClassAdvancedTechnique, models.DifficultyDistribution{Easy: 1, Medium: 2, Hard: 7}, 0.80},
		{"empty distribution no discount", models.ClassAdvancedTechnique, models.DifficultyDistribution{}, 0.85},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MasteryThreshold(tc.classification, tc.dist)
			if abs(got-tc.expected) > 0.0001 {
				t.Errorf("Expected %.2f, got %.2f", tc.expected, got)
			}
		})
	}
}

func TestMinAttemptsRequired(t *testing.T) {
	testCases := []struct {
		name     string
		dist     models.DifficultyDistribution
		expected int
	}{
		{"small two-tier tag clamps to floor", models.DifficultyDistribution{Easy: 5, Medium: 5}, 6},
		{"three-tier mid-size tag", models.DifficultyDistribution{Easy: 100, Medium: 100, Hard: 100}, 12},
		{"huge tag clamps to ceiling", models.DifficultyDistribution{Easy: 4000, Medium: 4000, Hard: 2000}, 30},
		{"empty tag clamps to floor", models.DifficultyDistribution{}, 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MinAttemptsRequired(tc.dist)
			if got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestMinAttemptsRequiredBounds(t *testing.T) {
	dists := []models.DifficultyDistribution{
		{},
		{Easy: 1},
		{Easy: 10, Medium: 10, Hard: 10},
		{Easy: 500, Medium: 500, Hard: 500},
		{Easy: 100000},
	}
	for _, dist := range dists {
		got := MinAttemptsRequired(dist)
		if got < 6 || got > 30 {
			t.Errorf("MinAttemptsRequired(%+v) = %d, outside [6,30]", dist, got)
		}
	}
}

func TestBuildNodes(t *testing.T) {
	nodes := BuildNodes(testCatalog())

	if len(nodes) != 3 {
		t.Fatalf("Expected 3 tag nodes, got %d", len(nodes))
	}

	for _, node := range nodes {
		if node.MasteryThreshold < 0 || node.MasteryThreshold > 1 {
			t.Errorf("Tag %s mastery threshold out of [0,1]: %.2f", node.Tag, node.MasteryThreshold)
		}
		if node.MinAttemptsRequired < 6 || node.MinAttemptsRequired > 30 {
			t.Errorf("Tag %s min attempts out of [6,30]: %d", node.Tag, node.MinAttemptsRequired)
		}
		if node.Classification == "" {
			t.Errorf("Tag %s has no classification", node.Tag)
		}
	}

	// Deterministic order for the wholesale rewrite.
	if nodes[0].Tag != "array" || nodes[1].Tag != "dynamic-programming" || nodes[2].Tag != "hash-table" {
		t.Errorf("Unexpected node order: %s, %s, %s", nodes[0].Tag, nodes[1].Tag, nodes[2].Tag)
	}
}

func TestSimilarityScore(t *testing.T) {
	nodes := BuildNodes(testCatalog())
	sim := NewSimilarity(nodes)

	testCases := []struct {
		name     string
		tags1    []string
		tags2    []string
		expected float64
	}{
		{"exact overlap", []string{"array"}, []string{"array"}, 1.0},
		{"related via graph", []string{"array"}, []string{"hash-table"}, 1.0},
		{"weak relation", []string{"dynamic-programming"}, []string{"array"}, 0.2},
		{"unrelated", []string{"graph-theory"}, []string{"array"}, 0},
		{"empty tags", nil, []string{"array"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := sim.Score(tc.tags1, tc.tags2)
			if abs(got-tc.expected) > 0.0001 {
				t.Errorf("Expected %.3f, got %.3f", tc.expected, got)
			}
			if got < 0 {
				t.Errorf("Similarity must be non-negative, got %.3f", got)
			}
		})
	}
}
