package taggraph

import (
	"math"
	"testing"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

func abs(x float64) float64 {
	return math.Abs(x)
}

func testCatalog() []models.Problem {
	return []models.Problem{
		{ID: "p1", Difficulty: models.DifficultyEasy, Tags: []string{"array", "hash-table"}},
		{ID: "p2", Difficulty: models.DifficultyMedium, Tags: []string{"array", "hash-table"}},
		{ID: "p3", Difficulty: models.DifficultyHard, Tags: []string{"array", "dynamic-programming"}},
	}
}

func TestBuildAccumulatesWeightedCoOccurrence(t *testing.T) {
	graph := Build(testCatalog())

	// array/hash-table co-occurs on an easy (3) and a medium (2) problem;
	// array/dynamic-programming only on a hard one (1). Max weight is 5.
	related := graph.Related["array"]
	if len(related) != 2 {
		t.Fatalf("Expected 2 related tags for array, got %d", len(related))
	}

	if related[0].Tag != "hash-table" {
		t.Errorf("Expected strongest related tag hash-table, got %s", related[0].Tag)
	}
	if abs(related[0].Strength-1.0) > 0.0001 {
		t.Errorf("Expected normalized strength 1.0, got %.3f", related[0].Strength)
	}
	if related[1].Tag != "dynamic-programming" {
		t.Errorf("Expected second related tag dynamic-programming, got %s", related[1].Tag)
	}
	if abs(related[1].Strength-0.2) > 0.0001 {
		t.Errorf("Expected normalized strength 0.2, got %.3f", related[1].Strength)
	}
}

func TestBuildSymmetry(t *testing.T) {
	graph := Build(testCatalog())

	forward := 0.0
	for _, rt := range graph.Related["array"] {
		if rt.Tag == "hash-table" {
			forward = rt.Strength
		}
	}
	backward := 0.0
	for _, rt := range graph.Related["hash-table"] {
		if rt.Tag == "array" {
			backward = rt.Strength
		}
	}
	if forward != backward {
		t.Errorf("Expected symmetric strengths, got %.3f vs %.3f", forward, backward)
	}
}

func TestBuildDifficultyDistribution(t *testing.T) {
	graph := Build(testCatalog())

	dist := graph.Distributions["array"]
	if dist.Easy != 1 || dist.Medium != 1 || dist.Hard != 1 {
		t.Errorf("Unexpected array distribution: %+v", dist)
	}

	dist = graph.Distributions["dynamic-programming"]
	if dist.Easy != 0 || dist.Medium != 0 || dist.Hard != 1 {
		t.Errorf("Unexpected dynamic-programming distribution: %+v", dist)
	}
}

func TestBuildStrengthsWithinUnitRange(t *testing.T) {
	graph := Build(testCatalog())

	for tag, related := range graph.Related {
		for _, rt := range related {
			if rt.Strength < 0 || rt.Strength > 1 {
				t.Errorf("Strength out of [0,1] for %s->%s: %.3f", tag, rt.Tag, rt.Strength)
			}
		}
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	graph := Build(nil)
	if len(graph.Distributions) != 0 || len(graph.Related) != 0 {
		t.Errorf("Expected empty graph, got %+v", graph)
	}
}
