package taggraph

import (
	"math"
	"sort"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// Co-occurrence weight by problem difficulty. Easy problems carry more weight
// so that foundational pairings dominate the graph.
var coOccurrenceWeights = map[string]float64{
	models.DifficultyEasy:   3,
	models.DifficultyMedium: 2,
	models.DifficultyHard:   1,
}

// Graph is the weighted tag co-occurrence graph built from a catalog
// snapshot. Edge strengths are normalized to [0,1] against the graph-wide
// maximum and rounded to 3 decimals.
type Graph struct {
	Distributions map[string]models.DifficultyDistribution
	Related       map[string][]models.RelatedTag
}

// Build accumulates pair weights and per-tag difficulty counts over the full
// catalog, then normalizes every edge by the maximum accumulated weight.
func Build(problems []models.Problem) *Graph {
	pairWeights := make(map[string]map[string]float64)
	distributions := make(map[string]models.DifficultyDistribution)

	for _, p := range problems {
		weight, ok := coOccurrenceWeights[p.Difficulty]
		if !ok {
			weight = coOccurrenceWeights[models.DifficultyMedium]
		}

		for _, tag := range p.Tags {
			dist := distributions[tag]
			switch p.Difficulty {
			case models.DifficultyEasy:
				dist.Easy++
			case models.DifficultyMedium:
				dist.Medium++
			case models.DifficultyHard:
				dist.Hard++
			default:
				dist.Medium++
			}
			distributions[tag] = dist
		}

		// Every unordered tag pair on the problem accumulates the weight
		// symmetrically.
		for i := 0; i < len(p.Tags); i++ {
			for j := i + 1; j < len(p.Tags); j++ {
				a, b := p.Tags[i], p.Tags[j]
				if a == b {
					continue
				}
				addPairWeight(pairWeights, a, b, weight)
				addPairWeight(pairWeights, b, a, weight)
			}
		}
	}

	maxWeight := 0.0
	for _, edges := range pairWeights {
		for _, w := range edges {
			if w > maxWeight {
				maxWeight = w
			}
		}
	}

	related := make(map[string][]models.RelatedTag, len(pairWeights))
	for tag, edges := range pairWeights {
		list := make([]models.RelatedTag, 0, len(edges))
		for other, w := range edges {
			strength := 0.0
			if maxWeight > 0 {
				strength = round3(w / maxWeight)
			}
			list = append(list, models.RelatedTag{Tag: other, Strength: strength})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Strength != list[j].Strength {
				return list[i].Strength > list[j].Strength
			}
			return list[i].Tag < list[j].Tag
		})
		related[tag] = list
	}

	return &Graph{Distributions: distributions, Related: related}
}

func addPairWeight(pairs map[string]map[string]float64, from, to string, w float64) {
	if pairs[from] == nil {
		pairs[from] = make(map[string]float64)
	}
	pairs[from][to] += w
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
