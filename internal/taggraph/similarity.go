package taggraph

import "github.com/smithrashell/CodeMaster-sub007/internal/models"

// Similarity scores how related two problems' tag sets are using the built
// tag graph. The relationship build only relies on the contract that scores
// are non-negative and 0 means unrelated.
type Similarity struct {
	related map[string]map[string]float64
}

// NewSimilarity indexes a node set for O(1) related-tag lookups.
func NewSimilarity(nodes []models.TagNode) *Similarity {
	related := make(map[string]map[string]float64, len(nodes))
	for _, node := range nodes {
		edges := make(map[string]float64, len(node.RelatedTags))
		for _, rt := range node.RelatedTags {
			edges[rt.Tag] = rt.Strength
		}
		related[node.Tag] = edges
	}
	return &Similarity{related: related}
}

// Score sums exact tag overlaps (1.0 each) and graph-related pairings (edge
// strength each) between the two tag sets.
func (s *Similarity) Score(tags1, tags2 []string) float64 {
	if len(tags1) == 0 || len(tags2) == 0 {
		return 0
	}

	set2 := make(map[string]bool, len(tags2))
	for _, t := range tags2 {
		set2[t] = true
	}

	score := 0.0
	for _, t1 := range tags1 {
		if set2[t1] {
			score += 1.0
			continue
		}
		best := 0.0
		for t2 := range set2 {
			if strength, ok := s.related[t1][t2]; ok && strength > best {
				best = strength
			}
		}
		score += best
	}
	return score
}
