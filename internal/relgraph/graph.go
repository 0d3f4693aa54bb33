package relgraph

import "github.com/smithrashell/CodeMaster-sub007/internal/models"

// Map is an in-memory snapshot of the directed relationship graph, keyed
// source problem → target problem → strength. Scoring batches take one
// snapshot up front instead of issuing per-candidate lookups.
type Map map[string]map[string]float64

// NewMap indexes a flat relationship list.
func NewMap(rels []models.ProblemRelationship) Map {
	m := make(Map)
	for _, rel := range rels {
		if rel.ProblemID1 == "" || rel.ProblemID2 == "" {
			continue
		}
		if m[rel.ProblemID1] == nil {
			m[rel.ProblemID1] = make(map[string]float64)
		}
		m[rel.ProblemID1][rel.ProblemID2] = rel.Strength
	}
	return m
}

// Strength returns the edge weight from one problem to another.
func (m Map) Strength(from, to string) (float64, bool) {
	edges, ok := m[from]
	if !ok {
		return 0, false
	}
	s, ok := edges[to]
	return s, ok
}
