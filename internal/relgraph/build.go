package relgraph

import (
	"sort"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// DefaultEdgeLimit caps retained outgoing edges per source problem.
const DefaultEdgeLimit = 10

// SimilarityFunc scores how related two tag sets are. The build only assumes
// the score is non-negative and that 0 means unrelated.
type SimilarityFunc func(tags1, tags2 []string) float64

// BuildResult is the output of a full build→trim→restore pass. Removed is
// the overflow side table keyed by source problem id: edges trimmed past the
// limit, kept around so orphan repair can pull them back.
type BuildResult struct {
	Retained []models.ProblemRelationship
	Removed  map[string][]models.ProblemRelationship
}

// Build computes the directed relationship graph for the whole catalog:
// every ordered pair with positive similarity gets an edge, restricted to
// easier-or-equal → equal-or-harder, then trimmed to the per-problem limit
// and repaired so no problem is left without an outgoing edge. This is
// O(n²) over the catalog and must run as an exclusive batch job.
func Build(problems []models.Problem, similarity SimilarityFunc, limit int) *BuildResult {
	if limit <= 0 {
		limit = DefaultEdgeLimit
	}

	outgoing := make(map[string][]models.ProblemRelationship)
	for i := range problems {
		p1 := &problems[i]
		for j := range problems {
			if i == j {
				continue
			}
			p2 := &problems[j]
			if models.DifficultyScore(p1.Difficulty) > models.DifficultyScore(p2.Difficulty) {
				continue
			}
			sim := similarity(p1.Tags, p2.Tags)
			if sim <= 0 {
				continue
			}
			outgoing[p1.ID] = append(outgoing[p1.ID], models.ProblemRelationship{
				ProblemID1: p1.ID,
				ProblemID2: p2.ID,
				Strength:   sim,
			})
		}
	}

	result := trim(outgoing, limit)
	restore(problems, result)
	return result
}

// trim keeps the strongest `limit` edges per source and moves the remainder
// into the removed side table.
func trim(outgoing map[string][]models.ProblemRelationship, limit int) *BuildResult {
	result := &BuildResult{
		Removed: make(map[string][]models.ProblemRelationship),
	}

	sources := make([]string, 0, len(outgoing))
	for id := range outgoing {
		sources = append(sources, id)
	}
	sort.Strings(sources)

	for _, id := range sources {
		edges := outgoing[id]
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Strength != edges[j].Strength {
				return edges[i].Strength > edges[j].Strength
			}
			return edges[i].ProblemID2 < edges[j].ProblemID2
		})
		if len(edges) > limit {
			result.Removed[id] = edges[limit:]
			edges = edges[:limit]
		}
		result.Retained = append(result.Retained, edges...)
	}
	return result
}

// restore guarantees every catalog problem keeps at least one outgoing edge:
// first by pulling the strongest edge back from the removed table, then by
// falling back to any other problem sharing a tag at the weakest strength.
func restore(problems []models.Problem, result *BuildResult) {
	haveOutgoing := make(map[string]bool)
	for _, rel := range result.Retained {
		haveOutgoing[rel.ProblemID1] = true
	}

	for i := range problems {
		p := &problems[i]
		if haveOutgoing[p.ID] {
			continue
		}

		if removed := result.Removed[p.ID]; len(removed) > 0 {
			result.Retained = append(result.Retained, removed[0])
			if len(removed) == 1 {
				delete(result.Removed, p.ID)
			} else {
				result.Removed[p.ID] = removed[1:]
			}
			haveOutgoing[p.ID] = true
			continue
		}

		if fallback := weakestTagFallback(p, problems); fallback != nil {
			result.Retained = append(result.Retained, *fallback)
			haveOutgoing[p.ID] = true
		}
	}
}

func weakestTagFallback(p *models.Problem, problems []models.Problem) *models.ProblemRelationship {
	tags := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		tags[t] = true
	}
	for i := range problems {
		other := &problems[i]
		if other.ID == p.ID {
			continue
		}
		for _, t := range other.Tags {
			if tags[t] {
				return &models.ProblemRelationship{
					ProblemID1: p.ID,
					ProblemID2: other.ID,
					Strength:   1, // weakest connection
				}
			}
		}
	}
	return nil
}
