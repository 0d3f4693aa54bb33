package models

// Strength bounds for learned relationship edges. Fresh edges from a batch
// rebuild may carry a wider similarity-derived weight; the first learning
// update re-clamps them into this range.
const (
	MinRelationshipStrength     = 0.5
	MaxRelationshipStrength     = 5.0
	NeutralRelationshipStrength = 2.0
)

// ProblemRelationship is a directed edge in the problem graph: "after
// problem_id1, problem_id2 is a good next problem". Strict snake_case at the
// storage boundary.
type ProblemRelationship struct {
	ProblemID1 string  `bson:"problem_id1" json:"problem_id1"`
	ProblemID2 string  `bson:"problem_id2" json:"problem_id2"`
	Strength   float64 `bson:"strength" json:"strength"`
}

// ClampStrength bounds a learned strength into the valid range.
func ClampStrength(s float64) float64 {
	if s < MinRelationshipStrength {
		return MinRelationshipStrength
	}
	if s > MaxRelationshipStrength {
		return MaxRelationshipStrength
	}
	return s
}
