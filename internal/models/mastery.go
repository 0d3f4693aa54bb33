package models

// TagMastery summarizes a user's standing on one tag, derived from the
// attempt history joined with the tag node's thresholds.
type TagMastery struct {
	Tag             string  `bson:"tag" json:"tag"`
	MasteryLevel    float64 `bson:"mastery_level" json:"mastery_level"`
	ConfidenceScore float64 `bson:"confidence_score" json:"confidence_score"`
	Attempts        int     `bson:"attempts" json:"attempts"`
	SuccessRate     float64 `bson:"success_rate" json:"success_rate"`
	Mastered        bool    `bson:"mastered" json:"mastered"`
}
