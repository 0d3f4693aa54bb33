package models

// Difficulty levels as stored in the problem catalog.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Problem struct {
	ID         string   `bson:"_id,omitempty" json:"id"`
	LeetcodeID string   `bson:"leetcode_id" json:"leetcode_id"`
	Title      string   `bson:"title" json:"title"`
	Slug       string   `bson:"slug" json:"slug"`
	Difficulty string   `bson:"difficulty" json:"difficulty"`
	Tags       []string `bson:"tags" json:"tags"`
}

// DifficultyScore orders difficulties for edge direction checks: relationship
// edges only point from an easier-or-equal problem to an equal-or-harder one.
func DifficultyScore(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

// RecommendedSolveTimeMs returns the target solve time used when classifying
// attempt transitions.
func RecommendedSolveTimeMs(difficulty string) int64 {
	switch difficulty {
	case DifficultyEasy:
		return 15 * 60 * 1000
	case DifficultyMedium:
		return 25 * 60 * 1000
	case DifficultyHard:
		return 35 * 60 * 1000
	default:
		return 25 * 60 * 1000
	}
}
