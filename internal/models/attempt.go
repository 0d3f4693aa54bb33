package models

import "time"

// AttemptRecord is an append-only record of one attempt at a problem. The
// attempt store owns these; the engine only ever reads recent windows.
type AttemptRecord struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ProblemID   string    `bson:"problem_id" json:"problem_id"`
	LeetcodeID  string    `bson:"leetcode_id" json:"leetcode_id"`
	Success     bool      `bson:"success" json:"success"`
	TimeSpentMs int64     `bson:"time_spent_ms" json:"time_spent_ms"`
	AttemptDate time.Time `bson:"attempt_date" json:"attempt_date"`
}
