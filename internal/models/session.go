package models

import "time"

// PracticeSession is the completed-session summary consumed by plateau
// detection and the demotion window. "standard" sessions are the only kind
// the progression machine analyzes.
type PracticeSession struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	SessionType string    `bson:"session_type" json:"session_type"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	Attempts    int       `bson:"attempts" json:"attempts"`
	Correct     int       `bson:"correct" json:"correct"`
	Accuracy    float64   `bson:"accuracy" json:"accuracy"`
	TimeSpentMs int64     `bson:"time_spent_ms" json:"time_spent_ms"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}

const SessionTypeStandard = "standard"

// ReviewItem tracks the Leitner box state for one problem.
type ReviewItem struct {
	ProblemID       string    `bson:"problem_id" json:"problem_id"`
	BoxLevel        int       `bson:"box_level" json:"box_level"`
	ReviewDate      time.Time `bson:"review_date" json:"review_date"`
	LastAttemptDate time.Time `bson:"last_attempt_date" json:"last_attempt_date"`
}
