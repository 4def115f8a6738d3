package model

import "time"

const (
	FeedbackTargetProblem = "problem"
	FeedbackTargetHint    = "hint"

	FeedbackGood = "good"
	FeedbackBad  = "bad"
)

type Feedback struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TargetType string    `json:"target_type"` // "problem" or "hint"
	TargetID   string    `json:"target_id"`
	Feedback   string    `json:"feedback"` // "good" or "bad"
	CreatedAt  time.Time `json:"created_at"`
}
