package model

import "time"

const (
	// Overall submission verdicts.
	OverallAccepted = "Accepted"
	OverallFailed   = "Failed"

	// Per-test-case verdicts. Screening rejections carry the screening
	// category as their status instead.
	CaseAccepted    = "Accepted"
	CaseWrongAnswer = "Wrong Answer"
	CaseError       = "Error"
)

type Submission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProblemID   string    `json:"problem_id"`
	Status      string    `json:"status"` // Accepted or Failed
	Code        string    `json:"code"`
	HintPrompt  string    `json:"hint_prompt"` // hint-offer text shown at submission time, may be empty
	SubmittedAt time.Time `json:"submitted_at"`

	ProblemTitle *string `json:"problem_title,omitempty"` // For display
}

// CaseVerdict is the outcome of one test case for one judging pass.
// Not persisted; it lives only in the submit response.
type CaseVerdict struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Error    string `json:"error"`
	Status   string `json:"status"`
}

// JudgeResult aggregates the per-case verdicts of one submission attempt.
type JudgeResult struct {
	Overall     string        `json:"overall"`
	Cases       []CaseVerdict `json:"cases"`
	HintPrompt  string        `json:"hint_prompt,omitempty"`
	HintRequest *HintRequest  `json:"hint_request,omitempty"`
}
