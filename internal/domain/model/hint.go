package model

// HintRequest is the context bundle sent to the external hint service.
// Built by the judge from the first failing case (or the screening
// rejection) and echoed back by the client when a hint is requested.
type HintRequest struct {
	ErrorType          string `json:"error_type"` // screening category, "Error" or "Wrong Answer"
	ErrorMessage       string `json:"error_message"`
	Code               string `json:"code"`
	ProblemDescription string `json:"problem_description"`
	InputExample       string `json:"input_example,omitempty"`
	OutputExample      string `json:"output_example,omitempty"`
}
