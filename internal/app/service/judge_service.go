package service

import (
	"context"
	"fmt"
	"strings"

	"codedojo/internal/domain/model"
	"codedojo/internal/sandbox"
)

// Hint-offer prompts, one per triggering condition.
const (
	HintPromptForbidden   = "A forbidden operation was detected. Would you like a hint?"
	HintPromptError       = "Your program raised an error. Would you like a hint?"
	HintPromptWrongAnswer = "That was not the right answer. Would you like a hint?"
)

// CodeRunner executes one submission against one test case input.
type CodeRunner interface {
	Run(ctx context.Context, source, stdin string) (sandbox.ExecResult, error)
}

// JudgeService screens a submission, runs it against every test case of a
// problem in order, and aggregates the verdicts.
type JudgeService struct {
	runner CodeRunner
}

func NewJudgeService(runner CodeRunner) *JudgeService {
	return &JudgeService{runner: runner}
}

// Judge evaluates source against the problem's test cases. A screening
// rejection short-circuits with a single synthetic verdict and no
// execution. Otherwise cases run sequentially in their stored order; the
// first non-Accepted case builds the hint payload and the hint-offer
// prompt, and later failures never overwrite it.
func (s *JudgeService) Judge(ctx context.Context, problem *model.Problem, code string) *model.JudgeResult {
	if violation := sandbox.Screen(code); violation != nil {
		return &model.JudgeResult{
			Overall: model.OverallFailed,
			Cases: []model.CaseVerdict{{
				Input:    "",
				Expected: "",
				Output:   "",
				Error:    violation.Message,
				Status:   violation.Category,
			}},
			HintPrompt: HintPromptForbidden,
			HintRequest: &model.HintRequest{
				ErrorType:          violation.Category,
				ErrorMessage:       violation.Message,
				Code:               code,
				ProblemDescription: problem.Description,
			},
		}
	}

	result := &model.JudgeResult{Overall: model.OverallAccepted}

	for _, tc := range problem.TestCases {
		verdict := s.judgeCase(ctx, tc, code)
		if verdict.Status != model.CaseAccepted {
			result.Overall = model.OverallFailed
			if result.HintRequest == nil {
				result.HintPrompt, result.HintRequest = buildHintRequest(problem, tc, code, verdict)
			}
		}
		result.Cases = append(result.Cases, verdict)
	}

	return result
}

func (s *JudgeService) judgeCase(ctx context.Context, tc model.TestCase, code string) model.CaseVerdict {
	exec, err := s.runner.Run(ctx, code, tc.Input)
	if err != nil {
		// The execution layer itself failed (spawn error etc.). Recovered
		// into an Error verdict so one broken case cannot abort the pass.
		return model.CaseVerdict{
			Input:    tc.Input,
			Expected: tc.ExpectedOutput,
			Output:   "",
			Error:    fmt.Sprintf("execution failed: %v", err),
			Status:   model.CaseError,
		}
	}

	shortStderr := sandbox.ExtractRelevantError(exec.Stderr)
	if shortStderr != "" {
		return model.CaseVerdict{
			Input:    tc.Input,
			Expected: tc.ExpectedOutput,
			Output:   exec.Stdout,
			Error:    shortStderr,
			Status:   model.CaseError,
		}
	}

	// Leading/trailing whitespace is not significant; everything else is.
	if strings.TrimSpace(exec.Stdout) != strings.TrimSpace(tc.ExpectedOutput) {
		return model.CaseVerdict{
			Input:    tc.Input,
			Expected: tc.ExpectedOutput,
			Output:   exec.Stdout,
			Error:    "",
			Status:   model.CaseWrongAnswer,
		}
	}

	return model.CaseVerdict{
		Input:    tc.Input,
		Expected: tc.ExpectedOutput,
		Output:   exec.Stdout,
		Error:    "",
		Status:   model.CaseAccepted,
	}
}

func buildHintRequest(problem *model.Problem, tc model.TestCase, code string, verdict model.CaseVerdict) (string, *model.HintRequest) {
	req := &model.HintRequest{
		ErrorType:          verdict.Status,
		Code:               code,
		ProblemDescription: problem.Description,
		InputExample:       tc.Input,
		OutputExample:      tc.ExpectedOutput,
	}

	switch verdict.Status {
	case model.CaseWrongAnswer:
		req.ErrorMessage = fmt.Sprintf("Expected: %s\nGot: %s",
			strings.TrimSpace(tc.ExpectedOutput), strings.TrimSpace(verdict.Output))
		return HintPromptWrongAnswer, req
	default:
		req.ErrorMessage = verdict.Error
		return HintPromptError, req
	}
}
