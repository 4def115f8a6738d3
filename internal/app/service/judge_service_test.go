package service

import (
	"context"
	"errors"
	"testing"

	"codedojo/internal/domain/model"
	"codedojo/internal/sandbox"
)

// fakeRunner maps test case input to a scripted result and records how
// often it was invoked.
type fakeRunner struct {
	results map[string]sandbox.ExecResult
	err     error
	calls   int
}

func (f *fakeRunner) Run(_ context.Context, _ string, stdin string) (sandbox.ExecResult, error) {
	f.calls++
	if f.err != nil {
		return sandbox.ExecResult{}, f.err
	}
	return f.results[stdin], nil
}

func sumProblem() *model.Problem {
	return &model.Problem{
		ID:          "p1",
		Title:       "Sum Two Numbers",
		Description: "Read two integers and print their sum.",
		TestCases: []model.TestCase{
			{Input: "2 3\n", ExpectedOutput: "5\n"},
			{Input: "10 20\n", ExpectedOutput: "30\n"},
		},
	}
}

func TestJudgeForbiddenCodeShortCircuits(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewJudgeService(runner)

	result := svc.Judge(context.Background(), sumProblem(), "import os\nos.system('rm -rf /')")

	if runner.calls != 0 {
		t.Errorf("runner invoked %d times, rejected code must never execute", runner.calls)
	}
	if result.Overall != model.OverallFailed {
		t.Errorf("overall = %q, want %q", result.Overall, model.OverallFailed)
	}
	if len(result.Cases) != 1 {
		t.Fatalf("got %d case verdicts, want 1 synthetic verdict", len(result.Cases))
	}
	v := result.Cases[0]
	if v.Status != sandbox.CategoryForbiddenCommand {
		t.Errorf("status = %q, want %q", v.Status, sandbox.CategoryForbiddenCommand)
	}
	if v.Input != "" || v.Expected != "" || v.Output != "" {
		t.Errorf("synthetic verdict carries case data: %+v", v)
	}
	if v.Error == "" {
		t.Error("synthetic verdict has no violation message")
	}
	if result.HintPrompt != HintPromptForbidden {
		t.Errorf("hint prompt = %q, want %q", result.HintPrompt, HintPromptForbidden)
	}
	if result.HintRequest == nil || result.HintRequest.ErrorType != sandbox.CategoryForbiddenCommand {
		t.Errorf("hint request = %+v, want forbidden-command payload", result.HintRequest)
	}
}

func TestJudgeAllCasesPass(t *testing.T) {
	runner := &fakeRunner{results: map[string]sandbox.ExecResult{
		"2 3\n":   {Stdout: "5\n"},
		"10 20\n": {Stdout: "30\n"},
	}}
	svc := NewJudgeService(runner)

	result := svc.Judge(context.Background(), sumProblem(), "a, b = map(int, input().split())\nprint(a + b)")

	if result.Overall != model.OverallAccepted {
		t.Fatalf("overall = %q, want %q", result.Overall, model.OverallAccepted)
	}
	if len(result.Cases) != 2 {
		t.Fatalf("got %d verdicts, want 2", len(result.Cases))
	}
	for i, v := range result.Cases {
		if v.Status != model.CaseAccepted {
			t.Errorf("case %d status = %q, want %q", i, v.Status, model.CaseAccepted)
		}
	}
	if result.HintPrompt != "" || result.HintRequest != nil {
		t.Error("accepted submission must not carry a hint offer")
	}
	if runner.calls != 2 {
		t.Errorf("runner invoked %d times, want 2", runner.calls)
	}
}

func TestJudgeTrimsInsignificantWhitespace(t *testing.T) {
	runner := &fakeRunner{results: map[string]sandbox.ExecResult{
		"2 3\n":   {Stdout: "5"},      // missing trailing newline
		"10 20\n": {Stdout: " 30 \n"}, // padded
	}}
	svc := NewJudgeService(runner)

	result := svc.Judge(context.Background(), sumProblem(), "code")
	if result.Overall != model.OverallAccepted {
		t.Errorf("overall = %q, want %q", result.Overall, model.OverallAccepted)
	}
}

func TestJudgeWrongAnswerBuildsHintFromFirstFailure(t *testing.T) {
	runner := &fakeRunner{results: map[string]sandbox.ExecResult{
		"2 3\n":   {Stdout: "6\n"},
		"10 20\n": {Stdout: "31\n"},
	}}
	svc := NewJudgeService(runner)

	result := svc.Judge(context.Background(), sumProblem(), "code")

	if result.Overall != model.OverallFailed {
		t.Fatalf("overall = %q, want %q", result.Overall, model.OverallFailed)
	}
	if result.HintPrompt != HintPromptWrongAnswer {
		t.Errorf("hint prompt = %q, want %q", result.HintPrompt, HintPromptWrongAnswer)
	}
	req := result.HintRequest
	if req == nil {
		t.Fatal("no hint request built")
	}
	if req.ErrorType != model.CaseWrongAnswer {
		t.Errorf("error type = %q, want %q", req.ErrorType, model.CaseWrongAnswer)
	}
	if req.ErrorMessage != "Expected: 5\nGot: 6" {
		t.Errorf("error message = %q, want first-failure diff", req.ErrorMessage)
	}
	if req.InputExample != "2 3\n" || req.OutputExample != "5\n" {
		t.Errorf("hint payload carries wrong case: %+v", req)
	}
	// All remaining cases still run and get their own verdicts.
	if len(result.Cases) != 2 || result.Cases[1].Status != model.CaseWrongAnswer {
		t.Errorf("verdicts = %+v, want both cases judged", result.Cases)
	}
}

func TestJudgeRuntimeErrorVerdict(t *testing.T) {
	stderr := `Traceback (most recent call last):
  File "/tmp/submission-42.py", line 1, in <module>
    print(1 / 0)
ZeroDivisionError: division by zero`
	runner := &fakeRunner{results: map[string]sandbox.ExecResult{
		"2 3\n":   {Stderr: stderr, ExitCode: 1},
		"10 20\n": {Stdout: "30\n"},
	}}
	svc := NewJudgeService(runner)

	result := svc.Judge(context.Background(), sumProblem(), "code")

	if result.Cases[0].Status != model.CaseError {
		t.Errorf("case 0 status = %q, want %q", result.Cases[0].Status, model.CaseError)
	}
	// The verdict carries the trimmed trace, not the raw one.
	if got := result.Cases[0].Error; got != sandbox.ExtractRelevantError(stderr) {
		t.Errorf("case error = %q, want trimmed trace", got)
	}
	if result.HintPrompt != HintPromptError {
		t.Errorf("hint prompt = %q, want %q", result.HintPrompt, HintPromptError)
	}
	if result.Overall != model.OverallFailed {
		t.Errorf("overall = %q, want %q", result.Overall, model.OverallFailed)
	}
}

func TestJudgeSentinelStderrBecomesErrorVerdict(t *testing.T) {
	for _, sentinel := range []string{sandbox.StderrTimeLimitExceeded, sandbox.StderrMemoryOveruse} {
		runner := &fakeRunner{results: map[string]sandbox.ExecResult{
			"2 3\n":   {Stderr: sentinel, ExitCode: -1},
			"10 20\n": {Stdout: "30\n"},
		}}
		result := NewJudgeService(runner).Judge(context.Background(), sumProblem(), "code")

		if result.Cases[0].Status != model.CaseError {
			t.Errorf("%s: status = %q, want %q", sentinel, result.Cases[0].Status, model.CaseError)
		}
		if result.Cases[0].Error != sentinel {
			t.Errorf("%s: error = %q, want sentinel surfaced verbatim", sentinel, result.Cases[0].Error)
		}
	}
}

func TestJudgeRunnerFaultBecomesErrorVerdict(t *testing.T) {
	runner := &fakeRunner{err: errors.New("fork/exec: no such file")}
	result := NewJudgeService(runner).Judge(context.Background(), sumProblem(), "code")

	if result.Overall != model.OverallFailed {
		t.Errorf("overall = %q, want %q", result.Overall, model.OverallFailed)
	}
	for i, v := range result.Cases {
		if v.Status != model.CaseError {
			t.Errorf("case %d status = %q, want %q", i, v.Status, model.CaseError)
		}
	}
}

func TestJudgeHintSticksToFirstFailure(t *testing.T) {
	// Case 1 fails with a wrong answer, case 2 with an error; the hint
	// must describe case 1.
	stderr := `  File "/tmp/submission-7.py", line 2, in <module>
IndexError: list index out of range`
	runner := &fakeRunner{results: map[string]sandbox.ExecResult{
		"2 3\n":   {Stdout: "4\n"},
		"10 20\n": {Stderr: stderr, ExitCode: 1},
	}}
	result := NewJudgeService(runner).Judge(context.Background(), sumProblem(), "code")

	if result.HintPrompt != HintPromptWrongAnswer {
		t.Errorf("hint prompt = %q, want the first failure's prompt", result.HintPrompt)
	}
	if result.HintRequest.ErrorType != model.CaseWrongAnswer {
		t.Errorf("hint error type = %q, want %q", result.HintRequest.ErrorType, model.CaseWrongAnswer)
	}
}
