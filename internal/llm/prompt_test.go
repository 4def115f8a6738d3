package llm

import (
	"errors"
	"strings"
	"testing"

	"codedojo/internal/domain/model"
	"codedojo/internal/sandbox"
)

func TestBuildPromptForbidden(t *testing.T) {
	req := model.HintRequest{
		ErrorType:    sandbox.CategoryForbiddenCommand,
		ErrorMessage: "forbidden construct detected: os module",
		Code:         "import os",
	}
	system, user := BuildPrompt(req)

	if system != systemPromptForbidden {
		t.Errorf("system prompt = %q, want forbidden variant", system)
	}
	if !strings.Contains(user, req.ErrorMessage) || !strings.Contains(user, req.Code) {
		t.Errorf("user prompt missing violation or code:\n%s", user)
	}
	if strings.Contains(user, "[Problem statement]") {
		t.Error("forbidden prompt must not include the problem statement")
	}
}

func TestBuildPromptWrongAnswer(t *testing.T) {
	req := model.HintRequest{
		ErrorType:          model.CaseWrongAnswer,
		ErrorMessage:       "Expected: 5\nGot: 6",
		Code:               "print(6)",
		ProblemDescription: "Read two integers and print their sum.",
		InputExample:       "2 3\n",
		OutputExample:      "5\n",
	}
	system, user := BuildPrompt(req)

	if system != systemPromptWrongAnswer {
		t.Errorf("system prompt = %q, want wrong-answer variant", system)
	}
	for _, want := range []string{req.ProblemDescription, req.ErrorMessage, req.Code, "[Input example]", "[Output example]"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestBuildPromptRuntimeErrorUsesFailureVariant(t *testing.T) {
	req := model.HintRequest{
		ErrorType:    model.CaseError,
		ErrorMessage: "ZeroDivisionError: division by zero",
	}
	if system, _ := BuildPrompt(req); system != systemPromptWrongAnswer {
		t.Errorf("system prompt = %q, want failure variant", system)
	}
}

func TestBuildPromptDefaultsToGenericHint(t *testing.T) {
	req := model.HintRequest{ErrorType: "", Code: "print(1)"}
	system, user := BuildPrompt(req)
	if system != systemPromptHint {
		t.Errorf("system prompt = %q, want generic variant", system)
	}
	// Without examples the example sections are omitted entirely.
	if strings.Contains(user, "[Input example]") {
		t.Errorf("user prompt includes empty example section:\n%s", user)
	}
}

func TestClassifyProviderError(t *testing.T) {
	quotaLike := []string{
		"You exceeded your current quota, please check your plan",
		"Insufficient balance on this account",
		"billing hard limit reached",
	}
	for _, msg := range quotaLike {
		if err := classifyProviderError(errors.New(msg)); !errors.Is(err, ErrQuotaExhausted) {
			t.Errorf("classifyProviderError(%q) = %v, want ErrQuotaExhausted", msg, err)
		}
	}

	generic := classifyProviderError(errors.New("connection reset by peer"))
	if errors.Is(generic, ErrQuotaExhausted) {
		t.Errorf("generic failure classified as quota: %v", generic)
	}
	if generic == nil {
		t.Error("generic failure classified as nil")
	}
}
