package llm

import (
	"fmt"
	"strings"

	"codedojo/internal/domain/model"
	"codedojo/internal/sandbox"
)

const (
	systemPromptHint = "You are an AI assistant supporting programming practice. " +
		"Even when the code is wrong, never hand over the full answer; give only a short hint. " +
		"Suggest the line of thinking that leads to the answer without spelling out the fix."

	systemPromptWrongAnswer = "You are an AI assistant supporting programming practice. " +
		"Do not present the correction as finished code; concisely point out what to watch " +
		"for and how to think about it, so the user can find the fix on their own."

	systemPromptForbidden = "You are an AI assistant supporting programming practice. " +
		"The user tried to use an operation this platform forbids. Briefly explain the " +
		"security or learning reason it is blocked and hint at a preferable approach, " +
		"without writing the corrected code."
)

// BuildPrompt turns a hint request into (system, user) chat messages. The
// wording varies by what triggered the hint: a screening rejection, a
// runtime error or wrong answer, or anything else.
func BuildPrompt(req model.HintRequest) (system, user string) {
	switch req.ErrorType {
	case sandbox.CategoryForbiddenCommand, sandbox.CategoryFileOperation, sandbox.CategoryExitFunction:
		return systemPromptForbidden, forbiddenPrompt(req)
	case model.CaseError, model.CaseWrongAnswer:
		return systemPromptWrongAnswer, failurePrompt(req)
	default:
		return systemPromptHint, failurePrompt(req)
	}
}

func forbiddenPrompt(req model.HintRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Forbidden operation]\n%s\n\n", req.ErrorMessage)
	fmt.Fprintf(&b, "[User's code]\n%s\n\n", req.Code)
	b.WriteString("[Request] Explain briefly why this operation is forbidden, what risks it carries, " +
		"and what kind of approach to use instead. Do not write the corrected code.")
	return b.String()
}

func failurePrompt(req model.HintRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Problem statement]\n%s\n\n", req.ProblemDescription)
	if req.InputExample != "" || req.OutputExample != "" {
		fmt.Fprintf(&b, "[Input example]\n%s\n\n", req.InputExample)
		fmt.Fprintf(&b, "[Output example]\n%s\n\n", req.OutputExample)
	}
	fmt.Fprintf(&b, "[User's code]\n%s\n\n", req.Code)
	fmt.Fprintf(&b, "[Error or execution result]\n%s\n\n", req.ErrorMessage)
	b.WriteString("[Request] Without writing the fix directly, point at the idea or the detail to " +
		"re-check, so the user can arrive at the correction themselves.")
	return b.String()
}
