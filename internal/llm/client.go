package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codedojo/internal/domain/model"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrQuotaExhausted signals a billing/insufficient-balance failure from the
// hint provider, as opposed to a generic failure. Classification is
// best-effort string matching on the provider error text; revisit if the
// provider ever returns structured error codes.
var ErrQuotaExhausted = errors.New("hint provider quota exhausted")

// HintGenerator produces a non-revealing hint for a failed submission.
type HintGenerator interface {
	GenerateHint(ctx context.Context, req model.HintRequest) (string, error)
}

// Client calls an OpenAI-compatible chat completion API.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

// NewClient creates a hint client. baseURL may be empty to use the
// provider default.
func NewClient(baseURL, apiKey, chatModel string, maxTokens int) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Client{
		client:    &client,
		model:     chatModel,
		maxTokens: int64(maxTokens),
	}
}

func (c *Client) GenerateHint(ctx context.Context, req model.HintRequest) (string, error) {
	system, user := BuildPrompt(req)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", classifyProviderError(err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}

func classifyProviderError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "insufficient") || strings.Contains(msg, "billing") {
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	}
	return fmt.Errorf("chat completion: %w", err)
}
