package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/kila-labs/go-prompt-backend/internal/config"
)

const openaiName = "openai"

// OpenAIClient obtains completions from the hosted OpenAI API (or any
// OpenAI-compatible endpoint when BaseURL is set) via the official SDK.
type OpenAIClient struct {
	model     string
	maxTokens int
	client    openai.Client
}

// NewOpenAIClient creates a hosted-model client. SDK-level retries are
// disabled: a failed call surfaces immediately and the submission is recorded
// as failed rather than silently retried.
func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string { return openaiName }

// Generate sends one chat completion request and returns the assistant text.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { observeCall(openaiName, start, err) }()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: shared.ChatModel(c.model),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices in completion response", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// CheckHealth lists models, which validates both reachability and the API key
// without consuming completion tokens.
func (c *OpenAIClient) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	_, err := c.client.Models.List(ctx)
	return err == nil
}

var _ Client = (*OpenAIClient)(nil)
