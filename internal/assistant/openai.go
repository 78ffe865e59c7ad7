package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful real estate assistant. Answer questions about buying, selling and renting " +
	"homes, mortgages and housing markets concisely and practically."

// OpenAIConfig configures the chat-completion backend.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// OpenAIResponder answers with an OpenAI chat completion and falls back to
// another responder when the API call fails.
type OpenAIResponder struct {
	client    *openai.Client
	model     string
	maxTokens int
	fallback  Responder
	logger    *slog.Logger
}

// NewOpenAIResponder creates a responder backed by the chat-completion API.
func NewOpenAIResponder(cfg OpenAIConfig, fallback Responder, logger *slog.Logger) *OpenAIResponder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}
	return &OpenAIResponder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: maxTokens,
		fallback:  fallback,
		logger:    logger,
	}
}

// Reply asks the model and falls back on any error.
func (o *OpenAIResponder) Reply(ctx context.Context, message string) (string, error) {
	reply, err := o.complete(ctx, message)
	if err == nil {
		return reply, nil
	}
	if errors.Is(err, context.Canceled) {
		return "", err
	}

	o.logger.WarnContext(ctx, "assistant completion failed, using keyword replies",
		slog.String("model", o.model),
		slog.String("error", err.Error()),
	)
	return o.fallback.Reply(ctx, message)
}

func (o *OpenAIResponder) complete(ctx context.Context, message string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxCompletionTokens: o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
