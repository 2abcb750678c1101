package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/config"
)

// CompletionClient turns a structured prompt into generated text. It serves
// both candidate analysis and the assistant's chat features.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

type openAICompletionClient struct {
	llm    *openai.LLM
	logger *zap.Logger
}

// NewOpenAICompletionClient creates a CompletionClient against any
// OpenAI-compatible /chat/completions endpoint.
func NewOpenAICompletionClient(cfg config.LLMConfig, logger *zap.Logger) (CompletionClient, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ChatModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	return &openAICompletionClient{
		llm:    llm,
		logger: logger.Named("completion"),
	}, nil
}

// Complete implements CompletionClient.
func (c *openAICompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
		llms.WithTopP(0.9),
	)
	if err != nil {
		c.logger.Warn("completion request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrCompletionFailure, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", fmt.Errorf("%w: no content in response", ErrCompletionFailure)
	}

	return resp.Choices[0].Content, nil
}
