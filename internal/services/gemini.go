package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"talentforge/hr-platform/internal/config"
)

// GeminiClient is the alternate LLM provider. It satisfies both
// EmbeddingClient and CompletionClient so it can be swapped in wholesale via
// LLM_PROVIDER=gemini.
type GeminiClient struct {
	client     *genai.Client
	modelName  string
	embedModel string
	dimension  int
	logger     *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
		dimension:  cfg.EmbeddingDim,
		logger:     logger.Named("gemini"),
	}, nil
}

// Embed implements EmbeddingClient.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		text = emptyTextPlaceholder
	}
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		g.logger.Warn("embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrEmbeddingFailure)
	}

	return result.Embeddings[0].Values, nil
}

// Dimension implements EmbeddingClient.
func (g *GeminiClient) Dimension() int {
	return g.dimension
}

// Complete implements CompletionClient. Gemini has no separate system role;
// the system prompt is prepended to the user prompt.
func (g *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	temp := float32(temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(maxTokens),
	}

	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		g.logger.Warn("completion request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrCompletionFailure, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrCompletionFailure)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrCompletionFailure)
	}

	return text, nil
}
