package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/config"
)

// emptyTextPlaceholder keeps the embedding contract total: whitespace-only
// input still embeds to a valid vector instead of erroring at the provider.
const emptyTextPlaceholder = "(no content)"

// EmbeddingClient turns free text into a fixed-dimension vector.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type openAIEmbeddingClient struct {
	embedder  *embeddings.EmbedderImpl
	dimension int
	logger    *zap.Logger
}

// NewOpenAIEmbeddingClient creates an EmbeddingClient against any
// OpenAI-compatible /embeddings endpoint.
func NewOpenAIEmbeddingClient(cfg config.LLMConfig, logger *zap.Logger) (EmbeddingClient, error) {
	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &openAIEmbeddingClient{
		embedder:  embedder,
		dimension: cfg.EmbeddingDim,
		logger:    logger.Named("embedding"),
	}, nil
}

// Embed implements EmbeddingClient.
func (c *openAIEmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		text = emptyTextPlaceholder
	}

	// Keep prompts inside the embedding model's context window.
	if len(text) > 40000 {
		text = text[:40000]
	}

	vectors, err := c.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		c.logger.Warn("embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrEmbeddingFailure)
	}

	return vectors[0], nil
}

// Dimension implements EmbeddingClient.
func (c *openAIEmbeddingClient) Dimension() int {
	return c.dimension
}
