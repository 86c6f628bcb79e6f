// Package embedding turns query text into vectors via the Gemini
// embedding model, with error classification, bounded retry and a
// process-wide cache layered on top of the raw client.
package embedding

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"

	"portfolio-chat/internal/config"
)

// Embedder is the one capability this package needs from a provider.
// *embeddings.EmbedderImpl satisfies it, as do the test fakes.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, cfg *config.GeminiConfig) (*embeddings.EmbedderImpl, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	log.Debug().
		Str("embedding_model", cfg.EmbeddingModel).
		Msg("Initializing Gemini embedder")

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return embedder, nil
}
