// Package rag wires the chat pipeline: embed the query, rank the
// knowledge base, assemble the persona prompt, open the generation
// stream.
package rag

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/embedding"
	"portfolio-chat/internal/llmservice"
	"portfolio-chat/internal/models"
	"portfolio-chat/internal/prompt"
	"portfolio-chat/internal/retrieval"
)

type RAG struct {
	embedder  embedding.Embedder
	generator llmservice.Generator
	chunks    []models.EmbeddedChunk
	topK      int
}

// NewRAG holds no per-request state and is safe for concurrent use.
// The embedder is expected to already carry the cache and retry layers.
func NewRAG(embedder embedding.Embedder, generator llmservice.Generator, chunks []models.EmbeddedChunk, topK int) *RAG {
	return &RAG{embedder: embedder, generator: generator, chunks: chunks, topK: topK}
}

// ChatStream runs one chat turn and returns the token stream. An empty
// knowledge base degrades to an empty context block, not an error.
func (r *RAG) ChatStream(ctx context.Context, history []models.Message, message string) (<-chan llmservice.StreamToken, error) {
	queryEmbedding, err := r.embedder.EmbedQuery(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("resolving query embedding: %w", err)
	}

	results := retrieval.Rank(queryEmbedding, r.chunks, r.topK)
	log.Debug().Int("retrieved", len(results)).Msg("Ranked knowledge chunks")

	systemInstruction := prompt.BuildSystemInstruction(results)
	return r.generator.GenerateStream(ctx, systemInstruction, history, message)
}
