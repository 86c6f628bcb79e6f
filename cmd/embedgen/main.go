// Command embedgen is the offline batch job that precomputes the
// knowledge-base embeddings artifact loaded by the server at startup.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/embedding"
	"portfolio-chat/internal/helper"
	"portfolio-chat/internal/knowledge"
	"portfolio-chat/internal/models"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	dryRun := flag.Bool("dry-run", false, "Print parsed chunks, do not call the embedding provider")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	chunks, err := knowledge.LoadChunks(cfg.RAG.ChunksPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading knowledge chunks")
	}
	log.Info().Int("chunks", len(chunks)).Msg("Parsed knowledge chunks")

	if *dryRun {
		helper.PrintChunks(chunks)
		return
	}

	ctx := context.Background()
	embedder, err := embedding.NewGeminiEmbedder(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	retrier := embedding.NewRetrier(embedder, cfg.Retry)

	var embedded []models.EmbeddedChunk
	for _, chunk := range chunks {
		if chunk.Text == "" {
			continue
		}
		id := chunk.ID
		if id == "" {
			id, err = helper.NewChunkID()
			if err != nil {
				log.Fatal().Err(err).Msg("Error generating chunk id")
			}
		}
		vector, err := retrier.EmbedQuery(ctx, chunk.Text)
		if err != nil {
			// Skip the chunk rather than losing the whole batch.
			log.Error().Err(err).Str("chunk", id).Msg("Error generating embedding")
			continue
		}
		embedded = append(embedded, models.EmbeddedChunk{ID: id, Text: chunk.Text, Embedding: vector})
		log.Info().Str("chunk", id).Msg("Generated embedding")
	}

	if err := knowledge.SaveEmbedded(cfg.RAG.EmbeddingsPath, embedded); err != nil {
		log.Fatal().Err(err).Msg("Error writing embeddings artifact")
	}
	log.Info().Int("chunks", len(embedded)).Str("path", cfg.RAG.EmbeddingsPath).Msg("Embeddings artifact written")
}
