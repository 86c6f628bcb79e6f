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
	"portfolio-chat/internal/knowledge"
	"portfolio-chat/internal/llmservice"
	"portfolio-chat/internal/mail"
	"portfolio-chat/internal/rag"
	"portfolio-chat/internal/server"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	chunks, err := knowledge.LoadEmbedded(cfg.RAG.EmbeddingsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading knowledge base embeddings")
	}
	log.Info().Int("chunks", len(chunks)).Int("dimensions", len(chunks[0].Embedding)).Msg("Loaded knowledge base")

	embedder, err := embedding.NewGeminiEmbedder(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	retrier := embedding.NewRetrier(embedder, cfg.Retry)
	cached, err := embedding.NewCachedEmbedder(retrier, cfg.RAG.CacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedding cache")
	}

	generator, err := llmservice.NewGeminiGenerator(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing generator")
	}

	pipeline := rag.NewRAG(cached, generator, chunks, cfg.RAG.TopK)
	mailer := mail.New(&cfg.Mail)

	e := server.New(server.NewHandler(pipeline, mailer), cfg.Server.AllowOrigins)
	log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
	if err := e.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
