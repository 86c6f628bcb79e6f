package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey fails client construction fast, before any network
// call.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type GeminiConfig struct {
	APIKey          string `yaml:"api_key"`
	GenerationModel string `yaml:"generation_model"`
	EmbeddingModel  string `yaml:"embedding_model"`
}

type RetryConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	InitialDelayMS int `yaml:"initial_delay_ms"`
}

// InitialDelay is the first backoff interval; it doubles per attempt.
func (r RetryConfig) InitialDelay() time.Duration {
	return time.Duration(r.InitialDelayMS) * time.Millisecond
}

type RAGConfig struct {
	TopK           int    `yaml:"top_k"`
	CacheSize      int    `yaml:"cache_size"`
	ChunksPath     string `yaml:"chunks_path"`
	EmbeddingsPath string `yaml:"embeddings_path"`
}

type MailConfig struct {
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Gemini GeminiConfig `yaml:"gemini"`
	Retry  RetryConfig  `yaml:"retry"`
	RAG    RAGConfig    `yaml:"rag"`
	Mail   MailConfig   `yaml:"mail"`
}

// Load reads the YAML config file, then applies .env / environment
// overrides. Environment values win over the file; secrets are expected
// to arrive via environment, never committed in YAML.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{Addr: ":8080"},
		Gemini: GeminiConfig{
			GenerationModel: "gemini-2.0-flash",
			EmbeddingModel:  "embedding-001",
		},
		Retry: RetryConfig{MaxAttempts: 3, InitialDelayMS: 1000},
		RAG: RAGConfig{
			TopK:           3,
			CacheSize:      1024,
			ChunksPath:     "./data/knowledge.yaml",
			EmbeddingsPath: "./data/knowledge-base-embeddings.json",
		},
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	cfg.Server.Addr = get("PORT_ADDR", cfg.Server.Addr)
	cfg.Gemini.APIKey = get("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.GenerationModel = get("GEMINI_MODEL", cfg.Gemini.GenerationModel)
	cfg.Gemini.EmbeddingModel = get("GEMINI_EMBEDDING_MODEL", cfg.Gemini.EmbeddingModel)
	cfg.Mail.APIKey = get("RESEND_API_KEY", cfg.Mail.APIKey)
	cfg.Mail.From = get("CONTACT_FROM", cfg.Mail.From)
	cfg.Mail.To = get("CONTACT_TO", cfg.Mail.To)
	if v := os.Getenv("EMBED_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("EMBED_MAX_ATTEMPTS: %w", err)
		}
		cfg.Retry.MaxAttempts = n
	}

	return cfg, nil
}
