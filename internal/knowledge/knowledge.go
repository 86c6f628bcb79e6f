// Package knowledge loads the static knowledge base: the authored
// chunk source (YAML) and the precomputed embeddings artifact (JSON)
// produced by cmd/embedgen.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"portfolio-chat/internal/models"
)

type chunkFile struct {
	Chunks []models.KnowledgeChunk `yaml:"chunks"`
}

// LoadChunks reads the authored knowledge chunks from a YAML file.
func LoadChunks(path string) ([]models.KnowledgeChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file chunkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing knowledge chunks: %w", err)
	}
	return file.Chunks, nil
}

// LoadEmbedded reads the precomputed embeddings artifact. Every chunk
// must carry a non-empty embedding and all embeddings must share one
// dimensionality; mixed dimensions would make cosine scores garbage.
func LoadEmbedded(path string) ([]models.EmbeddedChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chunks []models.EmbeddedChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing embeddings artifact: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("embeddings artifact %s contains no chunks", path)
	}
	dim := len(chunks[0].Embedding)
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			return nil, fmt.Errorf("chunk %q has no embedding", chunk.ID)
		}
		if len(chunk.Embedding) != dim {
			return nil, fmt.Errorf("chunk %q has dimension %d, expected %d", chunk.ID, len(chunk.Embedding), dim)
		}
	}
	return chunks, nil
}

// SaveEmbedded writes the embeddings artifact, pretty-printed so diffs
// stay reviewable.
func SaveEmbedded(path string, chunks []models.EmbeddedChunk) error {
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
