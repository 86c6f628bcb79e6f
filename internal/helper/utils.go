package helper

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/models"
)

// NewChunkID generates an id for a knowledge chunk authored without one.
func NewChunkID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate chunk id: %v", err)
	}
	return id.String(), nil
}

// PrintChunks pretty-prints parsed knowledge chunks, used by the
// embedgen dry run.
func PrintChunks(chunks []models.KnowledgeChunk) {
	b, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("Error pretty printing chunks")
		return
	}
	fmt.Println(string(b))
}
