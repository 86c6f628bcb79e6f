package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmbedded(t *testing.T) {
	path := writeFile(t, "kb.json", `[
		{"id": "a", "text": "Khoirul knows Python", "embedding": [0.1, 0.2]},
		{"id": "b", "text": "Khoirul lives in Sidoarjo", "embedding": [0.3, 0.4]}
	]`)

	chunks, err := LoadEmbedded(path)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "a", chunks[0].ID)
	assert.Equal(t, "Khoirul knows Python", chunks[0].Text)
	assert.Equal(t, []float32{0.1, 0.2}, chunks[0].Embedding)
}

func TestLoadEmbeddedRejectsEmptyArtifact(t *testing.T) {
	path := writeFile(t, "kb.json", `[]`)
	_, err := LoadEmbedded(path)
	assert.ErrorContains(t, err, "no chunks")
}

func TestLoadEmbeddedRejectsMissingEmbedding(t *testing.T) {
	path := writeFile(t, "kb.json", `[{"id": "a", "text": "x", "embedding": []}]`)
	_, err := LoadEmbedded(path)
	assert.ErrorContains(t, err, "no embedding")
}

func TestLoadEmbeddedRejectsMixedDimensions(t *testing.T) {
	path := writeFile(t, "kb.json", `[
		{"id": "a", "text": "x", "embedding": [0.1, 0.2]},
		{"id": "b", "text": "y", "embedding": [0.1]}
	]`)
	_, err := LoadEmbedded(path)
	assert.ErrorContains(t, err, "dimension")
}

func TestLoadEmbeddedMissingFile(t *testing.T) {
	_, err := LoadEmbedded(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadChunks(t *testing.T) {
	path := writeFile(t, "knowledge.yaml", `
chunks:
  - id: about
    text: first passage
  - text: passage without id
`)

	chunks, err := LoadChunks(path)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "about", chunks[0].ID)
	assert.Equal(t, "first passage", chunks[0].Text)
	assert.Empty(t, chunks[1].ID)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	in := []models.EmbeddedChunk{
		{ID: "a", Text: "Khoirul knows Python", Embedding: []float32{1, 0, 0}},
	}
	require.NoError(t, SaveEmbedded(path, in))

	out, err := LoadEmbedded(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
