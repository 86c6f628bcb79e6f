// Package prompt assembles the system instruction for the chat model.
package prompt

import (
	"fmt"
	"strings"

	"portfolio-chat/internal/models"
)

// BuildSystemInstruction renders the persona prompt with the retrieved
// chunks as a bulleted context block. Only the chunks passed in appear;
// identical input renders identical output.
func BuildSystemInstruction(results []models.SimilarityResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, "- "+r.Chunk.Text)
	}
	return fmt.Sprintf(models.PersonaPromptTemplate, strings.Join(lines, "\n"))
}
