// Package retrieval scores knowledge chunks against a query embedding.
// The knowledge base is small and static, so a brute-force scan beats
// any index.
package retrieval

import (
	"math"
	"sort"

	"portfolio-chat/internal/models"
)

// Cosine returns the cosine similarity of two equal-length vectors.
// Returns 0 when either vector has zero norm or the lengths differ,
// never NaN.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Rank scores every chunk against the query embedding and returns the
// top k by descending similarity. Ties keep the original chunk order.
// An empty chunk slice yields an empty result.
func Rank(query []float32, chunks []models.EmbeddedChunk, k int) []models.SimilarityResult {
	results := make([]models.SimilarityResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, models.SimilarityResult{
			Chunk:      chunk,
			Similarity: Cosine(query, chunk.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
