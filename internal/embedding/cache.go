package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// CachedEmbedder memoizes query embeddings for the process lifetime.
// Keys are the raw query string, exact match only — a query differing
// by whitespace or case is a miss. Concurrent misses for the same
// query may both call the provider; last write wins, which is fine
// because the vector is deterministic for a given query and model.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

// NewCachedEmbedder wraps inner with an LRU of the given size. The
// original system never evicts; an LRU this large behaves identically
// in practice while capping memory.
func NewCachedEmbedder(inner Embedder, size int) (*CachedEmbedder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{inner: inner, cache: cache}, nil
}

func (c *CachedEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if vec, ok := c.cache.Get(query); ok {
		log.Debug().Msg("Embedding cache hit")
		return vec, nil
	}
	vec, err := c.inner.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Add(query, vec)
	return vec, nil
}
