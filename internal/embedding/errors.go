package embedding

import (
	"errors"
	"strings"
)

// ErrEmbeddingMissing means the provider answered successfully but the
// response carried no usable vector.
var ErrEmbeddingMissing = errors.New("embedding provider returned no usable vector")

// Category is the closed set of embedding-provider failure classes.
// Provider errors are classified once here, at the boundary; the rest
// of the pipeline dispatches on the category instead of re-inspecting
// error text.
type Category int

const (
	CategoryOther Category = iota
	CategoryRateLimited
	CategoryQuotaExhausted
	CategoryMissingEmbedding
)

// Retryable reports whether the retry loop may attempt the call again.
// Only transient rate limiting qualifies; quota exhaustion is signaled
// with the same 429 status but never recovers within a request.
func (c Category) Retryable() bool {
	return c == CategoryRateLimited
}

// Classify maps a provider error onto a Category. The provider surfaces
// both throttling and quota exhaustion through generic errors, so the
// text is inspected — but only in this one place.
func Classify(err error) Category {
	if errors.Is(err, ErrEmbeddingMissing) {
		return CategoryMissingEmbedding
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"):
		return CategoryQuotaExhausted
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return CategoryRateLimited
	default:
		return CategoryOther
	}
}
