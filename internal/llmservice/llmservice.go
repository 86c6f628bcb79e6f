// Package llmservice streams chat completions from the Gemini API.
package llmservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/models"
)

// StreamToken is one increment of a generation stream. Concatenating
// Content in arrival order reconstructs the full answer. A token with
// Err set is terminal; the channel closes after it. Channel close
// without an error token means the upstream stream completed.
type StreamToken struct {
	Content string
	Err     error
}

// Generator starts a one-directional token stream for a chat turn.
type Generator interface {
	GenerateStream(ctx context.Context, systemInstruction string, history []models.Message, message string) (<-chan StreamToken, error)
}

// GeminiGenerator implements Generator on top of the Gemini API.
type GeminiGenerator struct {
	llm llms.Model
}

// NewGeminiGenerator creates the generation client. Fails fast on a
// missing API key, before any network traffic.
func NewGeminiGenerator(ctx context.Context, cfg *config.GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.GenerationModel),
	)
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{llm: llm}, nil
}

// GenerateStream relays the model's incremental output through a
// channel. No mid-stream messages go back upstream; cancelling ctx is
// the only way to stop the relay early.
func (g *GeminiGenerator) GenerateStream(ctx context.Context, systemInstruction string, history []models.Message, message string) (<-chan StreamToken, error) {
	return Relay(ctx, g.llm, BuildContents(systemInstruction, history, message)), nil
}

// Relay runs a streaming GenerateContent call in its own goroutine and
// feeds the fragments into a channel. A mid-stream upstream failure is
// surfaced as a terminal error token, never a silently truncated close.
func Relay(ctx context.Context, llm llms.Model, contents []llms.MessageContent) <-chan StreamToken {
	ch := make(chan StreamToken)
	go func() {
		defer close(ch)
		_, err := llm.GenerateContent(ctx, contents, llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			select {
			case ch <- StreamToken{Content: string(chunk)}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))
		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case ch <- StreamToken{Err: fmt.Errorf("generation stream: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}

// BuildContents assembles the wire conversation: system instruction
// first, then the client's history with role tags forwarded as-is,
// then the new user message.
func BuildContents(systemInstruction string, history []models.Message, message string) []llms.MessageContent {
	contents := make([]llms.MessageContent, 0, len(history)+2)
	contents = append(contents, llms.MessageContent{
		Role:  schema.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextContent{Text: systemInstruction}},
	})
	for _, m := range history {
		contents = append(contents, llms.MessageContent{
			Role:  roleToMessageType(m.Role),
			Parts: []llms.ContentPart{llms.TextContent{Text: m.Text}},
		})
	}
	contents = append(contents, llms.MessageContent{
		Role:  schema.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: message}},
	})
	return contents
}

func roleToMessageType(role string) schema.ChatMessageType {
	switch role {
	case "model", "assistant":
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}
