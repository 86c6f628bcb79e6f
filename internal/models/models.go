package models

// Message is a single conversation turn as sent by the chat client.
// Role is forwarded as-is; "model" and "assistant" both mean the AI side.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	History []Message `json:"history"`
	Message string    `json:"message"`
}

// KnowledgeChunk is one independently embeddable passage of the
// knowledge base, authored offline.
type KnowledgeChunk struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// EmbeddedChunk is a KnowledgeChunk plus its precomputed embedding.
// Read-only at serving time.
type EmbeddedChunk struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// SimilarityResult pairs a chunk with its relevance to a query
// embedding. Computed per request, discarded after the response.
type SimilarityResult struct {
	Chunk      EmbeddedChunk
	Similarity float32
}

// ContactForm is the body of POST /api/contact.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResponse mirrors the success/message shape the portfolio UI expects.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
