package ai

import "context"

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a prompt. Variant names the backend in reply sources,
// e.g. "GEMINI" yields "RAG_GEMINI".
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Variant() string
}
