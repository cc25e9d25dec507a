package ai

import "context"

// Embedder turns text into a fixed-length vector. Implementations are shared
// across calls and must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}
