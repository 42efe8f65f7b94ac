package covdoc

import "context"

// Embedder maps text to fixed-dimension vectors for similarity comparison.
//
// One Embedder instance is constructed with a single model identifier and
// shared by the indexing and query paths; mixing vectors from different
// models is unsupported.
type Embedder interface {
	// EmbedDocuments embeds all texts in a single batched request. The
	// returned vectors are parallel to texts (order-preserving); the call
	// either returns a complete batch or fails atomically.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single search query.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// TokenCounter counts tokens in text for a specific model. Used for
// ingestion statistics only.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
