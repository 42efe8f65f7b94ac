// Package gemini implements embedding and token counting using the Google
// Gemini API.
package gemini

import (
	"context"

	"github.com/covdoc/covdoc"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the embedding model used when none is specified.
const DefaultEmbeddingModel = "gemini-embedding-001"

// Ensure Embedder implements covdoc.Embedder at compile time.
var _ covdoc.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors via the Gemini API. One Embedder is
// bound to one model; vectors it produces are only comparable to each other.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder for the given model. An empty model
// selects DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// EmbedDocuments embeds all texts in a single batched request. The returned
// vectors are parallel to texts; a failed request embeds nothing.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, "user"))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType: "RETRIEVAL_DOCUMENT",
	})
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, covdoc.Errorf(covdoc.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, covdoc.Errorf(covdoc.EINTERNAL, "gemini returned empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

// EmbedQuery embeds a single search query.
func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(query, "user")},
		&genai.EmbedContentConfig{TaskType: "RETRIEVAL_QUERY"},
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, covdoc.Errorf(covdoc.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
