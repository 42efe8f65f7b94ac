package covdoc

import (
	"context"
	"strings"
	"time"
)

// Chunking defaults. Sizes are in runes.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	// PageChunkMinLength is the minimum trimmed window length for page-level
	// chunking. Section-level chunking applies no minimum; the two call
	// sites intentionally differ.
	PageChunkMinLength = 50

	// maxChunksPerText caps windowing on pathological overlap/size ratios.
	maxChunksPerText = 1000
)

// Chunk represents a span of source text stored with its embedding for
// retrieval. Identity is datastore-assigned; all chunks for a source URL are
// replaced atomically on re-ingestion, so at most one generation exists per
// source at any time.
type Chunk struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Embedding    []float32 `json:"embedding,omitempty"`
	SourceURL    string    `json:"sourceUrl,omitempty"`
	PDFPage      int       `json:"pdfPage,omitempty"`
	SectionTitle string    `json:"sectionTitle,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	PageRange    string    `json:"pageRange,omitempty"`
	ContentHash  string    `json:"contentHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkText splits text into fixed-size overlapping windows. Windows whose
// trimmed length does not exceed minLength are dropped. The window start
// advances by size−overlap each step; the loop stops when the start reaches
// the end of the text or fails to advance.
func ChunkText(text string, size, overlap, minLength int) []string {
	if text == "" || size <= 0 {
		return nil
	}

	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) && len(chunks) < maxChunksPerText {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(chunk)) > minLength {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next <= start {
			break
		}
		start = next
	}

	return chunks
}

// ChunkService persists chunks and serves similarity search over them.
type ChunkService interface {
	// ReplaceChunks atomically replaces all chunks for sourceURL with the
	// given chunks (delete-then-insert). Re-ingesting a source is therefore
	// idempotent: exactly one generation of chunks exists per source.
	ReplaceChunks(ctx context.Context, sourceURL string, chunks []*Chunk) error

	// SearchChunks performs vector similarity search.
	//
	// When opts carries boost or require tags the store must either honor
	// them or return an EUNSUPPORTED error so the caller can fall back to a
	// plain threshold/top-k search. Any other error is a real failure.
	SearchChunks(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)

	// CountChunks returns the number of stored chunks, optionally limited
	// to one source URL (empty string counts everything).
	CountChunks(ctx context.Context, sourceURL string) (int, error)
}

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Minimum similarity score (0–1) a chunk must reach to be returned.
	Threshold float64 `json:"matchThreshold"`

	// Maximum number of results.
	Count int `json:"matchCount"`

	// Tags that raise a matching chunk's rank without excluding others.
	BoostTags []string `json:"boostTags,omitempty"`

	// Tags a chunk must carry to be returned at all.
	RequireTags []string `json:"requireTags,omitempty"`
}

// SearchResult represents a ranked search match. Results exist only at
// query time and are never persisted.
type SearchResult struct {
	Chunk      *Chunk  `json:"chunk"`
	Similarity float64 `json:"similarity"`
	TagBoost   float64 `json:"tagBoostScore,omitempty"`
}
