package sqlite

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/covdoc/covdoc"
	"github.com/google/uuid"
)

// TagBoostWeight is the rank bonus per matched boost tag. Small relative to
// similarity so boosting reorders near-ties without drowning out relevance.
const TagBoostWeight = 0.05

// Compile-time interface verification.
var _ covdoc.ChunkService = (*ChunkService)(nil)

// ChunkService implements covdoc.ChunkService using SQLite. Embeddings are
// stored as float32 blobs and compared in-process; the corpus for a single
// association is small enough that a brute-force scan stays fast.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// ReplaceChunks atomically replaces all chunks for sourceURL. The delete and
// inserts run in one transaction, so a failed re-ingestion leaves the
// previous generation intact and a successful one leaves exactly the new
// generation.
func (s *ChunkService) ReplaceChunks(ctx context.Context, sourceURL string, chunks []*covdoc.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) == 0 {
			return covdoc.Errorf(covdoc.EINVALID, "chunk embedding required")
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source_url = ?", sourceURL); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()
		chunk.SourceURL = sourceURL
		chunk.ContentHash = hashContent(chunk.Content)
		chunk.CreatedAt = now

		tags, err := encodeTags(chunk.Tags)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, content, embedding, source_url, pdf_page, section_title, tags, page_range, content_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.Content, encodeVector(chunk.Embedding), chunk.SourceURL, chunk.PDFPage,
			chunk.SectionTitle, tags, chunk.PageRange, chunk.ContentHash,
			chunk.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SearchChunks scans all stored chunks, scores each by cosine similarity to
// the query embedding, and returns the top matches. Boost tags add
// TagBoostWeight per matched tag to a chunk's rank; require tags exclude
// chunks that lack any of them.
func (s *ChunkService) SearchChunks(ctx context.Context, embedding []float32, opts covdoc.SearchOptions) ([]covdoc.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, covdoc.Errorf(covdoc.EINVALID, "query embedding required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, embedding, source_url, pdf_page, section_title, tags, page_range, content_hash, created_at
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []covdoc.SearchResult
	for rows.Next() {
		chunk, vector, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}

		if !hasAllTags(chunk.Tags, opts.RequireTags) {
			continue
		}

		similarity := cosineSimilarity(embedding, vector)
		if similarity < opts.Threshold {
			continue
		}

		results = append(results, covdoc.SearchResult{
			Chunk:      chunk,
			Similarity: similarity,
			TagBoost:   TagBoostWeight * float64(countMatchedTags(chunk.Tags, opts.BoostTags)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity+results[i].TagBoost > results[j].Similarity+results[j].TagBoost
	})

	if opts.Count > 0 && len(results) > opts.Count {
		results = results[:opts.Count]
	}

	return results, nil
}

// CountChunks returns the number of stored chunks, optionally limited to one
// source URL.
func (s *ChunkService) CountChunks(ctx context.Context, sourceURL string) (int, error) {
	var count int
	var err error
	if sourceURL == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE source_url = ?", sourceURL).Scan(&count)
	}
	return count, err
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChunk(row rowScanner) (*covdoc.Chunk, []float32, error) {
	var chunk covdoc.Chunk
	var blob []byte
	var tags, createdAt string

	if err := row.Scan(&chunk.ID, &chunk.Content, &blob, &chunk.SourceURL, &chunk.PDFPage,
		&chunk.SectionTitle, &tags, &chunk.PageRange, &chunk.ContentHash, &createdAt); err != nil {
		return nil, nil, err
	}

	vector, err := decodeVector(blob)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
	}

	chunk.Tags, err = decodeTags(tags)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
	}

	chunk.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, nil, err
	}

	return &chunk, vector, nil
}

func hasAllTags(tags, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	for _, r := range required {
		if !set[r] {
			return false
		}
	}
	return true
}

func countMatchedTags(tags, boost []string) int {
	if len(boost) == 0 || len(tags) == 0 {
		return 0
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	n := 0
	for _, b := range boost {
		if set[b] {
			n++
		}
	}
	return n
}
