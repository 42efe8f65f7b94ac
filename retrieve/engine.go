// Package retrieve implements semantic search over stored covenant chunks:
// query embedding, tag boosting, and graceful fallback when the store
// cannot honor enhanced search options.
package retrieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/covdoc/covdoc"
)

// Search defaults.
const (
	// DefaultThreshold is the minimum similarity for a result.
	DefaultThreshold = 0.75

	// DefaultCount is the number of results returned when the caller does
	// not ask for a specific count.
	DefaultCount = 5

	// conflictWidening is the extra results fetched for conflict-prone
	// topics so contradictory rules surface together.
	conflictWidening = 3

	// maxWidenedCount caps the widened result count.
	maxWidenedCount = 8
)

// Engine answers free-text questions about covenant rules. It embeds the
// query with the same model used at indexing time, derives boost tags from
// the query text, and scans the result set for contradictory rules.
type Engine struct {
	Embedder covdoc.Embedder
	Chunks   covdoc.ChunkService
	Logger   *slog.Logger
}

// Result is the outcome of one search: the ranked matches, any rule
// conflicts detected among them, and how the query was interpreted.
type Result struct {
	Results   []covdoc.SearchResult `json:"results"`
	Conflicts []covdoc.Conflict     `json:"conflicts,omitempty"`

	// BoostTags are the tags derived from the query and applied to ranking.
	BoostTags []string `json:"boostTags,omitempty"`

	// Fallback reports that the store rejected the enhanced search options
	// and a basic threshold/top-k search served the results instead.
	Fallback bool `json:"fallback,omitempty"`
}

// Search embeds the query and runs a tag-boosted similarity search.
//
// Queries touching conflict-prone topics fetch extra results so that
// contradictory rules land in the same result set. If the store reports
// EUNSUPPORTED for the enhanced options, Search retries once without them;
// any other store error is returned as-is.
//
// A nil embedder or store yields an empty result, not an error: search is
// an optional capability and callers should degrade, not crash.
func (e *Engine) Search(ctx context.Context, query string, opts covdoc.SearchOptions) (*Result, error) {
	if e.Embedder == nil || e.Chunks == nil {
		return &Result{}, nil
	}

	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}

	tags, conflictProne := covdoc.QueryTags(query)
	if len(opts.BoostTags) == 0 {
		opts.BoostTags = tags
	}
	// Applies to oversized requests too: conflict-prone counts never
	// exceed the cap.
	if conflictProne {
		opts.Count = min(opts.Count+conflictWidening, maxWidenedCount)
	}

	embedding, err := e.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	out := &Result{BoostTags: opts.BoostTags}

	results, err := e.Chunks.SearchChunks(ctx, embedding, opts)
	if err != nil && covdoc.ErrorCode(err) == covdoc.EUNSUPPORTED {
		e.logger().Warn("enhanced search unsupported, falling back", "error", err)
		basic := opts
		basic.BoostTags = nil
		basic.RequireTags = nil
		results, err = e.Chunks.SearchChunks(ctx, embedding, basic)
		out.Fallback = true
	}
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	out.Results = results
	out.Conflicts = covdoc.DetectConflicts(results)
	return out, nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
