package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/covdoc/covdoc"
)

// Ensure LoggingChunkService implements covdoc.ChunkService.
var _ covdoc.ChunkService = (*LoggingChunkService)(nil)

// LoggingChunkService wraps a ChunkService with per-operation logging.
type LoggingChunkService struct {
	next   covdoc.ChunkService
	logger *slog.Logger
}

// NewLoggingChunkService creates a new LoggingChunkService.
func NewLoggingChunkService(next covdoc.ChunkService, logger *slog.Logger) *LoggingChunkService {
	return &LoggingChunkService{next: next, logger: logger}
}

// ReplaceChunks delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) ReplaceChunks(ctx context.Context, sourceURL string, chunks []*covdoc.Chunk) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace chunks",
			"source", sourceURL,
			"count", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceChunks(ctx, sourceURL, chunks)
}

// SearchChunks delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) SearchChunks(ctx context.Context, embedding []float32, opts covdoc.SearchOptions) (results []covdoc.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search chunks",
			"count", len(results),
			"boostTags", len(opts.BoostTags),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchChunks(ctx, embedding, opts)
}

// CountChunks delegates to the wrapped service.
func (s *LoggingChunkService) CountChunks(ctx context.Context, sourceURL string) (int, error) {
	return s.next.CountChunks(ctx, sourceURL)
}
