package covdoc

import (
	"context"
	"time"
)

// SessionStatus is the lifecycle state of a crawl session.
type SessionStatus string

// Session statuses.
const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// CrawlSession records one ingestion run for audit and observability.
// A session is created when the crawl starts, mutated by the crawler
// throughout the run, and finalized exactly once at the end. It is owned
// exclusively by one crawl invocation; counters never decrease.
type CrawlSession struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt time.Time     `json:"completedAt,omitempty"`
	Status      SessionStatus `json:"status"`

	PagesDiscovered int `json:"totalPagesDiscovered"`
	PagesProcessed  int `json:"pagesProcessed"`
	PagesSuccessful int `json:"pagesSuccessful"`
	PagesFailed     int `json:"pagesFailed"`
	InternalLinks   int `json:"internalLinksFound"`
	ExternalLinks   int `json:"externalLinksFound"`

	ErrorMessage string `json:"errorMessage,omitempty"`
}

// SessionService persists crawl sessions.
type SessionService interface {
	// CreateSession creates a session in the running state and assigns
	// its ID and start timestamp.
	CreateSession(ctx context.Context, session *CrawlSession) error

	// FinalizeSession records the terminal status, counters, and end
	// timestamp for a session.
	FinalizeSession(ctx context.Context, session *CrawlSession) error

	// FindSessions retrieves sessions, most recent first.
	FindSessions(ctx context.Context, limit int) ([]*CrawlSession, error)
}
