package sqlite

import (
	"context"
	"time"

	"github.com/covdoc/covdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ covdoc.SessionService = (*SessionService)(nil)

// SessionService implements covdoc.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession creates a session in the running state and assigns its ID
// and start timestamp.
func (s *SessionService) CreateSession(ctx context.Context, session *covdoc.CrawlSession) error {
	session.ID = uuid.New().String()
	session.StartedAt = time.Now().UTC()
	session.Status = covdoc.SessionRunning

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_sessions (id, started_at, status)
		VALUES (?, ?, ?)
	`, session.ID, session.StartedAt.Format(time.RFC3339), session.Status)

	return err
}

// FinalizeSession records the terminal status, counters, and end timestamp.
func (s *SessionService) FinalizeSession(ctx context.Context, session *covdoc.CrawlSession) error {
	if session.ID == "" {
		return covdoc.Errorf(covdoc.EINVALID, "session ID required")
	}

	session.CompletedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE crawl_sessions
		SET completed_at = ?, status = ?, pages_discovered = ?, pages_processed = ?,
			pages_successful = ?, pages_failed = ?, internal_links = ?, external_links = ?,
			error_message = ?
		WHERE id = ?
	`, session.CompletedAt.Format(time.RFC3339), session.Status,
		session.PagesDiscovered, session.PagesProcessed, session.PagesSuccessful,
		session.PagesFailed, session.InternalLinks, session.ExternalLinks,
		session.ErrorMessage, session.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return covdoc.Errorf(covdoc.ENOTFOUND, "session not found")
	}

	return nil
}

// FindSessions retrieves sessions, most recent first.
func (s *SessionService) FindSessions(ctx context.Context, limit int) ([]*covdoc.CrawlSession, error) {
	query := `
		SELECT id, started_at, completed_at, status, pages_discovered, pages_processed,
			pages_successful, pages_failed, internal_links, external_links, error_message
		FROM crawl_sessions
		ORDER BY started_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*covdoc.CrawlSession
	for rows.Next() {
		var session covdoc.CrawlSession
		var startedAt, completedAt string

		if err := rows.Scan(&session.ID, &startedAt, &completedAt, &session.Status,
			&session.PagesDiscovered, &session.PagesProcessed, &session.PagesSuccessful,
			&session.PagesFailed, &session.InternalLinks, &session.ExternalLinks,
			&session.ErrorMessage); err != nil {
			return nil, err
		}

		session.StartedAt, err = parseRFC3339(startedAt, "started_at")
		if err != nil {
			return nil, err
		}
		if completedAt != "" {
			session.CompletedAt, err = parseRFC3339(completedAt, "completed_at")
			if err != nil {
				return nil, err
			}
		}

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
