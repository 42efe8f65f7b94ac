package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/covdoc/covdoc"
)

// Compile-time interface verification.
var _ covdoc.LinkService = (*LinkService)(nil)

// LinkService implements covdoc.LinkService using SQLite. Links are keyed by
// URL and accumulate across crawl sessions; re-discovery never resets a
// link's crawl status.
type LinkService struct {
	db *DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB) *LinkService {
	return &LinkService{db: db}
}

// UpsertLinks inserts or updates links by URL. An existing row keeps its
// crawl status unless the incoming link carries a non-empty one; source,
// type, and text are refreshed from the latest discovery.
func (s *LinkService) UpsertLinks(ctx context.Context, links []covdoc.DiscoveredLink) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, link := range links {
		if link.URL == "" {
			return covdoc.Errorf(covdoc.EINVALID, "link URL required")
		}
		status := link.Status
		if status == "" {
			status = covdoc.LinkPending
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO discovered_links (url, source_url, link_type, link_text, crawl_status)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				source_url = excluded.source_url,
				link_type = excluded.link_type,
				link_text = excluded.link_text,
				crawl_status = CASE WHEN ? != '' THEN ? ELSE discovered_links.crawl_status END
		`, link.URL, link.SourceURL, link.Type, link.Text, status,
			string(link.Status), string(link.Status)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MarkLink records the outcome of a crawl attempt. The link row is created
// if it does not exist, which covers seed URLs that were never discovered.
func (s *LinkService) MarkLink(ctx context.Context, url string, status covdoc.LinkStatus, errMsg string) error {
	if url == "" {
		return covdoc.Errorf(covdoc.EINVALID, "link URL required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO discovered_links (url, link_type, crawl_status, last_attempt, error_message)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			crawl_status = excluded.crawl_status,
			last_attempt = excluded.last_attempt,
			error_message = excluded.error_message
	`, url, covdoc.LinkInternal, status, now, errMsg)

	return err
}

// FindLinks retrieves links matching the filter, ordered by URL.
func (s *LinkService) FindLinks(ctx context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, source_url, link_type, link_text, crawl_status, last_attempt, error_message FROM discovered_links WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Type != nil {
		query.WriteString(" AND link_type = ?")
		args = append(args, *filter.Type)
	}
	if filter.Status != nil {
		query.WriteString(" AND crawl_status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*covdoc.DiscoveredLink
	for rows.Next() {
		var link covdoc.DiscoveredLink
		var lastAttempt string

		if err := rows.Scan(&link.URL, &link.SourceURL, &link.Type, &link.Text,
			&link.Status, &lastAttempt, &link.ErrorMessage); err != nil {
			return nil, err
		}

		if lastAttempt != "" {
			link.LastAttempt, err = parseRFC3339(lastAttempt, "last_attempt")
			if err != nil {
				return nil, err
			}
		}

		links = append(links, &link)
	}

	return links, rows.Err()
}
