package store

import (
	"context"

	"github.com/law-makers/activities/pkg/models"
)

// LogRun appends one entry to the scraping history
func (s *Store) LogRun(ctx context.Context, total int, status models.RunStatus, message *string) error {
	const query = `INSERT INTO scraping_history (total_activities, status, error_message) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, total, string(status), message); err != nil {
		return &PersistenceError{Op: "log run", Err: err}
	}
	return nil
}

// RecentRuns returns up to limit history entries, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]models.RunRecord, error) {
	const query = `
SELECT id, scraped_at, total_activities, status, error_message
FROM scraping_history
ORDER BY scraped_at DESC, id DESC
LIMIT $1`

	if limit <= 0 {
		limit = 10
	}
	out := []models.RunRecord{}
	if err := s.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, &PersistenceError{Op: "list runs", Err: err}
	}
	return out, nil
}
