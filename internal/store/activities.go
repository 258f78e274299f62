package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/law-makers/activities/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	deleteActivities = `DELETE FROM activities`
	insertActivity   = `INSERT INTO activities (category, class_name, schedule, cost, enrollment_deadline) VALUES ($1, $2, $3, $4, $5)`

	selectActivities = `SELECT category, class_name, schedule, cost, enrollment_deadline FROM activities`
)

// ReplaceAll deletes every stored activity and inserts the given ones in a
// single transaction. It returns the number of rows deleted. onInsert, when not
// nil, is called after each inserted row.
func (s *Store) ReplaceAll(ctx context.Context, activities []models.Activity, onInsert func()) (int64, error) {
	if len(activities) == 0 {
		return 0, &PersistenceError{Op: "replace activities", Err: ErrNoActivities}
	}

	var deleted int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, deleteActivities)
		if err != nil {
			return fmt.Errorf("clear activities: %w", err)
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("clear activities: %w", err)
		}
		log.Debug().Int64("deleted", deleted).Msg("Cleared existing activities")

		stmt, err := tx.PreparexContext(ctx, insertActivity)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, a := range activities {
			if _, err := stmt.ExecContext(ctx, a.Category, a.ClassName, a.Schedule, a.Cost, a.EnrollmentDeadline); err != nil {
				return fmt.Errorf("insert activity %d (%s / %s): %w", i, a.Category, a.ClassName, err)
			}
			if onInsert != nil {
				onInsert()
			}
		}
		return nil
	})
	if err != nil {
		return 0, &PersistenceError{Op: "replace activities", Err: err}
	}

	log.Info().Int("count", len(activities)).Msg("Saved activities to database")
	return deleted, nil
}

// ListAll returns every stored activity ordered by category then class name
func (s *Store) ListAll(ctx context.Context) ([]models.Activity, error) {
	out := []models.Activity{}
	if err := s.db.SelectContext(ctx, &out, selectActivities+` ORDER BY category, class_name`); err != nil {
		return nil, &PersistenceError{Op: "list activities", Err: err}
	}
	return out, nil
}

// ListByCategory returns the activities of one category ordered by class name
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.Activity, error) {
	out := []models.Activity{}
	if err := s.db.SelectContext(ctx, &out, selectActivities+` WHERE category = $1 ORDER BY class_name`, category); err != nil {
		return nil, &PersistenceError{Op: "list category", Err: err}
	}
	return out, nil
}

// Categories returns the distinct categories in alphabetical order
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := s.db.SelectContext(ctx, &out, `SELECT DISTINCT category FROM activities ORDER BY category`); err != nil {
		return nil, &PersistenceError{Op: "list categories", Err: err}
	}
	return out, nil
}

type costSummary struct {
	Total   int      `db:"total"`
	Free    int      `db:"free"`
	AvgCost *float64 `db:"avg_cost"`
	MinCost *float64 `db:"min_cost"`
	MaxCost *float64 `db:"max_cost"`
}

// Stats aggregates the stored activities. Cost figures cover paid activities only.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	const summaryQuery = `
SELECT COUNT(*) AS total,
       COUNT(*) FILTER (WHERE cost = 0) AS free,
       (AVG(cost) FILTER (WHERE cost > 0))::float8 AS avg_cost,
       (MIN(cost) FILTER (WHERE cost > 0))::float8 AS min_cost,
       (MAX(cost) FILTER (WHERE cost > 0))::float8 AS max_cost
FROM activities`
	const byCategoryQuery = `
SELECT category, COUNT(*) AS count
FROM activities
GROUP BY category
ORDER BY count DESC, category`

	var sum costSummary
	if err := s.db.GetContext(ctx, &sum, summaryQuery); err != nil {
		return nil, &PersistenceError{Op: "stats", Err: err}
	}

	byCategory := []models.CategoryCount{}
	if err := s.db.SelectContext(ctx, &byCategory, byCategoryQuery); err != nil {
		return nil, &PersistenceError{Op: "stats by category", Err: err}
	}

	return &models.Stats{
		Total:       sum.Total,
		Free:        sum.Free,
		Paid:        sum.Total - sum.Free,
		AverageCost: sum.AvgCost,
		MinCost:     sum.MinCost,
		MaxCost:     sum.MaxCost,
		ByCategory:  byCategory,
	}, nil
}
