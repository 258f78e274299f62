package engine

import (
	"context"

	"github.com/law-makers/activities/pkg/models"
)

// Fetcher downloads the listing page
type Fetcher interface {
	// Fetch returns the page body decoded as text
	Fetch(ctx context.Context, url string) (string, error)

	// Name returns the name of the fetcher implementation
	Name() string
}

// Store persists activity snapshots and the run audit log
type Store interface {
	// ReplaceAll atomically swaps the stored activities for the given set.
	// onInsert, when not nil, is called after each inserted row.
	ReplaceAll(ctx context.Context, activities []models.Activity, onInsert func()) (int64, error)

	// LogRun appends one audit record
	LogRun(ctx context.Context, total int, status models.RunStatus, message *string) error
}
