package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/law-makers/activities/internal/engine/extractor"
	"github.com/law-makers/activities/internal/reqctx"
	"github.com/law-makers/activities/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of one run
type Result struct {
	Success  bool
	Count    int
	RunID    string
	Duration time.Duration
	Err      error
}

// Runner executes one fetch, extract and persist cycle and records it in the
// audit log. It never panics and never returns an error; the outcome is in Result.
// A failed Result carries a *reqctx.RunError tagged with the run ID.
type Runner struct {
	Fetcher Fetcher
	Store   Store

	// Logger defaults to the global logger
	Logger *zerolog.Logger

	// OnInsert is passed through to Store.ReplaceAll
	OnInsert func()
}

// Run scrapes url and replaces the stored activities with the result
func (r *Runner) Run(ctx context.Context, url string) (res Result) {
	ctx = reqctx.WithRunContext(ctx)
	rc := reqctx.GetRunContext(ctx)

	base := log.Logger
	if r.Logger != nil {
		base = *r.Logger
	}
	logger := base.With().Str("run_id", rc.RunID).Str("url", url).Logger()

	res.RunID = rc.RunID
	defer func() {
		if p := recover(); p != nil {
			err := NewEngineError(ErrCodeInternal, "Unexpected error", fmt.Errorf("panic: %v", p))
			logger.Error().Interface("panic", p).Msg("Run aborted")
			r.audit(ctx, &logger, 0, models.RunFailure, err.AuditMessage())
			res.Success = false
			res.Count = 0
			res.Err = reqctx.NewRunError(ctx, err)
		}
		res.Duration = rc.Elapsed()
	}()

	count, err := r.run(ctx, &logger, url)
	if err != nil {
		logger.Error().Err(err).Msg("Run failed")
		msg := err.Error()
		if ee, ok := err.(*EngineError); ok {
			msg = ee.AuditMessage()
		}
		r.audit(ctx, &logger, 0, models.RunFailure, msg)
		res.Err = reqctx.NewRunError(ctx, err)
		return res
	}

	r.audit(ctx, &logger, count, models.RunSuccess, "")
	logger.Info().Int("count", count).Dur("elapsed", rc.Elapsed()).Msg("Run completed")
	res.Success = true
	res.Count = count
	return res
}

func (r *Runner) run(ctx context.Context, logger *zerolog.Logger, url string) (int, error) {
	if r.Fetcher == nil {
		return 0, NewEngineError(ErrCodeInternal, "Unexpected error", ErrNoFetcher)
	}
	if r.Store == nil {
		return 0, NewEngineError(ErrCodeInternal, "Unexpected error", ErrNoStore)
	}

	logger.Debug().Str("fetcher", r.Fetcher.Name()).Msg("Fetching page")
	page, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, NewEngineError(ErrCodeFetch, "Failed to fetch webpage", err)
	}

	activities := extractor.Extract(page)
	if len(activities) == 0 {
		return 0, NewEngineError(ErrCodeEmptyExtraction, "No activities found in webpage", ErrEmptyExtraction)
	}
	logger.Info().Int("count", len(activities)).Msg("Extracted activities")

	deleted, err := r.Store.ReplaceAll(ctx, activities, r.OnInsert)
	if err != nil {
		return 0, NewEngineError(ErrCodePersistence, "Failed to save to database", err)
	}
	logger.Debug().Int64("deleted", deleted).Int("inserted", len(activities)).Msg("Replaced stored activities")

	return len(activities), nil
}

// audit writes the run record. Failures are logged and otherwise ignored.
func (r *Runner) audit(ctx context.Context, logger *zerolog.Logger, count int, status models.RunStatus, message string) {
	if r.Store == nil {
		logger.Warn().Msg("No store configured, run not recorded")
		return
	}

	var msg *string
	if message != "" {
		msg = &message
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Warn().Interface("panic", p).Msg("Failed to log scraping run")
		}
	}()
	if err := r.Store.LogRun(ctx, count, status, msg); err != nil {
		logger.Warn().Err(err).Msg("Failed to log scraping run")
	}
}
