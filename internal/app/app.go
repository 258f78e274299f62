// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/law-makers/activities/internal/config"
	"github.com/law-makers/activities/internal/engine"
	"github.com/law-makers/activities/internal/engine/fetcher"
	"github.com/law-makers/activities/internal/store"
	"github.com/law-makers/activities/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command and shared by everything the command runs.
// Use Close() to release the database connection on every exit path.
type Application struct {
	Config  *config.Config
	Logger  *zerolog.Logger
	Fetcher *fetcher.Fetcher

	storeMu   sync.Mutex
	store     *store.Store
	openStore StoreOpener

	startTime time.Time
}

// StoreOpener connects to the database described by cfg
type StoreOpener func(ctx context.Context, cfg config.Database) (*store.Store, error)

// Option customizes an Application
type Option func(*Application)

// WithStoreOpener replaces store.Open as the way the database is reached
func WithStoreOpener(open StoreOpener) Option {
	return func(a *Application) {
		a.openStore = open
	}
}

// New creates and initializes a new Application.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the page fetcher with the configured timeout, user agent and headers
//
// The database connection is opened lazily by Store so commands that never
// touch the database (parse, probe) work without one.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogging(cfg, os.Stderr)

	f := fetcher.New(fetcher.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
		Headers:   cfg.Headers,
	})
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("user_agent", cfg.UserAgent).
		Int("headers", len(cfg.Headers)).
		Msg("Fetcher initialized")

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Fetcher:   f,
		openStore: store.Open,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// SetupLogging configures the global zerolog logger from cfg and returns it
func SetupLogging(cfg *config.Config, w io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JSONLog {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	}

	logger := log.Logger
	logger.Debug().
		Str("level", level.String()).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return &logger
}

// Store returns the database store, connecting on first use
func (a *Application) Store(ctx context.Context) (*store.Store, error) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	if a.store != nil {
		return a.store, nil
	}

	s, err := a.openStore(ctx, a.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.Logger.Debug().Str("database", a.Config.Database.Name).Msg("Database ready")
	a.store = s
	return s, nil
}

// Runner builds a Runner wired to the fetcher and the database store. The
// tables it writes to are created when missing; when that fails a failed run
// is still recorded if the history table accepts it.
func (a *Application) Runner(ctx context.Context) (*engine.Runner, error) {
	s, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		msg := "Failed to prepare database: " + err.Error()
		if logErr := s.LogRun(ctx, 0, models.RunFailure, &msg); logErr != nil {
			a.Logger.Warn().Err(logErr).Msg("Failed to log scraping run")
		}
		return nil, err
	}
	return &engine.Runner{Fetcher: a.Fetcher, Store: s, Logger: a.Logger}, nil
}

// Close gracefully shuts down the application and all its resources.
// Errors are logged and returned, but never prevent the remaining steps.
func (a *Application) Close(ctx context.Context) error {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	var err error
	if a.store != nil {
		if err = a.store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing database connection")
		}
		a.store = nil
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return err
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
