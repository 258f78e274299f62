// Package store persists activity snapshots and the scraping history in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/law-makers/activities/internal/config"
	"github.com/rs/zerolog/log"
)

// DriverName is the database/sql driver registered by pgx
const DriverName = "pgx"

//go:embed schema.sql
var schema string

// Store is the PostgreSQL-backed persister
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg config.Database) (*Store, error) {
	log.Debug().Str("dsn", cfg.Redacted()).Msg("Connecting to database")

	db, err := sqlx.ConnectContext(ctx, DriverName, cfg.DSN())
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Err: err}
	}
	// A run is strictly sequential
	db.SetMaxOpenConns(1)

	log.Debug().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Connected to database")
	return New(db), nil
}

// Close releases the connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema creates the tables the scraper writes to when they are missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return &PersistenceError{Op: "ensure schema", Err: err}
	}
	return nil
}

// withTx runs fn inside a transaction, committing when fn succeeds and rolling
// back otherwise
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
