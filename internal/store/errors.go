package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoActivities is returned when asked to replace the table with nothing
var ErrNoActivities = errors.New("refusing to replace activities with an empty set")

// PostgreSQL error codes the CLI reacts to
const (
	codeUndefinedTable = "42P01"
)

// PersistenceError reports a failed database operation. Writes that fail are
// rolled back as a unit before it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SQLState returns the PostgreSQL error code behind err, or "" when err did not
// come from the server
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsMissingSchema reports whether err was caused by a table that does not exist yet
func IsMissingSchema(err error) bool {
	return SQLState(err) == codeUndefinedTable
}
