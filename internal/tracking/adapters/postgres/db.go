// Package postgres persists instrumentation writes through a narrow DB
// interface so the repository can be exercised with fakes.
package postgres

import (
	"context"
	"database/sql"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
