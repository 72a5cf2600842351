package store

import (
	"context"
	"database/sql"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is the subset of *sqlx.DB the Postgres snapshot backend needs.
type DB interface {
	Execer
	Getter
}
