package executor

import (
	"context"
	"database/sql"
)

var (
	_ QueryAble = (*sql.DB)(nil)
	_ QueryAble = (*sql.Tx)(nil)
	_ QueryAble = (*sql.Conn)(nil)
)

// QueryAble is the interface for query-able *sql.DB, *sql.Tx, etc.
type QueryAble interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
