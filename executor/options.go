package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qjebbs/go-qb/dialect"
	sqlfdialect "github.com/qjebbs/go-sqlf/v4/dialect"
)

var defaultDialect = dialect.SQLite{}

// Options defines options for executing statements.
type Options struct {
	debug     bool
	dialect   dialect.Dialect
	returning string
	logger    *slog.Logger
	audit     func(ctx context.Context, e AuditEvent)
	err       error
}

// Option defines a function type for setting Options.
type Option func(*Options)

// WithDebug enables debug logging of the built queries and their timings.
func WithDebug() Option {
	return func(o *Options) {
		o.debug = true
	}
}

// WithDialect sets the SQL dialect of the database. Besides the dialects
// of this module, the go-sqlf MySQL, PostgreSQL and SQLite dialects are
// accepted.
func WithDialect(d sqlfdialect.Dialect) Option {
	return func(o *Options) {
		if d == nil {
			return
		}
		u, ok := dialect.Upgrade(d)
		if !ok {
			o.err = fmt.Errorf("unsupported dialect %T", d)
			return
		}
		o.dialect = u
	}
}

// WithReturning sets the column an INSERT returns on databases without
// LastInsertId but with RETURNING, e.g. PostgreSQL. Defaults to "id",
// an empty column disables it.
func WithReturning(column string) Option {
	return func(o *Options) {
		o.returning = column
	}
}

// WithLogger sets the logger of debug messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// WithAudit sets the function called after every successful
// INSERT, UPDATE and DELETE.
func WithAudit(fn func(ctx context.Context, e AuditEvent)) Option {
	return func(o *Options) {
		o.audit = fn
	}
}

func mergeOptions(opts ...Option) *Options {
	options := &Options{
		dialect:   defaultDialect,
		returning: "id",
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.dialect == nil {
		options.dialect = defaultDialect
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}
