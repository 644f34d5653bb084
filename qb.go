// Package qb is a fluent SQL statement builder. It provides,
//   - Select, Insert, Update and Delete builders whose calls are checked
//     against the grammar of the statement, as they are made.
//   - An expression model (parameters, aggregates, conditionals,
//     subqueries, raw fragments) rendered into SQL with named placeholders.
//   - Field policies to decide, per field, what goes into INSERT and UPDATE.
//
// A statement renders to SQL text with ":key" placeholders plus a flat
// parameter map, every placeholder having exactly one parameter:
//
//	query, params, err := qb.Select("id", "name").
//		From("users").
//		Where("id", 1).
//		Build()
//	// SELECT id, name FROM users WHERE (id = :p1)
//	// map[p1:1]
//
// Executing statements is left to the caller, see package executor for a
// database/sql based one.
package qb

import (
	"fmt"
	"log/slog"
)

// Entity is a model that knows its table.
type Entity interface {
	TableName() string
}

// Renderer is implemented by all the statement builders.
type Renderer interface {
	Render() (*Statement, error)
}

var (
	_ Renderer = (*SelectBuilder)(nil)
	_ Renderer = (*InsertBuilder)(nil)
	_ Renderer = (*UpdateBuilder)(nil)
	_ Renderer = (*DeleteBuilder)(nil)
)

type options struct {
	keys   func() KeyGenerator
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*options)

// WithKeys sets how placeholder keys are generated. fn is called once
// per render.
func WithKeys(fn func() KeyGenerator) Option {
	return func(o *options) {
		o.keys = fn
	}
}

// WithLogger sets the logger of Debug().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		keys: SequentialKeys,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Builder creates statement builders sharing the same options.
type Builder struct {
	opts []Option
}

// New returns a new Builder.
func New(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// Select starts a SELECT statement.
func (b *Builder) Select(columns ...any) *SelectBuilder {
	return NewSelectBuilder(b.opts...).Select(columns...)
}

// Insert starts an INSERT statement.
func (b *Builder) Insert(table any) *InsertBuilder {
	return NewInsertBuilder(b.opts...).Insert(table)
}

// Update starts an UPDATE statement.
func (b *Builder) Update(table any) *UpdateBuilder {
	return NewUpdateBuilder(b.opts...).Update(table)
}

// Delete starts a DELETE statement.
func (b *Builder) Delete(table any) *DeleteBuilder {
	return NewDeleteBuilder(b.opts...).Delete(table)
}

var std = New()

// Select starts a SELECT statement with the default options.
func Select(columns ...any) *SelectBuilder {
	return std.Select(columns...)
}

// Insert starts an INSERT statement with the default options.
func Insert(table any) *InsertBuilder {
	return std.Insert(table)
}

// Update starts an UPDATE statement with the default options.
func Update(table any) *UpdateBuilder {
	return std.Update(table)
}

// Delete starts a DELETE statement with the default options.
func Delete(table any) *DeleteBuilder {
	return std.Delete(table)
}

// tableName resolves a table given as a string or an Entity.
func tableName(table any) (string, error) {
	switch t := table.(type) {
	case string:
		if t == "" {
			return "", fmt.Errorf("%w: empty table name", ErrInvalidOperand)
		}
		return t, nil
	case Entity:
		return tableName(t.TableName())
	}
	return "", invalidOperand("table", table)
}
