package qb

import (
	"errors"
	"fmt"
)

// DefaultSoftDeleteColumn is the column SoftDelete writes when none given.
const DefaultSoftDeleteColumn = "deleted_at"

// DeleteBuilder builds DELETE statements.
//
//	Delete → [As] → Where → (And|Or)*
//
// WHERE is mandatory: deleting a whole table takes raw SQL.
type DeleteBuilder struct {
	opts  options
	order orderTracker

	table any
	alias string
	where *WhereTree

	softDelete   bool
	softColumn   string
	softDeleteAt any

	errors []error // errors during building

	debugger
}

// NewDeleteBuilder returns a new DeleteBuilder.
func NewDeleteBuilder(opts ...Option) *DeleteBuilder {
	return &DeleteBuilder{
		opts:  newOptions(opts),
		order: orderTracker{table: deleteTransitions},
	}
}

// Delete sets the target table, a string or an Entity.
func (b *DeleteBuilder) Delete(table any) *DeleteBuilder {
	if !b.order.check(clauseDelete, true) {
		return b
	}
	if _, err := tableName(table); err != nil {
		b.pushError(fmt.Errorf("DELETE: %w", err))
	}
	b.table = table
	return b
}

// As sets the alias of the target table.
func (b *DeleteBuilder) As(alias string) *DeleteBuilder {
	if b.order.check(clauseAs, false) {
		b.alias = alias
	}
	return b
}

// Where sets the WHERE condition, see SelectBuilder.Where for the operands.
func (b *DeleteBuilder) Where(left any, args ...any) *DeleteBuilder {
	if b.order.check(clauseWhere, true) {
		b.where = Where(left, args...)
	}
	return b
}

// And adds a condition to WHERE with AND.
func (b *DeleteBuilder) And(left any, args ...any) *DeleteBuilder {
	if b.order.check(clauseAnd, false) {
		b.where.And(left, args...)
	}
	return b
}

// Or adds a condition to WHERE with OR.
func (b *DeleteBuilder) Or(left any, args ...any) *DeleteBuilder {
	if b.order.check(clauseOr, false) {
		b.where.Or(left, args...)
	}
	return b
}

// SoftDelete renders the statement as an UPDATE marking the rows deleted:
//
//	UPDATE users SET deleted_at = NOW() WHERE (id = :p1)
//
// column defaults to DefaultSoftDeleteColumn, and a nil at to NOW().
// It can be called at any point of the chain.
func (b *DeleteBuilder) SoftDelete(column string, at any) *DeleteBuilder {
	if column == "" {
		column = DefaultSoftDeleteColumn
	}
	if at == nil {
		at = Now()
	}
	b.softDelete = true
	b.softColumn = column
	b.softDeleteAt = at
	return b
}

// Err returns the first error recorded while building, if any.
func (b *DeleteBuilder) Err() error {
	return b.anyError()
}

func (b *DeleteBuilder) pushError(err error) {
	b.errors = append(b.errors, err)
}

func (b *DeleteBuilder) anyError() error {
	if b.order.err != nil {
		return b.order.err
	}
	return errors.Join(b.errors...)
}
