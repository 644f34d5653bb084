package qb

import (
	"errors"
	"fmt"
)

var _ Node = (*SelectBuilder)(nil)

// SelectBuilder builds SELECT statements. It's a Node too, rendered as a
// parenthesized subquery wherever a subquery is allowed.
//
// Calls must follow the order of the clauses in SQL:
//
//	Select → From → [As] → {Join → [As] → On → (And|Or)*}*
//	→ Where → (And|Or)* → GroupBy → OrderBy → Having → (And|Or)*
//	→ Limit → Offset
//
// And / Or extend whichever of ON, WHERE and HAVING was opened last.
type SelectBuilder struct {
	opts  options
	order orderTracker

	columns  []any
	distinct bool
	table    any
	alias    string
	joins    []*join
	where    *WhereTree
	groupBy  []string
	orderBy  []string
	having   *WhereTree
	limit    int64
	offset   int64
	hasLimit bool

	errors []error // errors during building

	debugger
}

func (*SelectBuilder) node() {}

// NewSelectBuilder returns a new SelectBuilder.
func NewSelectBuilder(opts ...Option) *SelectBuilder {
	return &SelectBuilder{
		opts:  newOptions(opts),
		order: orderTracker{table: selectTransitions},
	}
}

// Select sets the columns. No columns means "*".
//
// A column is a string, or one of Raw, AliasGroup, *Aggregate and
// *Conditional.
func (b *SelectBuilder) Select(columns ...any) *SelectBuilder {
	if b.order.check(clauseSelect, true) {
		b.columns = columns
	}
	return b
}

// Distinct sets the flag for SELECT DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

// From sets the table, a string or an Entity, with an optional alias.
func (b *SelectBuilder) From(table any, alias ...string) *SelectBuilder {
	if !b.order.check(clauseFrom, true) {
		return b
	}
	if _, err := tableName(table); err != nil {
		b.pushError(fmt.Errorf("FROM: %w", err))
	}
	b.table = table
	if len(alias) > 0 {
		b.alias = alias[0]
	}
	return b
}

// As sets the alias of the FROM table, or of the last joined table.
func (b *SelectBuilder) As(alias string) *SelectBuilder {
	state := b.order.state
	if !b.order.check(clauseAs, false) {
		return b
	}
	if state == clauseJoin {
		b.joins[len(b.joins)-1].alias = alias
	} else {
		b.alias = alias
	}
	return b
}

// GroupBy sets the GROUP BY columns.
func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	if b.order.check(clauseGroupBy, true) {
		b.groupBy = columns
	}
	return b
}

// OrderBy sets the ORDER BY columns, e.g. "created_at DESC".
func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	if b.order.check(clauseOrderBy, true) {
		b.orderBy = columns
	}
	return b
}

// Limit sets the limit, and optionally the offset.
func (b *SelectBuilder) Limit(limit int64, offset ...int64) *SelectBuilder {
	if !b.order.check(clauseLimit, true) {
		return b
	}
	if limit < 0 {
		b.pushError(fmt.Errorf("%w: negative LIMIT %d", ErrInvalidOperand, limit))
	}
	b.limit = limit
	b.hasLimit = true
	if len(offset) > 0 {
		b.setOffset(offset[0])
	}
	return b
}

// Offset sets the offset, right after Limit.
func (b *SelectBuilder) Offset(offset int64) *SelectBuilder {
	if b.order.check(clauseOffset, true) {
		b.setOffset(offset)
	}
	return b
}

func (b *SelectBuilder) setOffset(offset int64) {
	if offset < 0 {
		b.pushError(fmt.Errorf("%w: negative OFFSET %d", ErrInvalidOperand, offset))
	}
	b.offset = offset
}

// Err returns the first error recorded while building, if any.
func (b *SelectBuilder) Err() error {
	return b.anyError()
}

func (b *SelectBuilder) pushError(err error) {
	b.errors = append(b.errors, err)
}

func (b *SelectBuilder) anyError() error {
	if b.order.err != nil {
		return b.order.err
	}
	return errors.Join(b.errors...)
}
