package qb

import (
	"errors"
	"fmt"
)

// InsertBuilder builds INSERT statements.
//
//	Insert → [Columns] → Values | ValuesRaw
type InsertBuilder struct {
	opts  options
	order orderTracker

	table     any
	columns   []string
	fields    []*Field
	rawValues string
	rawRow    bool
	hasValues bool

	errors []error // errors during building

	debugger
}

// NewInsertBuilder returns a new InsertBuilder.
func NewInsertBuilder(opts ...Option) *InsertBuilder {
	return &InsertBuilder{
		opts:  newOptions(opts),
		order: orderTracker{table: insertTransitions},
	}
}

// Insert sets the target table, a string or an Entity.
func (b *InsertBuilder) Insert(table any) *InsertBuilder {
	if !b.order.check(clauseInsert, true) {
		return b
	}
	if _, err := tableName(table); err != nil {
		b.pushError(fmt.Errorf("INSERT: %w", err))
	}
	b.table = table
	return b
}

// Columns sets the column list.
//
// With Values, it renames the fields positionally: the i-th field is
// written to the i-th column. With ValuesRaw, it's the column list as is.
func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	if b.order.check(clauseColumns, false) {
		b.columns = columns
	}
	return b
}

// Values sets the row. Fields are evaluated at render time, and only the
// accepted ones are inserted:
//
//	qb.Insert("users").Values(
//		qb.Value("name", "Ann"),
//		qb.Value("note", note).Allow(note != ""),
//		qb.Value("created_at", qb.Now()),
//	)
//
// If no field is accepted, the statement renders empty.
func (b *InsertBuilder) Values(fields ...*Field) *InsertBuilder {
	if b.order.check(clauseValues, true) {
		b.fields = fields
		b.hasValues = true
	}
	return b
}

// ValuesRaw sets the value list as it is, e.g. "'Ann', NOW()".
func (b *InsertBuilder) ValuesRaw(values string) *InsertBuilder {
	if b.order.check(clauseValues, true) {
		b.rawValues = values
		b.rawRow = true
		b.hasValues = true
	}
	return b
}

// Err returns the first error recorded while building, if any.
func (b *InsertBuilder) Err() error {
	return b.anyError()
}

func (b *InsertBuilder) pushError(err error) {
	b.errors = append(b.errors, err)
}

func (b *InsertBuilder) anyError() error {
	if b.order.err != nil {
		return b.order.err
	}
	return errors.Join(b.errors...)
}
