package qb

import (
	"errors"
	"fmt"
)

// UpdateBuilder builds UPDATE statements.
//
//	Update → [As] → Set | SetRaw → Where → (And|Or)*
type UpdateBuilder struct {
	opts  options
	order orderTracker

	table  any
	alias  string
	fields []*Field
	rawSet string
	isRaw  bool
	hasSet bool
	where  *WhereTree

	errors []error // errors during building

	debugger
}

// NewUpdateBuilder returns a new UpdateBuilder.
func NewUpdateBuilder(opts ...Option) *UpdateBuilder {
	return &UpdateBuilder{
		opts:  newOptions(opts),
		order: orderTracker{table: updateTransitions},
	}
}

// Update sets the target table, a string or an Entity.
func (b *UpdateBuilder) Update(table any) *UpdateBuilder {
	if !b.order.check(clauseUpdate, true) {
		return b
	}
	if _, err := tableName(table); err != nil {
		b.pushError(fmt.Errorf("UPDATE: %w", err))
	}
	b.table = table
	return b
}

// As sets the alias of the target table.
func (b *UpdateBuilder) As(alias string) *UpdateBuilder {
	if b.order.check(clauseAs, false) {
		b.alias = alias
	}
	return b
}

// Set sets the assignments. Fields are evaluated at render time, and a
// field is assigned only if it's accepted and its value changed:
//
//	qb.Update("users").Set(
//		qb.Change("email", user.Email, form.Email),
//		qb.Change("verified", user.Verified, false).DependsOn("email"),
//	).Where("id", user.ID)
//
// If no field is assigned, the statement renders empty.
func (b *UpdateBuilder) Set(fields ...*Field) *UpdateBuilder {
	if b.order.check(clauseSet, true) {
		b.fields = fields
		b.hasSet = true
	}
	return b
}

// SetRaw sets the assignments as they are, e.g. "hits = hits + 1".
func (b *UpdateBuilder) SetRaw(assignments string) *UpdateBuilder {
	if b.order.check(clauseSet, true) {
		b.rawSet = assignments
		b.isRaw = true
		b.hasSet = true
	}
	return b
}

// Err returns the first error recorded while building, if any.
func (b *UpdateBuilder) Err() error {
	return b.anyError()
}

func (b *UpdateBuilder) pushError(err error) {
	b.errors = append(b.errors, err)
}

func (b *UpdateBuilder) anyError() error {
	if b.order.err != nil {
		return b.order.err
	}
	return errors.Join(b.errors...)
}
