package qb

// Where sets the WHERE condition, which UPDATE requires.
// See SelectBuilder.Where for the operands.
func (b *UpdateBuilder) Where(left any, args ...any) *UpdateBuilder {
	if b.order.check(clauseWhere, true) {
		b.where = Where(left, args...)
	}
	return b
}

// And adds a condition to WHERE with AND.
func (b *UpdateBuilder) And(left any, args ...any) *UpdateBuilder {
	if b.order.check(clauseAnd, false) {
		b.where.And(left, args...)
	}
	return b
}

// Or adds a condition to WHERE with OR.
func (b *UpdateBuilder) Or(left any, args ...any) *UpdateBuilder {
	if b.order.check(clauseOr, false) {
		b.where.Or(left, args...)
	}
	return b
}
