package qb

// Having sets the HAVING condition, see Where for the operands.
//
//	b.GroupBy("city").Having(qb.Count("id"), ">", 10)
func (b *SelectBuilder) Having(left any, args ...any) *SelectBuilder {
	if b.order.check(clauseHaving, true) {
		b.having = Where(havingOperand(left), args...)
	}
	return b
}

// havingOperand renders aggregates as the left side of a condition.
func havingOperand(left any) any {
	if a, ok := left.(*Aggregate); ok {
		if a.Alias != "" {
			return a.Alias
		}
		return Raw(a.render().sql)
	}
	return left
}
