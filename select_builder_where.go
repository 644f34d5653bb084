package qb

// Where sets the WHERE condition:
//
//	b.Where("id", 1)                          // (id = :p1)
//	b.Where("age", ">=", 18)                  // (age >= :p1)
//	b.Where("deleted_at", qb.IsNull())        // (deleted_at IS NULL)
//	b.Where("id", qb.In(1, 2, 3))             // (id IN (:p1, :p2, :p3))
//	b.Where(qb.Where("a", 1).Or("b", 2))      // ((a = :p1 OR b = :p2))
func (b *SelectBuilder) Where(left any, args ...any) *SelectBuilder {
	if b.order.check(clauseWhere, true) {
		b.where = Where(left, args...)
	}
	return b
}

// And adds a condition with AND to the last opened ON, WHERE or HAVING.
func (b *SelectBuilder) And(left any, args ...any) *SelectBuilder {
	if tree := b.conditionTree(clauseAnd); tree != nil {
		tree.And(left, args...)
	}
	return b
}

// Or adds a condition with OR to the last opened ON, WHERE or HAVING.
func (b *SelectBuilder) Or(left any, args ...any) *SelectBuilder {
	if tree := b.conditionTree(clauseOr); tree != nil {
		tree.Or(left, args...)
	}
	return b
}

func (b *SelectBuilder) conditionTree(c clause) *WhereTree {
	state := b.order.state
	if !b.order.check(c, false) {
		return nil
	}
	switch state {
	case clauseJoin:
		return b.joins[len(b.joins)-1].on
	case clauseHaving:
		return b.having
	default:
		return b.where
	}
}
