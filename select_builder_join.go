package qb

import "fmt"

// JoinKind is the kind of a JOIN.
type JoinKind string

// joins
const (
	JoinLeft  JoinKind = "LEFT JOIN"
	JoinRight JoinKind = "RIGHT JOIN"
	JoinInner JoinKind = "INNER JOIN"
	JoinCross JoinKind = "CROSS JOIN"
	JoinFull  JoinKind = "FULL JOIN"
)

type join struct {
	kind  JoinKind
	table any
	alias string
	on    *WhereTree
}

// LeftJoin appends a LEFT JOIN table, followed by On().
func (b *SelectBuilder) LeftJoin(table any, alias ...string) *SelectBuilder {
	return b.Join(JoinLeft, table, alias...)
}

// RightJoin appends a RIGHT JOIN table, followed by On().
func (b *SelectBuilder) RightJoin(table any, alias ...string) *SelectBuilder {
	return b.Join(JoinRight, table, alias...)
}

// InnerJoin appends an INNER JOIN table, followed by On().
func (b *SelectBuilder) InnerJoin(table any, alias ...string) *SelectBuilder {
	return b.Join(JoinInner, table, alias...)
}

// FullJoin appends a FULL JOIN table, followed by On().
func (b *SelectBuilder) FullJoin(table any, alias ...string) *SelectBuilder {
	return b.Join(JoinFull, table, alias...)
}

// CrossJoin appends a CROSS JOIN table, which takes no ON.
func (b *SelectBuilder) CrossJoin(table any, alias ...string) *SelectBuilder {
	return b.Join(JoinCross, table, alias...)
}

// Join appends a join table.
func (b *SelectBuilder) Join(kind JoinKind, table any, alias ...string) *SelectBuilder {
	if !b.order.check(clauseJoin, true) {
		return b
	}
	switch kind {
	case JoinLeft, JoinRight, JoinInner, JoinCross, JoinFull:
	default:
		b.pushError(fmt.Errorf("%w: unknown join %q", ErrInvalidOperand, kind))
	}
	if _, err := tableName(table); err != nil {
		b.pushError(fmt.Errorf("%s: %w", kind, err))
	}
	j := &join{kind: kind, table: table, on: newOnTree()}
	if len(alias) > 0 {
		j.alias = alias[0]
	}
	b.joins = append(b.joins, j)
	return b
}

// On adds the first condition of the last joined table.
// Scalars are written as they are, so that columns can be compared:
//
//	b.LeftJoin("posts", "p").On("p.user_id", "u.id")
//	// LEFT JOIN posts AS p ON p.user_id = u.id
func (b *SelectBuilder) On(left any, args ...any) *SelectBuilder {
	if !b.order.check(clauseOn, false) {
		return b
	}
	j := b.joins[len(b.joins)-1]
	if j.kind == JoinCross {
		b.pushError(fmt.Errorf("%w: CROSS JOIN takes no ON", ErrInvalidOperand))
	}
	j.on.push(ConjNone, left, args)
	return b
}
