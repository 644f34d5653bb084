package qb

import (
	"database/sql/driver"
	"strings"
	"time"
)

// Node is an expression the builders know how to render.
//
// The set of nodes is closed:
//   - Raw
//   - *Param
//   - Now()
//   - AliasGroup
//   - *Aggregate
//   - *Conditional
//   - *Operator
//   - *WhereTree
//   - *SelectBuilder (as subquery)
//
// Besides nodes, Go scalars (string, bool, numbers, time.Time, []byte,
// nil and driver.Valuer) are accepted wherever a value is expected.
type Node interface {
	node()
}

// Raw is a SQL fragment written into the query verbatim.
// The caller is responsible for its correctness.
type Raw string

func (Raw) node() {}

// Param is a value bound to a named placeholder.
type Param struct {
	// Key is the placeholder name. A key is generated at render time
	// when empty.
	Key   string
	Value any
}

func (*Param) node() {}

// Bind returns a Param with an optional explicit key.
//
//	qb.Bind(42)        // :p1
//	qb.Bind(42, "age") // :age
func Bind(value any, key ...string) *Param {
	p := &Param{Value: value}
	if len(key) > 0 {
		p.Key = key[0]
	}
	return p
}

type nowNode struct{}

func (nowNode) node() {}

// Now returns the NOW() node.
func Now() Node {
	return nowNode{}
}

// AliasGroup is a list of columns of one table, rendered as "t.c1, t.c2".
type AliasGroup struct {
	Table   string
	Columns []string
}

func (AliasGroup) node() {}

// Alias returns an AliasGroup.
func Alias(table string, columns ...string) AliasGroup {
	return AliasGroup{Table: table, Columns: columns}
}

func (g AliasGroup) render() (fragment, error) {
	if len(g.Columns) == 0 {
		return fragment{}, invalidOperand("alias group without columns", g)
	}
	cols := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		cols[i] = g.Table + "." + c
	}
	return rawFragment(strings.Join(cols, ", ")), nil
}

// isScalar reports whether v is a plain Go value to be bound or spliced.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, []byte, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		driver.Valuer:
		return true
	}
	return false
}
