package qb

// Aggregate is an aggregate function call like COUNT(id).
type Aggregate struct {
	Func  string
	Expr  string
	Alias string
}

func (*Aggregate) node() {}

// As sets the alias of the aggregate.
func (a *Aggregate) As(alias string) *Aggregate {
	a.Alias = alias
	return a
}

func newAggregate(fn, expr string) *Aggregate {
	return &Aggregate{Func: fn, Expr: expr}
}

// Count returns COUNT(expr).
func Count(expr string) *Aggregate { return newAggregate("COUNT", expr) }

// Sum returns SUM(expr).
func Sum(expr string) *Aggregate { return newAggregate("SUM", expr) }

// Min returns MIN(expr).
func Min(expr string) *Aggregate { return newAggregate("MIN", expr) }

// Max returns MAX(expr).
func Max(expr string) *Aggregate { return newAggregate("MAX", expr) }

// Avg returns AVG(expr).
func Avg(expr string) *Aggregate { return newAggregate("AVG", expr) }

// Distinct returns "DISTINCT expr", e.g. for qb.Select(qb.Distinct("city")).
func Distinct(expr string) *Aggregate { return newAggregate("DISTINCT", expr) }

func (a *Aggregate) render() fragment {
	var s string
	if a.Func == "DISTINCT" {
		s = "DISTINCT " + a.Expr
	} else {
		s = a.Func + "(" + a.Expr + ")"
	}
	if a.Alias != "" {
		s += " AS " + a.Alias
	}
	return rawFragment(s)
}

// Conditional renders IF(condition, success, failure).
//
// Condition is a *WhereTree or a string spliced verbatim. Scalar branches
// are spliced verbatim too; use Bind() to bind them instead.
type Conditional struct {
	Condition any
	Success   any
	Failure   any
	Alias     string
}

func (*Conditional) node() {}

// If returns a Conditional.
//
//	qb.If(qb.Where("age", ">=", 18), "'adult'", "'minor'").As("kind")
func If(condition, success, failure any) *Conditional {
	return &Conditional{Condition: condition, Success: success, Failure: failure}
}

// As sets the alias of the conditional.
func (c *Conditional) As(alias string) *Conditional {
	c.Alias = alias
	return c
}
