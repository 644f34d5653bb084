package qb

import (
	"fmt"
	"reflect"
)

// Conjunction joins a condition to the ones before it.
type Conjunction int

// conjunctions
const (
	ConjNone Conjunction = iota
	ConjAnd
	ConjOr
)

func (c Conjunction) String() string {
	switch c {
	case ConjAnd:
		return "AND"
	case ConjOr:
		return "OR"
	}
	return ""
}

// operation is one predicate. Its arity is 1 + len(args).
type operation struct {
	left any
	args []any
}

type condition struct {
	conj Conjunction
	op   operation
}

// WhereTree is an ordered list of conditions forming one boolean
// expression. It's used by WHERE, HAVING and JOIN ... ON, and can be
// nested as the lone operand of another condition:
//
//	qb.Where("status", "active").And(
//		qb.Where("age", ">", 18).Or("vip", true),
//	)
//	// (status = :p1 AND (age > :p2 OR vip = :p3))
//
// The operands of a condition decide how it renders:
//   - Where(predicate) renders the predicate as is.
//   - Where(column, value) renders "column = value", or "column OP ..."
//     when value is an *Operator.
//   - Where(column, op, value) renders "column OP value", where op is one
//     of = != <> > < >= <= LIKE, NOT LIKE, BETWEEN, NOT BETWEEN, IN, NOT IN,
//     IS, IS NOT.
type WhereTree struct {
	conditions []condition

	// rawMode splices scalar operands instead of binding them.
	rawMode bool
	// suppressParens drops the enclosing parentheses.
	suppressParens bool

	capturedID any
	hasID      bool

	errors []error
}

func (*WhereTree) node() {}

// Where returns a new tree with a single condition.
func Where(left any, args ...any) *WhereTree {
	t := &WhereTree{}
	t.push(ConjNone, left, args)
	return t
}

// newOnTree returns the tree of a JOIN ... ON clause.
func newOnTree() *WhereTree {
	return &WhereTree{rawMode: true, suppressParens: true}
}

// And appends a condition joined with AND.
func (t *WhereTree) And(left any, args ...any) *WhereTree {
	t.push(ConjAnd, left, args)
	return t
}

// Or appends a condition joined with OR.
func (t *WhereTree) Or(left any, args ...any) *WhereTree {
	t.push(ConjOr, left, args)
	return t
}

// Len returns the number of conditions.
func (t *WhereTree) Len() int {
	return len(t.conditions)
}

// ID returns the last value compared against a column named "id".
func (t *WhereTree) ID() (any, bool) {
	return t.capturedID, t.hasID
}

func (t *WhereTree) push(conj Conjunction, left any, args []any) {
	if len(t.conditions) == 0 && conj != ConjNone {
		t.errors = append(t.errors, fmt.Errorf("%w: %s on an empty condition tree", ErrEmptyConditionTree, conj))
		return
	}
	if len(args) > 2 {
		t.errors = append(t.errors, fmt.Errorf("%w: a condition takes at most 3 operands, got %d", ErrInvalidOperand, len(args)+1))
		return
	}
	if len(t.conditions) > 0 && conj == ConjNone {
		conj = ConjAnd
	}
	t.conditions = append(t.conditions, condition{conj: conj, op: operation{left: left, args: args}})
	t.captureID(left, args)
}

func (t *WhereTree) captureID(left any, args []any) {
	if col, ok := left.(string); !ok || col != "id" {
		return
	}
	var v any
	switch len(args) {
	case 1:
		v = args[0]
		if op, ok := v.(*Operator); ok && op.Kind == OpEqual && len(op.Operands) == 1 {
			v = op.Operands[0]
		}
	case 2:
		if op, ok := args[0].(string); !ok || op != "=" {
			return
		}
		v = args[1]
	default:
		return
	}
	if p, ok := v.(*Param); ok {
		v = p.Value
	}
	if !isScalar(v) {
		return
	}
	t.capturedID, t.hasID = v, true
}

func (t *WhereTree) render(ctx *renderCtx) (fragment, error) {
	if t == nil || len(t.conditions) == 0 {
		if t != nil && len(t.errors) > 0 {
			return fragment{}, t.errors[0]
		}
		return fragment{}, ErrEmptyConditionTree
	}
	if len(t.errors) > 0 {
		return fragment{}, t.errors[0]
	}
	if err := ctx.enter(); err != nil {
		return fragment{}, err
	}
	defer ctx.leave()
	w := newFragmentWriter(ctx)
	if !t.suppressParens {
		w.WriteString("(")
	}
	for i, c := range t.conditions {
		if i > 0 {
			w.WriteString(" " + c.conj.String() + " ")
		}
		f, err := t.renderOperation(ctx, c.op)
		if err != nil {
			return fragment{}, err
		}
		w.WriteFragment(f)
	}
	if !t.suppressParens {
		w.WriteString(")")
	}
	return w.Fragment(), nil
}

func (t *WhereTree) renderOperation(ctx *renderCtx, op operation) (fragment, error) {
	if len(op.args) == 0 {
		return ctx.firstOperand(op.left, 1)
	}
	left, err := ctx.firstOperand(op.left, len(op.args)+1)
	if err != nil {
		return fragment{}, err
	}
	w := newFragmentWriter(ctx)
	w.WriteFragment(left)
	if len(op.args) == 1 {
		right, err := ctx.secondOperand(op.args[0], t.rawMode)
		if err != nil {
			return fragment{}, err
		}
		if _, ok := op.args[0].(*Operator); ok {
			w.WriteString(" ")
		} else {
			w.WriteString(" = ")
		}
		w.WriteFragment(right)
		return w.Fragment(), nil
	}
	s, ok := op.args[0].(string)
	if !ok {
		return fragment{}, invalidOperand("operator", op.args[0])
	}
	token, ok := normalizeOperator(s)
	if !ok {
		return fragment{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidOperand, s)
	}
	right, err := t.renderThird(ctx, token, op.args[1])
	if err != nil {
		return fragment{}, err
	}
	w.WriteString(" " + token + " ")
	w.WriteFragment(right)
	return w.Fragment(), nil
}

// renderThird handles the operators expecting a list or NULL, and
// falls back to the third operand slot.
func (t *WhereTree) renderThird(ctx *renderCtx, token string, v any) (fragment, error) {
	switch token {
	case "IN", "NOT IN":
		if isList(v) {
			return ctx.valueList(flattenList([]any{v}), t.rawMode)
		}
	case "BETWEEN", "NOT BETWEEN":
		if isList(v) {
			bounds := flattenList([]any{v})
			if len(bounds) != 2 {
				return fragment{}, fmt.Errorf("%w: %s takes 2 operands", ErrInvalidOperand, token)
			}
			from, err := ctx.value(bounds[0], t.rawMode)
			if err != nil {
				return fragment{}, err
			}
			to, err := ctx.value(bounds[1], t.rawMode)
			if err != nil {
				return fragment{}, err
			}
			return joinFragments(ctx, " AND ", from, to), nil
		}
	case "IS", "IS NOT":
		if v == nil {
			return rawFragment("NULL"), nil
		}
	}
	return ctx.thirdOperand(v, t.rawMode)
}

func isList(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
