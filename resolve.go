package qb

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/qjebbs/go-qb/internal/named"
)

// Each slot below accepts its own set of nodes, anything else is
// reported as ErrInvalidOperand.

// column renders an item of a column list.
func (c *renderCtx) column(v any) (fragment, error) {
	switch x := v.(type) {
	case string:
		return rawFragment(x), nil
	case Raw:
		return rawFragment(string(x)), nil
	case AliasGroup:
		return x.render()
	case *Aggregate:
		return x.render(), nil
	case *Conditional:
		return c.conditional(x)
	}
	return fragment{}, invalidOperand("column", v)
}

// firstOperand renders the left side of a condition. A lone operand is a
// complete predicate by itself.
func (c *renderCtx) firstOperand(v any, arity int) (fragment, error) {
	switch x := v.(type) {
	case string:
		return rawFragment(x), nil
	case Raw:
		return rawFragment(string(x)), nil
	case *SelectBuilder:
		return c.subquery(x)
	case *Conditional:
		return c.conditional(x)
	case *WhereTree:
		if arity == 1 {
			return x.render(c)
		}
	}
	return fragment{}, invalidOperand("first operand", v)
}

// secondOperand renders the right side of "left = right", or the operator
// part of "left OP ...".
func (c *renderCtx) secondOperand(v any, rawMode bool) (fragment, error) {
	switch x := v.(type) {
	case *Operator:
		return c.operator(x, rawMode)
	case *Param:
		return c.param(x)
	case Raw:
		return rawFragment(string(x)), nil
	case nowNode:
		return rawFragment("NOW()"), nil
	case *SelectBuilder:
		return c.subquery(x)
	case *Conditional:
		return c.conditional(x)
	}
	if isScalar(v) {
		if rawMode {
			return verbatim(v)
		}
		return c.bind(v)
	}
	return fragment{}, invalidOperand("second operand", v)
}

// thirdOperand renders the right side of "left OP right".
func (c *renderCtx) thirdOperand(v any, rawMode bool) (fragment, error) {
	switch x := v.(type) {
	case *Param:
		return c.param(x)
	case Raw:
		return rawFragment(string(x)), nil
	case nowNode:
		return rawFragment("NOW()"), nil
	case *SelectBuilder:
		return c.subquery(x)
	case *Conditional:
		return c.conditional(x)
	}
	if isScalar(v) {
		if rawMode {
			return verbatim(v)
		}
		return c.bind(v)
	}
	return fragment{}, invalidOperand("third operand", v)
}

// value renders an operand of a comparison operator.
func (c *renderCtx) value(v any, rawMode bool) (fragment, error) {
	switch x := v.(type) {
	case *Param:
		return c.param(x)
	case nowNode:
		return rawFragment("NOW()"), nil
	case *SelectBuilder:
		return c.subquery(x)
	case *Conditional:
		return c.conditional(x)
	}
	if isScalar(v) {
		if rawMode {
			s, err := literal(v)
			return rawFragment(s), err
		}
		return c.bind(v)
	}
	return fragment{}, invalidOperand("value", v)
}

// branch renders the success or failure branch of a conditional.
// Scalars are spliced as they are.
func (c *renderCtx) branch(v any) (fragment, error) {
	switch x := v.(type) {
	case *Param:
		return c.param(x)
	case Raw:
		return rawFragment(string(x)), nil
	case nowNode:
		return rawFragment("NOW()"), nil
	case *Aggregate:
		return x.render(), nil
	case *SelectBuilder:
		return c.subquery(x)
	case *Conditional:
		return c.conditional(x)
	case *WhereTree:
		return x.render(c)
	}
	if isScalar(v) {
		return verbatim(v)
	}
	return fragment{}, invalidOperand("conditional branch", v)
}

// rowValue renders a value of an INSERT row or an UPDATE assignment.
// Scalars are bound to key, or to a generated one if key is not a valid
// placeholder name.
func (c *renderCtx) rowValue(v any, key string) (fragment, error) {
	if !named.IsName(key) {
		key = ""
	}
	switch x := v.(type) {
	case Raw:
		return rawFragment(string(x)), nil
	case nowNode:
		return rawFragment("NOW()"), nil
	}
	if isScalar(v) {
		return c.param(&Param{Key: key, Value: v})
	}
	return fragment{}, invalidOperand("row value", v)
}

func (c *renderCtx) bind(v any) (fragment, error) {
	return c.param(&Param{Value: v})
}

func (c *renderCtx) param(p *Param) (fragment, error) {
	key := p.Key
	if key == "" {
		key = c.keys.Next()
	} else if !named.IsName(key) {
		return fragment{}, fmt.Errorf("%w: invalid placeholder key %q", ErrInvalidOperand, key)
	}
	return fragment{
		sql:      ":" + key,
		bindings: []Binding{{Key: key, Value: p.Value}},
	}, nil
}

// subquery renders b on its own, with its own keys, and parenthesizes it.
// Colliding keys are repaired where the result is written.
func (c *renderCtx) subquery(b *SelectBuilder) (fragment, error) {
	if b == nil {
		return fragment{}, invalidOperand("subquery", b)
	}
	if err := c.enter(); err != nil {
		return fragment{}, err
	}
	defer c.leave()
	sub := newRenderCtx(b.opts.keys)
	sub.depth = c.depth
	f, err := b.render(sub)
	if err != nil {
		return fragment{}, fmt.Errorf("subquery: %w", err)
	}
	f.sql = "(" + f.sql + ")"
	return f, nil
}

func (c *renderCtx) conditional(cd *Conditional) (fragment, error) {
	if err := c.enter(); err != nil {
		return fragment{}, err
	}
	defer c.leave()
	var cond fragment
	switch x := cd.Condition.(type) {
	case *WhereTree:
		f, err := x.render(c)
		if err != nil {
			return fragment{}, err
		}
		cond = f
	case string:
		cond = rawFragment(x)
	case Raw:
		cond = rawFragment(string(x))
	default:
		return fragment{}, invalidOperand("condition", cd.Condition)
	}
	success, err := c.branch(cd.Success)
	if err != nil {
		return fragment{}, err
	}
	failure, err := c.branch(cd.Failure)
	if err != nil {
		return fragment{}, err
	}
	w := newFragmentWriter(c)
	w.WriteString("IF(")
	w.WriteFragment(cond)
	w.WriteString(", ")
	w.WriteFragment(success)
	w.WriteString(", ")
	w.WriteFragment(failure)
	w.WriteString(")")
	if cd.Alias != "" {
		w.WriteString(" AS " + cd.Alias)
	}
	return w.Fragment(), nil
}

// operator renders "OP operands", without the left side.
func (c *renderCtx) operator(op *Operator, rawMode bool) (fragment, error) {
	token := op.Kind.String()
	switch op.Kind {
	case OpIsNull, OpIsNotNull, OpIsEmpty, OpIsNotEmpty:
		if len(op.Operands) != 0 {
			return fragment{}, fmt.Errorf("%w: %s takes no operand", ErrInvalidOperand, token)
		}
		return rawFragment(token), nil
	case OpBetween, OpNotBetween:
		if len(op.Operands) != 2 {
			return fragment{}, fmt.Errorf("%w: %s takes 2 operands", ErrInvalidOperand, token)
		}
		from, err := c.value(op.Operands[0], rawMode)
		if err != nil {
			return fragment{}, err
		}
		to, err := c.value(op.Operands[1], rawMode)
		if err != nil {
			return fragment{}, err
		}
		w := newFragmentWriter(c)
		w.WriteString(token + " ")
		w.WriteFragment(from)
		w.WriteString(" AND ")
		w.WriteFragment(to)
		return w.Fragment(), nil
	case OpIn, OpNotIn:
		list, err := c.valueList(op.Operands, rawMode)
		if err != nil {
			return fragment{}, err
		}
		w := newFragmentWriter(c)
		w.WriteString(token + " ")
		w.WriteFragment(list)
		return w.Fragment(), nil
	case OpEqual, OpNotEqual, OpGreaterThan, OpLessThan,
		OpGreaterThanOrEqual, OpLessThanOrEqual, OpLike, OpNotLike:
		if len(op.Operands) != 1 {
			return fragment{}, fmt.Errorf("%w: %s takes 1 operand", ErrInvalidOperand, token)
		}
		v, err := c.value(op.Operands[0], rawMode)
		if err != nil {
			return fragment{}, err
		}
		w := newFragmentWriter(c)
		w.WriteString(token + " ")
		w.WriteFragment(v)
		return w.Fragment(), nil
	}
	return fragment{}, fmt.Errorf("%w: unknown operator %d", ErrInvalidOperand, op.Kind)
}

// valueList renders "(v1, v2, ...)", or a lone subquery.
func (c *renderCtx) valueList(values []any, rawMode bool) (fragment, error) {
	if len(values) == 0 {
		return fragment{}, fmt.Errorf("%w: empty list", ErrInvalidOperand)
	}
	if sq, ok := values[0].(*SelectBuilder); ok && len(values) == 1 {
		return c.subquery(sq)
	}
	items := make([]fragment, 0, len(values))
	for _, v := range values {
		f, err := c.value(v, rawMode)
		if err != nil {
			return fragment{}, err
		}
		items = append(items, f)
	}
	w := newFragmentWriter(c)
	w.WriteString("(")
	w.WriteFragment(joinFragments(c, ", ", items...))
	w.WriteString(")")
	return w.Fragment(), nil
}

// verbatim splices v as SQL text, strings unquoted.
func verbatim(v any) (fragment, error) {
	if s, ok := v.(string); ok {
		return rawFragment(s), nil
	}
	s, err := literal(v)
	return rawFragment(s), err
}

// literal renders v as a SQL literal.
func literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quote(x), nil
	case []byte:
		return quote(string(x)), nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case time.Time:
		return quote(x.Format("2006-01-02 15:04:05")), nil
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidOperand, err)
		}
		if _, ok := dv.(driver.Valuer); ok {
			return "", invalidOperand("literal", dv)
		}
		return literal(dv)
	}
	return fmt.Sprint(v), nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
