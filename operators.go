package qb

import (
	"reflect"
	"strings"
)

// OperatorKind is the kind of a comparison operator.
type OperatorKind int

// comparison operators
const (
	OpEqual OperatorKind = iota
	OpNotEqual
	OpGreaterThan
	OpLessThan
	OpGreaterThanOrEqual
	OpLessThanOrEqual
	OpLike
	OpNotLike
	OpBetween
	OpNotBetween
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull
	OpIsEmpty
	OpIsNotEmpty
)

var operatorTokens = [...]string{
	OpEqual:              "=",
	OpNotEqual:           "!=",
	OpGreaterThan:        ">",
	OpLessThan:           "<",
	OpGreaterThanOrEqual: ">=",
	OpLessThanOrEqual:    "<=",
	OpLike:               "LIKE",
	OpNotLike:            "NOT LIKE",
	OpBetween:            "BETWEEN",
	OpNotBetween:         "NOT BETWEEN",
	OpIn:                 "IN",
	OpNotIn:              "NOT IN",
	OpIsNull:             "IS NULL",
	OpIsNotNull:          "IS NOT NULL",
	OpIsEmpty:            "= ''",
	OpIsNotEmpty:         "!= ''",
}

// String returns the SQL token of the operator.
func (k OperatorKind) String() string {
	if k < 0 || int(k) >= len(operatorTokens) {
		return "UNKNOWN"
	}
	return operatorTokens[k]
}

// Operator is a comparison operator with its operands, used as the second
// operand of a condition:
//
//	qb.Where("age", qb.Between(18, 30))
//	qb.Where("deleted_at", qb.IsNull())
type Operator struct {
	Kind     OperatorKind
	Operands []any
}

func (*Operator) node() {}

func newOperator(kind OperatorKind, operands ...any) *Operator {
	return &Operator{Kind: kind, Operands: operands}
}

// Equal renders "= v".
func Equal(v any) *Operator { return newOperator(OpEqual, v) }

// NotEqual renders "!= v".
func NotEqual(v any) *Operator { return newOperator(OpNotEqual, v) }

// GreaterThan renders "> v".
func GreaterThan(v any) *Operator { return newOperator(OpGreaterThan, v) }

// LessThan renders "< v".
func LessThan(v any) *Operator { return newOperator(OpLessThan, v) }

// GreaterThanOrEqual renders ">= v".
func GreaterThanOrEqual(v any) *Operator { return newOperator(OpGreaterThanOrEqual, v) }

// LessThanOrEqual renders "<= v".
func LessThanOrEqual(v any) *Operator { return newOperator(OpLessThanOrEqual, v) }

// Like renders "LIKE v".
func Like(v any) *Operator { return newOperator(OpLike, v) }

// NotLike renders "NOT LIKE v".
func NotLike(v any) *Operator { return newOperator(OpNotLike, v) }

// Between renders "BETWEEN from AND to".
func Between(from, to any) *Operator { return newOperator(OpBetween, from, to) }

// NotBetween renders "NOT BETWEEN from AND to".
func NotBetween(from, to any) *Operator { return newOperator(OpNotBetween, from, to) }

// In renders "IN (v1, v2, ...)". A single slice argument is flattened,
// and a single subquery renders "IN (SELECT ...)".
func In(values ...any) *Operator { return newOperator(OpIn, flattenList(values)...) }

// NotIn renders "NOT IN (v1, v2, ...)", see In.
func NotIn(values ...any) *Operator { return newOperator(OpNotIn, flattenList(values)...) }

// IsNull renders "IS NULL".
func IsNull() *Operator { return newOperator(OpIsNull) }

// IsNotNull renders "IS NOT NULL".
func IsNotNull() *Operator { return newOperator(OpIsNotNull) }

// IsEmpty renders "= ''".
func IsEmpty() *Operator { return newOperator(OpIsEmpty) }

// IsNotEmpty renders "!= ''".
func IsNotEmpty() *Operator { return newOperator(OpIsNotEmpty) }

// flattenList expands a lone slice argument, leaving []byte alone.
func flattenList(values []any) []any {
	if len(values) != 1 {
		return values
	}
	if _, ok := values[0].([]byte); ok {
		return values
	}
	v := reflect.ValueOf(values[0])
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return values
	}
	r := make([]any, v.Len())
	for i := range r {
		r[i] = v.Index(i).Interface()
	}
	return r
}

// operator strings accepted in the 3-operand form of a condition
var relationalOperators = map[string]bool{
	"=":           true,
	"!=":          true,
	"<>":          true,
	">":           true,
	"<":           true,
	">=":          true,
	"<=":          true,
	"LIKE":        true,
	"NOT LIKE":    true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,
	"IN":          true,
	"NOT IN":      true,
	"IS":          true,
	"IS NOT":      true,
}

// normalizeOperator upper-cases op and collapses its inner whitespace.
func normalizeOperator(op string) (string, bool) {
	op = strings.ToUpper(strings.Join(strings.Fields(op), " "))
	return op, relationalOperators[op]
}
