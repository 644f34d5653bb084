package qb

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported by builders. They surface before any SQL is produced,
// either at the offending call (ErrOrderingViolation) or at render time.
var (
	// ErrOrderingViolation is reported when a clause is called while the
	// call-order rules of the statement forbid it.
	ErrOrderingViolation = errors.New("qb: invalid clause order")

	// ErrInvalidOperand is reported when a value is not allowed at the
	// position it is rendered in, or an unknown operator is used.
	ErrInvalidOperand = errors.New("qb: invalid operand")

	// ErrMissingClause is reported when a mandatory clause is absent,
	// e.g. VALUES of INSERT, WHERE of UPDATE and DELETE.
	ErrMissingClause = errors.New("qb: missing clause")

	// ErrEmptyConditionTree is reported when a WHERE / HAVING / ON
	// condition tree is rendered without any condition.
	ErrEmptyConditionTree = errors.New("qb: empty condition tree")
)

// OrderError describes a call-order violation.
type OrderError struct {
	// Clause is the clause attempted, e.g. "GROUPBY".
	Clause string
	// After is the clause it illegally followed, empty at statement start.
	After string
}

// Error implements error.
func (e *OrderError) Error() string {
	if e.After == "" {
		return fmt.Sprintf("%s: %s cannot start the statement", ErrOrderingViolation, e.Clause)
	}
	return fmt.Sprintf("%s: %s after %s", ErrOrderingViolation, e.Clause, e.After)
}

// Unwrap makes errors.Is(err, ErrOrderingViolation) work.
func (e *OrderError) Unwrap() error {
	return ErrOrderingViolation
}

func invalidOperand(position string, value any) error {
	return fmt.Errorf("%w: %T is not allowed as %s", ErrInvalidOperand, value, position)
}

func missingClause(clause, hint string) error {
	if hint == "" {
		return fmt.Errorf("%w: %s", ErrMissingClause, strings.ToUpper(clause))
	}
	return fmt.Errorf("%w: %s, %s", ErrMissingClause, strings.ToUpper(clause), hint)
}
