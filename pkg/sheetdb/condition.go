package sheetdb

import (
	"fmt"
	"strings"
)

// Operator is a comparison applied between a cell and a condition value.
type Operator int

const (
	Eq Operator = iota + 1
	Ne
	Gt
	Ge
	Lt
	Le
)

var operatorNames = map[Operator]string{
	Eq: "eq",
	Ne: "ne",
	Gt: "gt",
	Ge: "ge",
	Lt: "lt",
	Le: "le",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Valid reports whether op is one of the supported comparisons.
func (op Operator) Valid() bool {
	_, ok := operatorNames[op]
	return ok
}

// Compare applies the operator to a and b. Both sides are compared as
// plain strings, so "10" < "9".
func (op Operator) Compare(a, b string) bool {
	switch op {
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	case Lt:
		return a < b
	case Le:
		return a <= b
	default:
		return false
	}
}

// ParseOperator resolves an operator identifier such as "eq" or "ge".
// The symbolic forms "=", "==", "!=", ">", ">=", "<" and "<=" are accepted too.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eq", "=", "==":
		return Eq, nil
	case "ne", "!=", "<>":
		return Ne, nil
	case "gt", ">":
		return Gt, nil
	case "ge", ">=":
		return Ge, nil
	case "lt", "<":
		return Lt, nil
	case "le", "<=":
		return Le, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrConfig, s)
}

// Condition is a single (field, operator, value) predicate on a row.
type Condition struct {
	Field string
	Op    Operator
	Value string
}

// Cond builds a condition, formatting value the way fmt.Sprint does.
func Cond(field string, op Operator, value interface{}) Condition {
	return Condition{Field: field, Op: op, Value: fmt.Sprint(value)}
}

// ParseCondition builds a condition from its tuple form:
// field, operator identifier, value.
func ParseCondition(parts []string) (Condition, error) {
	if len(parts) != 3 {
		return Condition{}, fmt.Errorf("%w: where conditions must have three elements, got %d", ErrConfig, len(parts))
	}
	op, err := ParseOperator(parts[1])
	if err != nil {
		return Condition{}, err
	}
	return Condition{Field: parts[0], Op: op, Value: parts[2]}, nil
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %q", c.Field, c.Op, c.Value)
}
