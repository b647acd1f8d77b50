package pipeline

import (
	"errors"
	"fmt"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// ErrInvalidConfig wraps every configuration error detected before evaluation
var ErrInvalidConfig = errors.New("invalid pipeline configuration")

// Operator is a comparison operator used by a Condition
type Operator string

const (
	OpGreaterThan    Operator = "gt"
	OpLessThan       Operator = "lt"
	OpGreaterOrEqual Operator = "gte"
	OpLessOrEqual    Operator = "lte"
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "neq"
)

var operatorLabels = map[Operator]string{
	OpGreaterThan:    "Greater Than",
	OpLessThan:       "Less Than",
	OpGreaterOrEqual: "Greater Than or Equal",
	OpLessOrEqual:    "Less Than or Equal",
	OpEqual:          "Equals",
	OpNotEqual:       "Not Equals",
}

// ParseOperator validates an operator name
func ParseOperator(name string) (Operator, error) {
	op := Operator(name)
	if _, ok := operatorLabels[op]; !ok {
		return "", fmt.Errorf("%w: unknown operator %q", ErrInvalidConfig, name)
	}
	return op, nil
}

// Label returns the display name of the operator
func (o Operator) Label() string {
	return operatorLabels[o]
}

// Ordering reports whether the operator compares by magnitude
func (o Operator) Ordering() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		return true
	default:
		return false
	}
}

// OperatorsFor lists the operators that are valid for fields of kind
func OperatorsFor(kind domain.Kind) []Operator {
	if kind == domain.KindBool {
		return []Operator{OpEqual, OpNotEqual}
	}
	return []Operator{OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual, OpEqual, OpNotEqual}
}

// Condition is a single typed predicate over one property field
type Condition struct {
	ID       string
	Field    domain.Field
	Operator Operator
	Value    domain.Value
}

// NewCondition builds a validated condition
func NewCondition(field domain.Field, op Operator, value domain.Value) (Condition, error) {
	c := Condition{Field: field, Operator: op, Value: value}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

// Validate checks the field, the operator/field compatibility and the value type
func (c Condition) Validate() error {
	if !c.Field.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, domain.ErrUnknownField, int(c.Field))
	}
	if _, ok := operatorLabels[c.Operator]; !ok {
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidConfig, c.Operator)
	}
	if c.Operator.Ordering() && c.Field.Kind() != domain.KindNumber {
		return fmt.Errorf("%w: operator %s is not supported on %s field %s",
			ErrInvalidConfig, c.Operator, c.Field.Kind(), c.Field)
	}
	if err := domain.CheckKind(c.Field, c.Value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Matches evaluates the condition against bag. A nil bag never matches.
func (c Condition) Matches(bag *domain.PropertyBag) bool {
	if bag == nil {
		return false
	}

	actual := bag.Value(c.Field)

	switch c.Operator {
	case OpEqual:
		return actual.Equal(c.Value)
	case OpNotEqual:
		return actual.Kind() == c.Value.Kind() && !actual.Equal(c.Value)
	}

	left, ok := actual.Float()
	if !ok {
		return false
	}
	right, ok := c.Value.Float()
	if !ok {
		return false
	}

	switch c.Operator {
	case OpGreaterThan:
		return left > right
	case OpLessThan:
		return left < right
	case OpGreaterOrEqual:
		return left >= right
	case OpLessOrEqual:
		return left <= right
	default:
		return false
	}
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Operator, c.Value)
}
