package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrValueType is returned when a value does not match a field's declared kind
var ErrValueType = errors.New("value type mismatch")

// Value is a typed property value, either a number or a boolean.
// The zero Value has no kind and compares unequal to every other value.
type Value struct {
	kind Kind
	num  float64
	b    bool
}

// Number builds a numeric Value
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// Bool builds a boolean Value
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric payload and whether v is a number
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Truth returns the boolean payload and whether v is a boolean
func (v Value) Truth() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Equal is typed equality: values of different kinds are never equal
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueFromAny converts a decoded JSON/YAML scalar into a Value
func ValueFromAny(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrValueType, x.String())
		}
		return Number(f), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrValueType, raw, raw)
	}
}

// ParseValue parses text according to the declared kind of field
func ParseValue(field Field, text string) (Value, error) {
	if !field.Valid() {
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}

	switch field.Kind() {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s expects a boolean, got %q", ErrValueType, field, text)
		}
		return Bool(b), nil
	default:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || !isFinite(f) {
			return Value{}, fmt.Errorf("%w: %s expects a finite number, got %q", ErrValueType, field, text)
		}
		return Number(f), nil
	}
}

// CheckKind verifies that value is usable with field
func CheckKind(field Field, value Value) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}
	if value.Kind() != field.Kind() {
		return fmt.Errorf("%w: %s is a %s field, got %s value", ErrValueType, field, field.Kind(), value.Kind())
	}
	if n, ok := value.Float(); ok && !isFinite(n) {
		return fmt.Errorf("%w: %s needs a finite number, got %s", ErrValueType, field, value)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
