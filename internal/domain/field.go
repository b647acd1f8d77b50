package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field key is not part of the property schema
var ErrUnknownField = errors.New("unknown field")

// Kind is the declared value type of a property field
type Kind int

const (
	KindNumber Kind = iota + 1
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "invalid"
	}
}

// Field identifies one of the typed properties carried in a RawEvent blob
type Field int

const (
	FieldInventoryCount Field = iota + 1
	FieldItemsInCart
	FieldTime
	FieldPriceListApplied
	FieldOfferApplied
)

type fieldSpec struct {
	key   string
	label string
	kind  Kind
}

var fieldSpecs = map[Field]fieldSpec{
	FieldInventoryCount:   {key: "inventoryCount", label: "Inventory Count", kind: KindNumber},
	FieldItemsInCart:      {key: "itemsInCart", label: "Items in Cart", kind: KindNumber},
	FieldTime:             {key: "time", label: "Time", kind: KindNumber},
	FieldPriceListApplied: {key: "isPriceListApplied", label: "Is Price List Applied", kind: KindBool},
	FieldOfferApplied:     {key: "isOfferApplied", label: "Is Offer Applied", kind: KindBool},
}

// Fields returns every known field in catalogue order
func Fields() []Field {
	return []Field{
		FieldInventoryCount,
		FieldItemsInCart,
		FieldTime,
		FieldPriceListApplied,
		FieldOfferApplied,
	}
}

// ParseField resolves a wire key such as "itemsInCart" to its Field
func ParseField(key string) (Field, error) {
	for f, spec := range fieldSpecs {
		if spec.key == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// Valid reports whether f is one of the known fields
func (f Field) Valid() bool {
	_, ok := fieldSpecs[f]
	return ok
}

// Key returns the wire key used in property blobs and API payloads
func (f Field) Key() string {
	return fieldSpecs[f].key
}

// Label returns the human readable name of the field
func (f Field) Label() string {
	return fieldSpecs[f].label
}

// Kind returns the declared value type of the field
func (f Field) Kind() Kind {
	return fieldSpecs[f].kind
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return f.Key()
}

func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return []byte(f.Key()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
