package domain

import "time"

// RawEvent represents an ingested record stored in ClickHouse.
// Properties is an opaque serialized blob; it is only interpreted by the pipeline decoder.
type RawEvent struct {
	EventID     string    `ch:"event_id" json:"event_id,omitempty"`
	Properties  string    `ch:"custom_properties" json:"customproperties"`
	AppVersion  string    `ch:"app_version" json:"appversion"`
	UserID      int64     `ch:"user_id" json:"userid"`
	DeviceID    int64     `ch:"device_id" json:"deviceid"`
	Platform    string    `ch:"platform" json:"platform"`
	OSVersion   string    `ch:"os_version" json:"osversion"`
	ProcessedAt time.Time `ch:"processed_at" json:"-"`
	Version     uint64    `ch:"version" json:"-"`
}

// PropertyBag is the decoded, fixed-schema view of a RawEvent's properties
type PropertyBag struct {
	InventoryCount   float64
	ItemsInCart      float64
	Time             float64
	PriceListApplied bool
	OfferApplied     bool
}

// Value returns the typed value stored for field. Unknown fields yield the zero Value.
func (b *PropertyBag) Value(field Field) Value {
	switch field {
	case FieldInventoryCount:
		return Number(b.InventoryCount)
	case FieldItemsInCart:
		return Number(b.ItemsInCart)
	case FieldTime:
		return Number(b.Time)
	case FieldPriceListApplied:
		return Bool(b.PriceListApplied)
	case FieldOfferApplied:
		return Bool(b.OfferApplied)
	default:
		return Value{}
	}
}
