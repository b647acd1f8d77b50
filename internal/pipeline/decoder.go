package pipeline

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// Record is a RawEvent annotated with its decoded properties.
// Properties is nil when the blob could not be decoded.
type Record struct {
	Event      domain.RawEvent
	Properties *domain.PropertyBag
}

// Decoded reports whether the record carries a property bag
func (r Record) Decoded() bool {
	return r.Properties != nil
}

// PropertyParser turns a serialized property blob into a typed bag
type PropertyParser interface {
	Parse(blob string) (*domain.PropertyBag, error)
}

// JSONPropertyParser implements PropertyParser for JSON object blobs
type JSONPropertyParser struct{}

// NewJSONPropertyParser creates a new JSON property parser
func NewJSONPropertyParser() *JSONPropertyParser {
	return &JSONPropertyParser{}
}

type jsonProperties struct {
	InventoryCount     *float64 `json:"inventoryCount"`
	ItemsInCart        *float64 `json:"itemsInCart"`
	Time               *float64 `json:"time"`
	IsPriceListApplied *bool    `json:"isPriceListApplied"`
	IsOfferApplied     *bool    `json:"isOfferApplied"`
}

// Parse parses blob into a PropertyBag. Every schema key must be present with its declared type.
func (p *JSONPropertyParser) Parse(blob string) (*domain.PropertyBag, error) {
	var props jsonProperties
	if err := json.Unmarshal([]byte(blob), &props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
	}

	missing := make([]string, 0)
	if props.InventoryCount == nil {
		missing = append(missing, domain.FieldInventoryCount.Key())
	}
	if props.ItemsInCart == nil {
		missing = append(missing, domain.FieldItemsInCart.Key())
	}
	if props.Time == nil {
		missing = append(missing, domain.FieldTime.Key())
	}
	if props.IsPriceListApplied == nil {
		missing = append(missing, domain.FieldPriceListApplied.Key())
	}
	if props.IsOfferApplied == nil {
		missing = append(missing, domain.FieldOfferApplied.Key())
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing properties: %v", missing)
	}

	return &domain.PropertyBag{
		InventoryCount:   *props.InventoryCount,
		ItemsInCart:      *props.ItemsInCart,
		Time:             *props.Time,
		PriceListApplied: *props.IsPriceListApplied,
		OfferApplied:     *props.IsOfferApplied,
	}, nil
}

// Decoder annotates raw events with their decoded property bags
type Decoder struct {
	parser PropertyParser
	log    *zap.Logger
}

// NewDecoder creates a new decoder
func NewDecoder(parser PropertyParser, log *zap.Logger) *Decoder {
	return &Decoder{
		parser: parser,
		log:    log,
	}
}

// Decode returns one Record per event, in input order. Parse failures
// leave the record undecoded and are only logged.
func (d *Decoder) Decode(events []domain.RawEvent) []Record {
	records := make([]Record, len(events))
	failed := 0

	for i, event := range events {
		records[i] = Record{Event: event}

		bag, err := d.parser.Parse(event.Properties)
		if err != nil {
			failed++
			d.log.Warn("Failed to decode event properties",
				zap.String("event_id", event.EventID),
				zap.Int64("device_id", event.DeviceID),
				zap.Error(err))
			continue
		}
		records[i].Properties = bag
	}

	if failed > 0 {
		d.log.Info("Decoded batch with undecodable records",
			zap.Int("total", len(events)),
			zap.Int("undecoded", failed))
	}

	return records
}
