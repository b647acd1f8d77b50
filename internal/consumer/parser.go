package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

var (
	ErrMissingEventID    = errors.New("event_id is required")
	ErrMissingPlatform   = errors.New("platform is required")
	ErrInvalidProperties = errors.New("customproperties must be a JSON object")
)

// JSONEventParser implements MessageParser for the JSON bodies published by the ingest API.
// The property blob is checked for well-formedness only; it is decoded at explore time.
type JSONEventParser struct {
	now func() time.Time
}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{now: time.Now}
}

// Parse parses a JSON message body into a RawEvent
func (p *JSONEventParser) Parse(body []byte) (*domain.RawEvent, error) {
	var event domain.RawEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if event.EventID == "" {
		return nil, ErrMissingEventID
	}
	if event.Platform == "" {
		return nil, ErrMissingPlatform
	}
	if !isJSONObject(event.Properties) {
		return nil, fmt.Errorf("event %s: %w", event.EventID, ErrInvalidProperties)
	}

	now := p.now()
	event.ProcessedAt = now
	event.Version = uint64(now.UnixNano())

	return &event, nil
}

func isJSONObject(blob string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(blob), &obj) == nil && obj != nil
}
