package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedParser(now time.Time) *JSONEventParser {
	p := NewJSONEventParser()
	p.now = func() time.Time { return now }
	return p
}

func TestJSONEventParser_Parse_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	parser := newFixedParser(now)

	body := `{
		"event_id": "a1b2",
		"customproperties": "{\"inventoryCount\":240,\"itemsInCart\":18,\"time\":12,\"isPriceListApplied\":false,\"isOfferApplied\":true}",
		"appversion": "3.7.0",
		"userid": 0,
		"deviceid": 2141999127683,
		"platform": "Android",
		"osversion": "10"
	}`

	event, err := parser.Parse([]byte(body))

	require.NoError(t, err)
	assert.Equal(t, "a1b2", event.EventID)
	assert.Equal(t, "3.7.0", event.AppVersion)
	assert.Equal(t, int64(2141999127683), event.DeviceID)
	assert.Equal(t, "Android", event.Platform)
	assert.Equal(t, "10", event.OSVersion)
	assert.Contains(t, event.Properties, `"itemsInCart":18`)
	assert.Equal(t, now, event.ProcessedAt)
	assert.Equal(t, uint64(now.UnixNano()), event.Version)
}

func TestJSONEventParser_Parse_Errors(t *testing.T) {
	parser := NewJSONEventParser()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name: "invalid json",
			body: `{invalid}`,
		},
		{
			name:    "missing event id",
			body:    `{"customproperties": "{}", "platform": "iOS"}`,
			wantErr: ErrMissingEventID,
		},
		{
			name:    "missing platform",
			body:    `{"event_id": "1", "customproperties": "{}"}`,
			wantErr: ErrMissingPlatform,
		},
		{
			name:    "properties not an object",
			body:    `{"event_id": "1", "customproperties": "[1,2]", "platform": "iOS"}`,
			wantErr: ErrInvalidProperties,
		},
		{
			name:    "properties null",
			body:    `{"event_id": "1", "customproperties": "null", "platform": "iOS"}`,
			wantErr: ErrInvalidProperties,
		},
		{
			name:    "properties empty",
			body:    `{"event_id": "1", "platform": "iOS"}`,
			wantErr: ErrInvalidProperties,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := parser.Parse([]byte(tt.body))

			assert.Nil(t, event)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestJSONEventParser_Parse_KeepsIncompleteProperties(t *testing.T) {
	parser := NewJSONEventParser()

	// Missing schema keys are only detected when the pipeline decodes the blob.
	event, err := parser.Parse([]byte(`{"event_id": "1", "customproperties": "{\"itemsInCart\":3}", "platform": "iOS"}`))

	require.NoError(t, err)
	assert.Equal(t, `{"itemsInCart":3}`, event.Properties)
}
