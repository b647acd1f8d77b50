package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/sample"
)

func TestJSONPropertyParser_Parse_Success(t *testing.T) {
	parser := NewJSONPropertyParser()

	bag, err := parser.Parse(`{"isPriceListApplied":false,"itemsInCart":18,"isOfferApplied":true,"inventoryCount":349,"time":0,"extra":"ignored"}`)

	require.NoError(t, err)
	assert.Equal(t, &domain.PropertyBag{
		InventoryCount: 349,
		ItemsInCart:    18,
		Time:           0,
		OfferApplied:   true,
	}, bag)
}

func TestJSONPropertyParser_Parse_Failures(t *testing.T) {
	parser := NewJSONPropertyParser()

	tests := []struct {
		name string
		blob string
	}{
		{"invalid json", `{invalid}`},
		{"empty", ``},
		{"not an object", `[1,2,3]`},
		{"wrong type", `{"isPriceListApplied":"no","itemsInCart":18,"isOfferApplied":true,"inventoryCount":349,"time":0}`},
		{"missing field", `{"itemsInCart":18,"isOfferApplied":true,"inventoryCount":349,"time":0}`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, err := parser.Parse(tt.blob)
			assert.Error(t, err)
			assert.Nil(t, bag)
		})
	}
}

func TestDecoder_Decode_KeepsUndecodedRecords(t *testing.T) {
	decoder := NewDecoder(NewJSONPropertyParser(), zap.NewNop())

	events := sample.Events()
	events[2].Properties = `{not json`

	records := decoder.Decode(events)

	require.Len(t, records, 5)
	assert.True(t, records[0].Decoded())
	assert.False(t, records[2].Decoded())
	assert.Equal(t, events[2], records[2].Event)
	assert.Equal(t, float64(22), records[4].Properties.ItemsInCart)
}

func TestDecoder_Decode_EmptyBatch(t *testing.T) {
	decoder := NewDecoder(NewJSONPropertyParser(), zap.NewNop())

	records := decoder.Decode(nil)

	assert.Empty(t, records)
}
