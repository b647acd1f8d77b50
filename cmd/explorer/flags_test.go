package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/session"
)

func TestParseWhere(t *testing.T) {
	tests := []struct {
		expr string
		want session.ConditionDefinition
	}{
		{expr: "itemsInCart gt 10", want: session.ConditionDefinition{Field: "itemsInCart", Operator: "gt", Value: "10"}},
		{expr: "itemsInCart >= 10", want: session.ConditionDefinition{Field: "itemsInCart", Operator: "gte", Value: "10"}},
		{expr: "  isOfferApplied   =  true ", want: session.ConditionDefinition{Field: "isOfferApplied", Operator: "eq", Value: "true"}},
		{expr: "time != 0", want: session.ConditionDefinition{Field: "time", Operator: "neq", Value: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := parseWhere(tt.expr)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWhere_Malformed(t *testing.T) {
	for _, expr := range []string{"", "itemsInCart", "itemsInCart >", "itemsInCart > 1 2"} {
		_, err := parseWhere(expr)
		assert.ErrorIs(t, err, pipeline.ErrInvalidConfig, expr)
	}
}

func TestParseGroup(t *testing.T) {
	got, err := parseGroup("Offer, big cart: isOfferApplied=true, itemsInCart = 18")

	require.NoError(t, err)
	assert.Equal(t, "Offer, big cart", got.Name)
	assert.Equal(t, map[string]interface{}{"isOfferApplied": "true", "itemsInCart": "18"}, got.Constraints)
}

func TestParseGroup_NameOnly(t *testing.T) {
	for _, expr := range []string{"Everyone", "Everyone:", "Everyone: "} {
		got, err := parseGroup(expr)

		require.NoError(t, err)
		assert.Equal(t, "Everyone", got.Name)
		assert.Empty(t, got.Constraints)
	}
}

func TestParseGroup_Malformed(t *testing.T) {
	tests := []string{
		":isOfferApplied=true",
		"Offer:isOfferApplied",
		"Offer:isOfferApplied=",
		"Offer:=true",
		"Offer:time=1,time=2",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := parseGroup(expr)
			assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
		})
	}
}

func TestBuildDefinition_MergesFileAndFlags(t *testing.T) {
	base := &session.Definition{
		Metrics:    []string{"time"},
		Conditions: []session.ConditionDefinition{{Field: "time", Operator: "gt", Value: 0}},
		Mode:       "aggregated",
	}

	def, err := buildDefinition(base, []string{"itemsInCart"}, []string{"isOfferApplied = true"}, []string{"All"}, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"time", "itemsInCart"}, def.Metrics)
	assert.Len(t, def.Conditions, 2)
	assert.Equal(t, "isOfferApplied", def.Conditions[1].Field)
	assert.Equal(t, []session.GroupDefinition{{Name: "All"}}, def.Groups)
	assert.Equal(t, "raw", def.Mode)

	// The file definition is not modified.
	assert.Equal(t, []string{"time"}, base.Metrics)
	assert.Len(t, base.Conditions, 1)
}

func TestBuildDefinition_AppliesToSession(t *testing.T) {
	def, err := buildDefinition(nil,
		[]string{"itemsInCart"},
		[]string{"isPriceListApplied = false"},
		[]string{"Offer:isOfferApplied=true"},
		false)
	require.NoError(t, err)

	sess := session.New()
	require.NoError(t, sess.Apply(def))

	cfg := sess.Snapshot()
	assert.Len(t, cfg.Metrics, 1)
	assert.Len(t, cfg.Conditions, 1)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "Offer", cfg.Groups[0].Name)
	assert.NoError(t, cfg.Validate())
}
