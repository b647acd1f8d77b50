package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
)

func TestSession_AddMetric_RejectsDuplicate(t *testing.T) {
	s := New()

	id, err := s.AddMetric(domain.FieldItemsInCart)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.AddMetric(domain.FieldItemsInCart)
	assert.ErrorIs(t, err, ErrDuplicateMetric)
	assert.Len(t, s.Metrics(), 1)
}

func TestSession_RemoveMetric(t *testing.T) {
	s := New()
	id, err := s.AddMetric(domain.FieldTime)
	require.NoError(t, err)

	require.NoError(t, s.RemoveMetric(id))
	assert.Empty(t, s.Metrics())
	assert.ErrorIs(t, s.RemoveMetric(id), ErrNotFound)
}

func TestSession_AddCondition_ValidatesAtBuildTime(t *testing.T) {
	s := New()

	_, err := s.AddCondition(domain.FieldOfferApplied, pipeline.OpGreaterThan, domain.Bool(true))

	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
	assert.Empty(t, s.Snapshot().Conditions)
}

func TestSession_UpdateCondition(t *testing.T) {
	s := New()
	id, err := s.AddCondition(domain.FieldItemsInCart, pipeline.OpGreaterThan, domain.Number(15))
	require.NoError(t, err)

	value := domain.Number(20)
	require.NoError(t, s.UpdateCondition(id, ConditionPatch{Value: &value}))

	cond := s.Snapshot().Conditions[0]
	assert.Equal(t, id, cond.ID)
	assert.Equal(t, domain.Number(20), cond.Value)

	field := domain.FieldOfferApplied
	err = s.UpdateCondition(id, ConditionPatch{Field: &field})
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
	assert.Equal(t, domain.FieldItemsInCart, s.Snapshot().Conditions[0].Field)

	assert.ErrorIs(t, s.UpdateCondition("missing", ConditionPatch{}), ErrNotFound)
}

func TestSession_Groups(t *testing.T) {
	s := New()

	id, err := s.AddGroup("Offer", []pipeline.Constraint{{Field: domain.FieldOfferApplied, Value: domain.Bool(true)}})
	require.NoError(t, err)

	_, err = s.AddGroup("Offer", nil)
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)

	_, err = s.AddGroup("", nil)
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)

	require.NoError(t, s.RemoveGroup(id))
	assert.Empty(t, s.Snapshot().Groups)
	assert.ErrorIs(t, s.RemoveCondition(id), ErrNotFound)
}

func TestSession_SnapshotIsIndependent(t *testing.T) {
	s := New()
	_, err := s.AddGroup("Offer", []pipeline.Constraint{{Field: domain.FieldOfferApplied, Value: domain.Bool(true)}})
	require.NoError(t, err)
	_, err = s.AddMetric(domain.FieldItemsInCart)
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Groups[0].Constraints[0].Value = domain.Bool(false)
	snap.Metrics[0].Field = domain.FieldTime

	again := s.Snapshot()
	assert.Equal(t, domain.Bool(true), again.Groups[0].Constraints[0].Value)
	assert.Equal(t, domain.FieldItemsInCart, again.Metrics[0].Field)
	assert.NoError(t, again.Validate())
}

func TestSession_SetMode(t *testing.T) {
	s := New()
	assert.Equal(t, pipeline.ModeAggregated, s.Snapshot().Mode)

	require.NoError(t, s.SetMode(pipeline.ModeRaw))
	assert.Equal(t, pipeline.ModeRaw, s.Snapshot().Mode)

	assert.ErrorIs(t, s.SetMode("chart"), pipeline.ErrInvalidConfig)
}

func TestSession_Apply(t *testing.T) {
	s := New()

	err := s.Apply(Definition{
		Metrics: []string{"itemsInCart", "isOfferApplied"},
		Conditions: []ConditionDefinition{
			{Field: "itemsInCart", Operator: "gt", Value: 15.0},
			{Field: "isPriceListApplied", Operator: "eq", Value: "false"},
		},
		Groups: []GroupDefinition{
			{Name: "Offer", Constraints: map[string]interface{}{"isOfferApplied": true, "time": 0.0}},
		},
		Mode: "raw",
	})
	require.NoError(t, err)

	cfg := s.Snapshot()
	assert.Len(t, cfg.Metrics, 2)
	require.Len(t, cfg.Conditions, 2)
	assert.Equal(t, domain.Bool(false), cfg.Conditions[1].Value)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, []pipeline.Constraint{
		{Field: domain.FieldOfferApplied, Value: domain.Bool(true)},
		{Field: domain.FieldTime, Value: domain.Number(0)},
	}, cfg.Groups[0].Constraints)
	assert.Equal(t, pipeline.ModeRaw, cfg.Mode)
}

func TestSession_Apply_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"unknown metric", Definition{Metrics: []string{"discount"}}},
		{"unknown operator", Definition{Conditions: []ConditionDefinition{{Field: "time", Operator: "~", Value: 1.0}}}},
		{"bad value text", Definition{Conditions: []ConditionDefinition{{Field: "time", Operator: "gt", Value: "soon"}}}},
		{"ordering on boolean", Definition{Conditions: []ConditionDefinition{{Field: "isOfferApplied", Operator: "lt", Value: true}}}},
		{"unknown group field", Definition{Groups: []GroupDefinition{{Name: "x", Constraints: map[string]interface{}{"colour": "red"}}}}},
		{"NaN condition value", Definition{Conditions: []ConditionDefinition{{Field: "itemsInCart", Operator: "neq", Value: "NaN"}}}},
		{"infinite group value", Definition{Groups: []GroupDefinition{{Name: "x", Constraints: map[string]interface{}{"time": "-Inf"}}}}},
		{"bad mode", Definition{Mode: "pie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Apply(tt.def)
			assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
		})
	}
}

func TestLoadDefinition_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	content := `
metrics: [itemsInCart]
conditions:
  - field: itemsInCart
    operator: gt
    value: 15
groups:
  - name: With offer
    constraints:
      isOfferApplied: true
mode: aggregated
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"itemsInCart"}, def.Metrics)
	require.Len(t, def.Conditions, 1)
	assert.Equal(t, 15.0, def.Conditions[0].Value)
	assert.Equal(t, true, def.Groups[0].Constraints["isOfferApplied"])

	s := New()
	require.NoError(t, s.Apply(*def))
	assert.NoError(t, s.Snapshot().Validate())
}

func TestLoadDefinition_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: [time]\n"), 0o600))

	_, err := LoadDefinition(path)

	assert.Error(t, err)
}
