package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/sample"
)

func runReference(t *testing.T, cfg pipeline.Config) *pipeline.Output {
	t.Helper()
	records := pipeline.NewDecoder(pipeline.NewJSONPropertyParser(), zap.NewNop()).Decode(sample.Events())
	out, err := pipeline.Run(records, cfg)
	require.NoError(t, err)
	return out
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "19.67", formatScalar(pipeline.Scalar{Field: domain.FieldItemsInCart, Value: 59.0 / 3}))
	assert.Equal(t, "75.0%", formatScalar(pipeline.Scalar{Field: domain.FieldOfferApplied, Value: 75}))
	assert.Equal(t, "0.00", formatScalar(pipeline.Scalar{Field: domain.FieldTime}))
}

func TestOutputTable_Aggregated(t *testing.T) {
	metrics := []pipeline.Metric{{Field: domain.FieldItemsInCart}, {Field: domain.FieldOfferApplied}}
	out := runReference(t, pipeline.Config{
		Metrics: metrics,
		Groups: []pipeline.Group{
			{Name: "No price list", Constraints: []pipeline.Constraint{{Field: domain.FieldPriceListApplied, Value: domain.Bool(false)}}},
		},
	})

	header, rows := outputTable(out, metrics)

	assert.Equal(t, []string{"GROUP", "MEMBERS", domain.FieldItemsInCart.Label(), domain.FieldOfferApplied.Label()}, header)
	assert.Equal(t, [][]string{{"No price list", "3", "19.67", "66.7%"}}, rows)
}

func TestOutputTable_Raw(t *testing.T) {
	metrics := []pipeline.Metric{{Field: domain.FieldItemsInCart}}
	out := runReference(t, pipeline.Config{Metrics: metrics, Mode: pipeline.ModeRaw})

	header, rows := outputTable(out, metrics)

	assert.Equal(t, []string{"GROUP", domain.FieldItemsInCart.Label()}, header)
	require.Len(t, rows, 5)
	assert.Equal(t, pipeline.AllDataGroup, rows[0][0])
	assert.Equal(t, domain.Number(18).String(), rows[0][1])
}

func TestRender(t *testing.T) {
	color.NoColor = true

	metrics := []pipeline.Metric{{Field: domain.FieldItemsInCart}}
	out := runReference(t, pipeline.Config{Metrics: metrics})

	var buf bytes.Buffer
	require.NoError(t, render(&buf, out, metrics, 6, 5))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "6 records, 5 decoded, aggregated mode, 1 rows", lines[0])
	assert.Contains(t, lines[1], "1 records could not be decoded")
	assert.True(t, strings.HasPrefix(lines[2], "GROUP"))
	assert.Contains(t, lines[3], pipeline.AllDataGroup)
	assert.Contains(t, lines[3], "15.80")
}

// limitedWriter accepts a fixed number of writes and fails afterwards
type limitedWriter struct {
	writes int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.writes == 0 {
		return 0, errors.New("disk full")
	}
	w.writes--
	return len(p), nil
}

func TestRender_ReportsWarningWriteError(t *testing.T) {
	color.NoColor = true

	metrics := []pipeline.Metric{{Field: domain.FieldItemsInCart}}
	out := runReference(t, pipeline.Config{Metrics: metrics})

	err := render(&limitedWriter{writes: 1}, out, metrics, 6, 5)

	assert.EqualError(t, err, "disk full")
}
