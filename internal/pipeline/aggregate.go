package pipeline

import (
	"fmt"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// Mode selects how partitions are turned into output rows
type Mode string

const (
	ModeAggregated Mode = "aggregated"
	ModeRaw        Mode = "raw"
)

// ParseMode validates a mode name. An empty name selects ModeAggregated.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeAggregated:
		return ModeAggregated, nil
	case ModeRaw:
		return ModeRaw, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (supported: aggregated, raw)", ErrInvalidConfig, name)
	}
}

// Metric selects a field for aggregation or display
type Metric struct {
	ID    string
	Field domain.Field
}

// Scalar is one reduced metric value. Samples counts the members that contributed.
type Scalar struct {
	Field   domain.Field
	Value   float64
	Samples int
}

// AggregatedRow holds one scalar per metric for a group
type AggregatedRow struct {
	Group   string
	Metrics []Scalar
}

// Aggregate reduces every partition to one row: the mean of numeric metrics
// and the percentage (0-100) of true values for boolean metrics.
func Aggregate(partitions []Partition, metrics []Metric) []AggregatedRow {
	rows := make([]AggregatedRow, 0, len(partitions))
	for _, p := range partitions {
		row := AggregatedRow{
			Group:   p.Name,
			Metrics: make([]Scalar, 0, len(metrics)),
		}
		for _, m := range metrics {
			row.Metrics = append(row.Metrics, reduce(p.Records, m.Field))
		}
		rows = append(rows, row)
	}
	return rows
}

// reduce keeps a running mean so large magnitudes cannot overflow the sum.
// Booleans count trues instead, which is exact.
func reduce(records []Record, field domain.Field) Scalar {
	scalar := Scalar{Field: field}

	var (
		mean  float64
		trues int
	)
	for _, record := range records {
		if !record.Decoded() {
			continue
		}
		v := record.Properties.Value(field)
		if n, ok := v.Float(); ok {
			scalar.Samples++
			k := float64(scalar.Samples)
			mean += n/k - mean/k
			continue
		}
		if b, ok := v.Truth(); ok {
			scalar.Samples++
			if b {
				trues++
			}
		}
	}

	if scalar.Samples == 0 {
		return scalar
	}

	if field.Kind() == domain.KindBool {
		scalar.Value = float64(trues) * 100 / float64(scalar.Samples)
		return scalar
	}
	scalar.Value = mean
	return scalar
}
