package pipeline

import "github.com/Harishez/data-voyage-visualizer/internal/domain"

// Literal is the unreduced value of one metric for one record
type Literal struct {
	Field domain.Field
	Value domain.Value
}

// RawRow is one group member tagged with its group name
type RawRow struct {
	Group   string
	Metrics []Literal
}

// Project flattens partitions into one row per (group, member). A record
// that belongs to several groups yields one row for each of them.
func Project(partitions []Partition, metrics []Metric) []RawRow {
	total := 0
	for _, p := range partitions {
		total += len(p.Records)
	}

	rows := make([]RawRow, 0, total)
	for _, p := range partitions {
		for _, record := range p.Records {
			if !record.Decoded() {
				continue
			}
			row := RawRow{
				Group:   p.Name,
				Metrics: make([]Literal, 0, len(metrics)),
			}
			for _, m := range metrics {
				row.Metrics = append(row.Metrics, Literal{
					Field: m.Field,
					Value: record.Properties.Value(m.Field),
				})
			}
			rows = append(rows, row)
		}
	}
	return rows
}
