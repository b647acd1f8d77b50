package pipeline

import (
	"fmt"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

// Config is a read-only snapshot of the caller's view configuration
type Config struct {
	Conditions []Condition
	Groups     []Group
	Metrics    []Metric
	Mode       Mode
}

// Validate rejects every configuration error up front so that evaluation
// never has to re-check types per record.
func (c Config) Validate() error {
	for i, cond := range c.Conditions {
		if err := cond.Validate(); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}

	names := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
		if names[g.Name] {
			return fmt.Errorf("%w: duplicate group name %q", ErrInvalidConfig, g.Name)
		}
		names[g.Name] = true
	}

	fields := make(map[domain.Field]bool, len(c.Metrics))
	for _, m := range c.Metrics {
		if !m.Field.Valid() {
			return fmt.Errorf("%w: unknown metric field %d", ErrInvalidConfig, int(m.Field))
		}
		if fields[m.Field] {
			return fmt.Errorf("%w: metric %s selected more than once", ErrInvalidConfig, m.Field)
		}
		fields[m.Field] = true
	}

	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// Output is the result of a pipeline run. Exactly one of Aggregated or Raw
// is populated, according to Mode.
type Output struct {
	Mode       Mode
	Partitions []Partition
	Aggregated []AggregatedRow
	Raw        []RawRow
}

// RowCount returns the number of rows in the populated variant
func (o *Output) RowCount() int {
	if o.Mode == ModeRaw {
		return len(o.Raw)
	}
	return len(o.Aggregated)
}

// Run validates cfg, then filters, groups and reduces records. It does not
// modify records or cfg and returns identical output for identical input.
func Run(records []Record, cfg Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, _ := ParseMode(string(cfg.Mode))

	filtered := Filter(records, cfg.Conditions)
	partitions := GroupBy(filtered, cfg.Groups)

	out := &Output{Mode: mode, Partitions: partitions}
	switch mode {
	case ModeRaw:
		out.Raw = Project(partitions, cfg.Metrics)
	default:
		out.Aggregated = Aggregate(partitions, cfg.Metrics)
	}
	return out, nil
}
