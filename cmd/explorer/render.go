package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
)

// formatScalar prints means with two decimals and boolean metrics as a percentage
func formatScalar(s pipeline.Scalar) string {
	if s.Field.Kind() == domain.KindBool {
		return fmt.Sprintf("%.1f%%", s.Value)
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// outputTable lays the pipeline output out as a header and rows
func outputTable(out *pipeline.Output, metrics []pipeline.Metric) ([]string, [][]string) {
	header := []string{"GROUP"}
	if out.Mode != pipeline.ModeRaw {
		header = append(header, "MEMBERS")
	}
	for _, m := range metrics {
		header = append(header, m.Field.Label())
	}

	rows := make([][]string, 0, out.RowCount())
	switch out.Mode {
	case pipeline.ModeRaw:
		for _, r := range out.Raw {
			row := []string{r.Group}
			for _, lit := range r.Metrics {
				row = append(row, lit.Value.String())
			}
			rows = append(rows, row)
		}
	default:
		members := make(map[string]int, len(out.Partitions))
		for _, p := range out.Partitions {
			members[p.Name] = len(p.Records)
		}
		for _, r := range out.Aggregated {
			row := []string{r.Group, strconv.Itoa(members[r.Group])}
			for _, s := range r.Metrics {
				row = append(row, formatScalar(s))
			}
			rows = append(rows, row)
		}
	}
	return header, rows
}

// render writes a one-line summary followed by the output table
func render(w io.Writer, out *pipeline.Output, metrics []pipeline.Metric, total, decoded int) error {
	summary := color.New(color.FgCyan)
	if _, err := summary.Fprintf(w, "%d records, %d decoded, %s mode, %d rows\n", total, decoded, out.Mode, out.RowCount()); err != nil {
		return err
	}

	if decoded < total {
		warning := color.New(color.FgYellow)
		if _, err := warning.Fprintf(w, "%d records could not be decoded and were skipped\n", total-decoded); err != nil {
			return err
		}
	}

	header, rows := outputTable(out, metrics)
	return writeTable(w, header, rows)
}
