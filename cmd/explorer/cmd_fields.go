package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(fieldsCmd)
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the property fields and the operators they accept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0)
		for _, f := range domain.Fields() {
			ops := pipeline.OperatorsFor(f.Kind())
			names := make([]string, len(ops))
			for i, op := range ops {
				names[i] = string(op)
			}
			rows = append(rows, []string{f.Key(), f.Label(), f.Kind().String(), strings.Join(names, ", ")})
		}
		return writeTable(os.Stdout, []string{"KEY", "LABEL", "KIND", "OPERATORS"}, rows)
	},
}
