package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/logger"
)

var (
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:           "explorer",
	Short:         "Filter, group and aggregate raw event batches",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// newLogger builds the development logger; log lines go to stderr so tables stay clean on stdout
func newLogger() (*zap.Logger, error) {
	return logger.New("development", logLevel)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
