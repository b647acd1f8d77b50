package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/sample"
	"github.com/Harishez/data-voyage-visualizer/internal/session"
)

var runOpts struct {
	input      string
	sampleSize int
	seed       int64
	configPath string
	metrics    []string
	wheres     []string
	groups     []string
	raw        bool
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runOpts.input, "input", "i", "", "JSON file with raw events (array or data.result export)")
	f.IntVar(&runOpts.sampleSize, "sample", 20, "number of generated records added to the reference records when no input is given")
	f.Int64Var(&runOpts.seed, "seed", 1, "seed for generated records")
	f.StringVarP(&runOpts.configPath, "config", "c", "", "YAML or JSON view definition")
	f.StringArrayVarP(&runOpts.metrics, "metric", "m", nil, "metric field key (repeatable)")
	f.StringArrayVarP(&runOpts.wheres, "where", "w", nil, `base condition "field op value", e.g. "itemsInCart >= 10" (repeatable)`)
	f.StringArrayVarP(&runOpts.groups, "group", "g", nil, `comparison group "name:field=value,..." (repeatable)`)
	f.BoolVar(&runOpts.raw, "raw", false, "show one row per group member instead of aggregates")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a view configuration over a batch of raw events",
	Example: `  explorer run -m itemsInCart -m isOfferApplied -w "isPriceListApplied = false"
  explorer run -i events.json -g "Offer:isOfferApplied=true" -g "No offer:isOfferApplied=false" -m time
  explorer run -c view.yaml --raw`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		var base *session.Definition
		if runOpts.configPath != "" {
			base, err = session.LoadDefinition(runOpts.configPath)
			if err != nil {
				return err
			}
		}

		def, err := buildDefinition(base, runOpts.metrics, runOpts.wheres, runOpts.groups, runOpts.raw)
		if err != nil {
			return err
		}
		if len(def.Metrics) == 0 {
			for _, f := range domain.Fields() {
				def.Metrics = append(def.Metrics, f.Key())
			}
		}

		sess := session.New()
		if err := sess.Apply(def); err != nil {
			return err
		}
		cfg := sess.Snapshot()

		events, err := batch()
		if err != nil {
			return err
		}

		records := pipeline.NewDecoder(pipeline.NewJSONPropertyParser(), log).Decode(events)
		decoded := 0
		for _, r := range records {
			if r.Decoded() {
				decoded++
			}
		}

		out, err := pipeline.Run(records, cfg)
		if err != nil {
			return err
		}

		log.Debug("Pipeline finished",
			zap.Int("records", len(records)),
			zap.Int("conditions", len(cfg.Conditions)),
			zap.Int("groups", len(cfg.Groups)),
			zap.Int("rows", out.RowCount()))

		return render(os.Stdout, out, cfg.Metrics, len(records), decoded)
	},
}

func batch() ([]domain.RawEvent, error) {
	if runOpts.input != "" {
		return loadEvents(runOpts.input)
	}
	if runOpts.sampleSize < 0 {
		return nil, fmt.Errorf("--sample must not be negative")
	}
	return sample.Generate(runOpts.sampleSize, rand.New(rand.NewSource(runOpts.seed))), nil
}
