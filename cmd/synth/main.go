package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medprep/internal/common"
	"medprep/internal/config"
	"medprep/internal/logging"
	"medprep/internal/synth"
)

type synthFlags struct {
	configPath string
	verbose    bool

	numRecords int
	outputFile string
	seed       uint64

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	f := &synthFlags{}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate synthetic patient data",
		Long: `Generates --num-records synthetic patients (age, CRB, creatinine,
hematocrit, sex, diagnosis) and writes them to --output-file as CSV.

Write errors are returned and the process exits with a non-zero status.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return f.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if f.logger != nil {
				_ = f.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.numRecords, "num-records", common.DefaultNumRecords, "Number of records to generate")
	flags.StringVar(&f.outputFile, "output-file", common.DefaultOutputFile, "Output CSV file name")
	flags.Uint64Var(&f.seed, "seed", 0, "Random seed (0 picks one at random)")

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func (f *synthFlags) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("num-records") {
		f.numRecords = cfg.Generator.NumRecords
	}
	if !flags.Changed("output-file") && cfg.Generator.OutputFile != "" {
		f.outputFile = cfg.Generator.OutputFile
	}
	if !flags.Changed("seed") {
		f.seed = cfg.Generator.Seed
	}

	f.logger, err = logging.New(cfg.Logging, f.verbose)
	return err
}

func (f *synthFlags) run(cmd *cobra.Command) error {
	start := time.Now()
	report := common.NewRunReport(common.ToolSynth)
	report.OutputPath = f.outputFile

	records := synth.New(f.seed).Generate(f.numRecords)
	err := synth.WriteCSV(f.outputFile, records)
	report.Finish(start, err)
	if err != nil {
		f.logger.Error("synthetic generation failed", zap.String("run_id", report.RunID), zap.Error(err))
		return err
	}

	report.Rows = len(records)
	report.Columns = len(common.PatientColumns)
	f.logger.Info("synthetic generation completed",
		zap.String("run_id", report.RunID),
		zap.String("output", report.OutputPath),
		zap.Int("rows", report.Rows),
		zap.Int64("duration_ms", report.DurationMS))

	fmt.Fprintf(cmd.OutOrStdout(), "Synthetic patient data generated and saved to %s\n", f.outputFile)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
