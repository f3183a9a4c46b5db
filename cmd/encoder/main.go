package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medprep/internal/common"
	"medprep/internal/config"
	"medprep/internal/encoder"
	"medprep/internal/logging"
	"medprep/internal/udf"
)

// encodeFlags guarda el estado de linea de comandos de una invocacion del encoder.
type encodeFlags struct {
	configPath string
	verbose    bool

	fileName     string
	inputFolder  string
	outputFolder string
	columnName   string
	delimiter    string
	splitFn      string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	f := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encoder",
		Short: "One-hot encode a delimited multi-label column of a CSV file",
		Long: `Reads <input-folder>/<file-name>, splits the target column by the delimiter
and replaces it with one 0/1 column per distinct label.

The result is written to <output-folder>/encoded_<file-name>. Failures are
reported on stdout and never change the exit status.

Example:
  encoder --file-name patients.csv --column-name diagnoses --delimiter ,`,
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
	flags.StringVar(&f.fileName, "file-name", "", "Name of the input CSV file")
	flags.StringVar(&f.inputFolder, "input-folder", common.DefaultInputFolder, "Directory where the input file is located")
	flags.StringVar(&f.outputFolder, "output-folder", common.DefaultOutputFolder, "Directory where the encoded file is written")
	flags.StringVar(&f.columnName, "column-name", common.DefaultColumnName, "Name of the column to be one-hot encoded")
	flags.StringVar(&f.delimiter, "delimiter", common.DefaultDelimiter, "Delimiter used to separate multiple entries in the column")
	flags.StringVar(&f.splitFn, "split-fn", common.DefaultSplitFn,
		"Label split function ("+strings.Join(udf.SplitFunctionNames(), ", ")+")")
	_ = cmd.MarkFlagRequired("file-name")

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// setup carga la config y el logger. Los flags dados explicitamente pisan el archivo.
func (f *encodeFlags) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	fromConfig := map[string]*string{
		"input-folder":  &cfg.Encoder.InputFolder,
		"output-folder": &cfg.Encoder.OutputFolder,
		"column-name":   &cfg.Encoder.ColumnName,
		"delimiter":     &cfg.Encoder.Delimiter,
		"split-fn":      &cfg.Encoder.SplitFn,
	}
	targets := map[string]*string{
		"input-folder":  &f.inputFolder,
		"output-folder": &f.outputFolder,
		"column-name":   &f.columnName,
		"delimiter":     &f.delimiter,
		"split-fn":      &f.splitFn,
	}
	for name, v := range fromConfig {
		if !flags.Changed(name) && *v != "" {
			*targets[name] = *v
		}
	}

	f.logger, err = logging.New(cfg.Logging, f.verbose)
	return err
}

func (f *encodeFlags) run(cmd *cobra.Command) error {
	opts := encoder.Options{
		FileName:     f.fileName,
		InputFolder:  f.inputFolder,
		OutputFolder: f.outputFolder,
		ColumnName:   f.columnName,
		Delimiter:    f.delimiter,
		SplitFn:      f.splitFn,
	}
	f.logger.Debug("starting encoder",
		zap.String("input", opts.InputPath()),
		zap.String("column", opts.ColumnName),
		zap.String("delimiter", opts.Delimiter),
		zap.String("split_fn", opts.SplitFn))

	_, err := encoder.New(f.logger).Encode(opts)
	fmt.Fprintln(cmd.OutOrStdout(), encoder.Describe(err, opts))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
