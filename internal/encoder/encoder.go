package encoder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"medprep/internal/common"
	"medprep/internal/storage"
	"medprep/internal/udf"
)

var ErrColumnNotFound = errors.New("column not found")

// Options describe una ejecucion del encoder. Los campos vacios toman los
// valores por defecto de common.
type Options struct {
	FileName     string
	InputFolder  string
	OutputFolder string
	ColumnName   string
	Delimiter    string
	SplitFn      string // nombre en udf.UDFRegistry
}

func (o Options) withDefaults() Options {
	if o.InputFolder == "" {
		o.InputFolder = common.DefaultInputFolder
	}
	if o.OutputFolder == "" {
		o.OutputFolder = common.DefaultOutputFolder
	}
	if o.ColumnName == "" {
		o.ColumnName = common.DefaultColumnName
	}
	if o.SplitFn == "" {
		o.SplitFn = common.DefaultSplitFn
	}
	return o
}

func (o Options) InputPath() string {
	return filepath.Join(o.InputFolder, o.FileName)
}

// OutputPath es OutputFolder/encoded_<FileName>.
func (o Options) OutputPath() string {
	return filepath.Join(o.OutputFolder, common.EncodedFilePrefix+filepath.Base(o.FileName))
}

// Encoder aplica one-hot multi-etiqueta sobre una columna de un CSV.
type Encoder struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{logger: logger.Named("encoder")}
}

// ==========================================
// 1. EJECUCION
// ==========================================

// Encode lee InputPath, reemplaza ColumnName por columnas indicadoras y
// escribe OutputPath. Si la columna no existe no se escribe nada.
func (e *Encoder) Encode(opts Options) (common.RunReport, error) {
	opts = opts.withDefaults()
	start := time.Now()
	report := common.NewRunReport(common.ToolEncoder)
	report.InputPath = opts.InputPath()
	report.OutputPath = opts.OutputPath()

	err := e.run(opts, &report)
	report.Finish(start, err)
	if err != nil {
		e.logger.Warn("encoding failed", zap.String("run_id", report.RunID), zap.Error(err))
		return report, err
	}
	e.logger.Info("encoding completed",
		zap.String("run_id", report.RunID),
		zap.String("output", report.OutputPath),
		zap.Int("rows", report.Rows),
		zap.Int("labels", len(report.Labels)),
		zap.Int64("duration_ms", report.DurationMS))
	return report, nil
}

func (e *Encoder) run(opts Options, report *common.RunReport) error {
	splitFn, err := udf.GetSplitFunction(opts.SplitFn)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.OutputFolder, 0755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	table, err := storage.ReadCSV(report.InputPath)
	if err != nil {
		return err
	}
	e.logger.Debug("input loaded",
		zap.String("path", report.InputPath),
		zap.Int("rows", len(table.Rows)),
		zap.Strings("columns", table.Header))

	encoded, classes, err := e.EncodeTable(table, opts.ColumnName, opts.Delimiter, splitFn)
	if err != nil {
		return err
	}

	if err := storage.WriteCSV(report.OutputPath, encoded); err != nil {
		return err
	}
	report.Rows = len(encoded.Rows)
	report.Columns = len(encoded.Header)
	report.Labels = classes
	return nil
}

// EncodeTable es la parte pura de Encode: no toca disco. Devuelve la tabla
// nueva y las clases en el orden de las columnas agregadas.
func (e *Encoder) EncodeTable(table *storage.Table, column, delimiter string, splitFn udf.UDFSplitFn) (*storage.Table, []string, error) {
	values, ok := table.Column(column)
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", column, ErrColumnNotFound)
	}
	if delimiter == "" {
		return nil, nil, errors.New("empty delimiter")
	}

	labelSets := make([][]string, len(values))
	for i, v := range values {
		labelSets[i] = splitFn(udf.Record(v), delimiter)
	}

	// Binarizer nuevo por llamada: el vocabulario no se filtra entre archivos.
	mlb := NewMultiLabelBinarizer()
	mlb.Fit(labelSets)
	matrix, unknown, err := mlb.Transform(labelSets)
	if err != nil {
		return nil, nil, err
	}
	classes := mlb.Classes()
	e.logger.Debug("labels binarized",
		zap.String("column", column),
		zap.Int("classes", len(classes)),
		zap.Int("unknown_labels", unknown))

	out, err := table.DropColumn(column)
	if err != nil {
		return nil, nil, err
	}
	cells := make([][]string, len(matrix))
	for i, vec := range matrix {
		row := make([]string, len(vec))
		for j, bit := range vec {
			row[j] = strconv.Itoa(bit)
		}
		cells[i] = row
	}
	if err := out.AppendColumns(classes, cells); err != nil {
		return nil, nil, err
	}
	return out, classes, nil
}

// ==========================================
// 2. MENSAJES PARA EL USUARIO
// ==========================================

// Describe traduce el resultado de Encode a la linea que ve el usuario.
func Describe(err error, opts Options) string {
	opts = opts.withDefaults()
	switch {
	case err == nil:
		return fmt.Sprintf("One-hot encoding completed successfully.\nEncoded file saved to '%s'.", opts.OutputPath())
	case errors.Is(err, ErrColumnNotFound):
		return fmt.Sprintf("Error: Column '%s' not found in the input file.", opts.ColumnName)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("Error: File '%s' not found.", opts.InputPath())
	case errors.Is(err, storage.ErrEmptyFile):
		return fmt.Sprintf("Error: The file '%s' is empty.", opts.InputPath())
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
