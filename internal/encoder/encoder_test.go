package encoder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"medprep/internal/common"
	"medprep/internal/storage"
	"medprep/internal/udf"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Helper para crear archivos de entrada
func createInputFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("No se pudo crear input: %v", err)
	}
	return path
}

// Helper para leer la salida como matriz de celdas
func readOutputCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	all, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return all
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		column    string
		delimiter string
		splitFn   string
		want      [][]string
		expectErr bool
	}{
		{
			name:      "Ejemplo basico",
			input:     "id,diagnoses\n1,\"A,B\"\n2,B\n",
			column:    "diagnoses",
			delimiter: ",",
			want: [][]string{
				{"id", "A", "B"},
				{"1", "1", "1"},
				{"2", "0", "1"},
			},
		},
		{
			name:      "Columna en el medio y celda vacia",
			input:     "id,diagnoses,age\n1,Stroke,70\n2,,30\n3,Coma;Stroke,55\n",
			column:    "diagnoses",
			delimiter: ";",
			want: [][]string{
				{"id", "age", "Coma", "Stroke"},
				{"1", "70", "0", "1"},
				{"2", "30", "0", "0"},
				{"3", "55", "1", "1"},
			},
		},
		{
			name:      "split_trim con salida del generador",
			input:     "sex,diagnosis\nMale,Coma; Ataxia\nFemale,Ataxia\n",
			column:    "diagnosis",
			delimiter: ";",
			splitFn:   "split_trim",
			want: [][]string{
				{"sex", "Ataxia", "Coma"},
				{"Male", "1", "1"},
				{"Female", "1", "0"},
			},
		},
		{
			name:      "Solo header",
			input:     "id,diagnoses\n",
			column:    "diagnoses",
			delimiter: ",",
			want:      [][]string{{"id"}},
		},
		{
			name:      "Fila corta sin celda objetivo",
			input:     "id,diagnoses\n1,\"A,B\"\n2\n",
			column:    "diagnoses",
			delimiter: ",",
			want: [][]string{
				{"id", "A", "B"},
				{"1", "1", "1"},
				{"2", "0", "0"},
			},
		},
		{
			name:      "Header con BOM y columna objetivo primera",
			input:     "\xef\xbb\xbfdiagnoses,id\n\"A,B\",1\nB,2\n",
			column:    "diagnoses",
			delimiter: ",",
			want: [][]string{
				{"id", "A", "B"},
				{"1", "1", "1"},
				{"2", "0", "1"},
			},
		},
		{
			name:      "Fila larga",
			input:     "id,diagnoses\n1,A,extra\n",
			column:    "diagnoses",
			delimiter: ",",
			expectErr: true,
		},
		{
			name:      "Etiqueta repetida en la fila",
			input:     "id,diagnoses\n1,\"A,A\"\n",
			column:    "diagnoses",
			delimiter: ",",
			want:      [][]string{{"id", "A"}, {"1", "1"}},
		},
		{
			name:      "Delimitador vacio",
			input:     "id,diagnoses\n1,A\n",
			column:    "diagnoses",
			delimiter: "",
			expectErr: true,
		},
		{
			name:      "Split inexistente",
			input:     "id,diagnoses\n1,A\n",
			column:    "diagnoses",
			delimiter: ",",
			splitFn:   "fantasma",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inDir := t.TempDir()
			outDir := filepath.Join(t.TempDir(), "processed")
			createInputFile(t, inDir, "input.csv", tt.input)

			opts := Options{
				FileName:     "input.csv",
				InputFolder:  inDir,
				OutputFolder: outDir,
				ColumnName:   tt.column,
				Delimiter:    tt.delimiter,
				SplitFn:      tt.splitFn,
			}
			report, err := New(zap.NewNop()).Encode(opts)

			if tt.expectErr {
				require.Error(t, err)
				assert.Equal(t, common.RunStatusFailure, report.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, common.RunStatusSuccess, report.Status)
			assert.Equal(t, filepath.Join(outDir, "encoded_input.csv"), report.OutputPath)
			assert.Equal(t, len(tt.want)-1, report.Rows)

			got := readOutputCSV(t, report.OutputPath)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("salida inesperada (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_Failures(t *testing.T) {
	t.Run("Columna inexistente no escribe salida", func(t *testing.T) {
		inDir, outDir := t.TempDir(), t.TempDir()
		createInputFile(t, inDir, "in.csv", "id,notes\n1,A\n")
		opts := Options{FileName: "in.csv", InputFolder: inDir, OutputFolder: outDir, ColumnName: "diagnoses", Delimiter: ","}

		_, err := New(nil).Encode(opts)
		require.ErrorIs(t, err, ErrColumnNotFound)
		_, statErr := os.Stat(opts.OutputPath())
		assert.True(t, os.IsNotExist(statErr), "no debia crearse %s", opts.OutputPath())
		assert.Equal(t, "Error: Column 'diagnoses' not found in the input file.", Describe(err, opts))
	})

	t.Run("Archivo inexistente", func(t *testing.T) {
		opts := Options{FileName: "nope.csv", InputFolder: t.TempDir(), OutputFolder: t.TempDir(), Delimiter: ","}
		_, err := New(nil).Encode(opts)
		require.Error(t, err)
		assert.Equal(t, "Error: File '"+opts.InputPath()+"' not found.", Describe(err, opts))
	})

	t.Run("Archivo vacio", func(t *testing.T) {
		inDir := t.TempDir()
		createInputFile(t, inDir, "empty.csv", "")
		opts := Options{FileName: "empty.csv", InputFolder: inDir, OutputFolder: t.TempDir(), Delimiter: ","}
		_, err := New(nil).Encode(opts)
		require.ErrorIs(t, err, storage.ErrEmptyFile)
		assert.Equal(t, "Error: The file '"+opts.InputPath()+"' is empty.", Describe(err, opts))
	})

	t.Run("CSV malformado", func(t *testing.T) {
		inDir := t.TempDir()
		createInputFile(t, inDir, "bad.csv", "id,diagnoses\n1,A,extra\n")
		opts := Options{FileName: "bad.csv", InputFolder: inDir, OutputFolder: t.TempDir(), Delimiter: ","}
		_, err := New(nil).Encode(opts)
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(Describe(err, opts), "An unexpected error occurred: "))
	})
}

func TestEncode_DefaultsAndSuccessMessage(t *testing.T) {
	opts := Options{FileName: "patients.csv", Delimiter: ","}.withDefaults()
	assert.Equal(t, filepath.Join("data", "raw", "patients.csv"), opts.InputPath())
	assert.Equal(t, filepath.Join("data", "processed_data", "encoded_patients.csv"), opts.OutputPath())
	assert.Equal(t, "diagnoses", opts.ColumnName)
	assert.Equal(t,
		"One-hot encoding completed successfully.\nEncoded file saved to '"+opts.OutputPath()+"'.",
		Describe(nil, opts))
}

// Propiedades: mismas filas, columnas = (entrada - objetivo) U etiquetas,
// y cada celda es 1 sii la etiqueta estaba en la fila.
func TestEncodeTable_Properties(t *testing.T) {
	table := storage.NewTable([]string{"id", "diagnoses", "sex"})
	rows := [][]string{
		{"1", "Coma,Stroke", "Male"},
		{"2", "", "Female"},
		{"3", "Ataxia", "Male"},
		{"4", "Stroke,Ataxia,Coma", "Female"},
	}
	for _, r := range rows {
		require.NoError(t, table.AppendRow(r))
	}
	split, err := udf.GetSplitFunction("split")
	require.NoError(t, err)

	out, classes, err := New(nil).EncodeTable(table, "diagnoses", ",", split)
	require.NoError(t, err)

	assert.Len(t, out.Rows, len(rows))
	assert.Equal(t, []string{"Ataxia", "Coma", "Stroke"}, classes)
	assert.Equal(t, append([]string{"id", "sex"}, classes...), out.Header)

	for i, row := range rows {
		labels := map[string]bool{}
		for _, l := range split(udf.Record(row[1]), ",") {
			labels[l] = true
		}
		for j, c := range classes {
			want := "0"
			if labels[c] {
				want = "1"
			}
			assert.Equal(t, want, out.Rows[i][2+j], "fila %d clase %s", i, c)
		}
	}
	// la entrada no se modifica
	assert.Equal(t, []string{"id", "diagnoses", "sex"}, table.Header)
}

// Dos llamadas seguidas no comparten vocabulario.
func TestEncodeTable_NoVocabularyLeak(t *testing.T) {
	enc := New(nil)
	split, _ := udf.GetSplitFunction("split")

	first := storage.NewTable([]string{"diagnoses"})
	require.NoError(t, first.AppendRow([]string{"A,B"}))
	_, classes, err := enc.EncodeTable(first, "diagnoses", ",", split)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, classes)

	second := storage.NewTable([]string{"diagnoses"})
	require.NoError(t, second.AppendRow([]string{"C"}))
	out, classes, err := enc.EncodeTable(second, "diagnoses", ",", split)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, classes)
	assert.Equal(t, [][]string{{"1"}}, out.Rows)
}

// EncodeTable deja en debug cuantas clases salieron y cuantas etiquetas no
// entraron al vocabulario.
func TestEncodeTable_LogsLabelCounts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	split, err := udf.GetSplitFunction("split_trim")
	require.NoError(t, err)

	table := storage.NewTable([]string{"diagnosis"})
	require.NoError(t, table.AppendRow([]string{"Coma; Ataxia"}))
	require.NoError(t, table.AppendRow([]string{"Ataxia"}))

	_, classes, err := New(zap.New(core)).EncodeTable(table, "diagnosis", ";", split)
	require.NoError(t, err)

	entries := logs.FilterMessage("labels binarized").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "diagnosis", fields["column"])
	assert.EqualValues(t, len(classes), fields["classes"])
	assert.EqualValues(t, 0, fields["unknown_labels"])
}
