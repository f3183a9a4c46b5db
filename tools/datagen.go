package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"medprep/internal/common"
	"medprep/internal/storage"
	"medprep/internal/synth"
)

// Genera data/raw/patients.csv listo para el encoder con sus valores por
// defecto: columna "diagnoses" separada por comas.
func main() {
	path, err := generate(common.DefaultInputFolder, 200)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf(" Datos generados exitosamente en %s.\n", path)
}

func generate(dir string, n int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creando %s: %w", dir, err)
	}
	path := filepath.Join(dir, "patients.csv")

	records := synth.New(2024).Generate(n)
	table := storage.NewTable([]string{"id", common.ColumnAge, common.ColumnSex, common.DefaultColumnName})
	for i, r := range records {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Age),
			r.Sex,
			strings.Join(r.Diagnoses, common.DefaultDelimiter),
		})
	}

	if err := storage.WriteCSV(path, table); err != nil {
		return "", fmt.Errorf("escribiendo %s: %w", path, err)
	}
	return path, nil
}
