package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyFile se devuelve cuando el archivo no tiene ni siquiera un header.
var ErrEmptyFile = errors.New("empty file")

const bufSize = 1 << 20 // 1 MiB

// ReadCSV carga el archivo completo en memoria. El primer registro es el header.
// Un archivo inexistente devuelve un error que envuelve fs.ErrNotExist.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReaderSize(f, bufSize))
	reader.FieldsPerRecord = -1 // las filas cortas se completan abajo

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// BOM de UTF-8 (CSV exportados desde Excel)
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	table := NewTable(header)
	rowNum := 1 // header ya contado
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum, err)
		}
		// Fila corta: las celdas faltantes quedan vacias. Las largas son error.
		for len(row) < len(header) {
			row = append(row, "")
		}
		if err := table.AppendRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
	}
	return table, nil
}

// WriteCSV escribe header + filas. No crea directorios: si el padre no existe
// el error de os.Create se propaga.
func WriteCSV(path string, table *Table) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	bw := bufio.NewWriterSize(out, bufSize)
	writer := csv.NewWriter(bw)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return bw.Flush()
}
