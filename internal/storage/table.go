package storage

import (
	"fmt"

	"github.com/samber/lo"
)

// Table es una tabla CSV completa en memoria. Las celdas se guardan tal
// cual se leyeron, sin conversion de tipos.
type Table struct {
	Header []string
	Rows   [][]string
}

func NewTable(header []string) *Table {
	return &Table{
		Header: append([]string(nil), header...),
		Rows:   make([][]string, 0),
	}
}

func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.Header) {
		return fmt.Errorf("row has %d fields, header has %d", len(row), len(t.Header))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// ColumnIndex devuelve -1 si la columna no existe.
func (t *Table) ColumnIndex(name string) int {
	return lo.IndexOf(t.Header, name)
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column devuelve una copia de los valores de la columna, fila por fila.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	return lo.Map(t.Rows, func(row []string, _ int) string { return row[idx] }), true
}

// DropColumn devuelve una tabla nueva sin la columna indicada.
func (t *Table) DropColumn(name string) (*Table, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not in table", name)
	}
	out := NewTable(dropIndex(t.Header, idx))
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, dropIndex(row, idx))
	}
	return out, nil
}

// AppendColumns agrega columnas al final. values[i] son las celdas nuevas de la fila i.
func (t *Table) AppendColumns(names []string, values [][]string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("got values for %d rows, table has %d", len(values), len(t.Rows))
	}
	for i, v := range values {
		if len(v) != len(names) {
			return fmt.Errorf("row %d: got %d values for %d columns", i, len(v), len(names))
		}
	}
	t.Header = append(t.Header, names...)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i]...)
	}
	return nil
}

func dropIndex(s []string, idx int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:idx]...)
	return append(out, s[idx+1:]...)
}
