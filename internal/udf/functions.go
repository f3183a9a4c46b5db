package udf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Record es el valor crudo de una celda de la columna a codificar.
type Record string

// UDFSplitFn convierte una celda en su lista de etiquetas.
type UDFSplitFn func(r Record, delimiter string) []string

// UDFFilterFn decide si una etiqueta se conserva.
type UDFFilterFn func(label string) bool

var UDFRegistry = map[string]interface{}{
	// split replica str.split: las etiquetas conservan los espacios.
	"split": UDFSplitFn(func(r Record, delimiter string) []string {
		if r == "" {
			return []string{}
		}
		return strings.Split(string(r), delimiter)
	}),
	"split_trim": UDFSplitFn(func(r Record, delimiter string) []string {
		return splitClean(r, delimiter, strings.TrimSpace)
	}),
	"split_lower": UDFSplitFn(func(r Record, delimiter string) []string {
		return splitClean(r, delimiter, func(s string) string {
			return strings.ToLower(strings.TrimSpace(s))
		})
	}),
}

// FilterRegistry va aparte de UDFRegistry: los splits lo consultan y un solo
// mapa formaria un ciclo de inicializacion.
var FilterRegistry = map[string]UDFFilterFn{
	"not_empty": notEmpty,
}

// labelFilter es el filtro que aplican split_trim y split_lower.
const labelFilter = "not_empty"

func notEmpty(label string) bool {
	return strings.TrimSpace(label) != ""
}

// splitClean normaliza cada parte y descarta las que no pasan labelFilter.
func splitClean(r Record, delimiter string, normalize func(string) string) []string {
	keep, err := GetFilterFunction(labelFilter)
	if err != nil {
		keep = notEmpty
	}
	parts := lo.Map(strings.Split(string(r), delimiter), func(s string, _ int) string {
		return normalize(s)
	})
	return lo.Filter(parts, func(s string, _ int) bool { return keep(s) })
}

// Helpers para obtener funciones con cast seguro
func GetSplitFunction(name string) (UDFSplitFn, error) {
	if fn, ok := UDFRegistry[name].(UDFSplitFn); ok {
		return fn, nil
	}
	return nil, fmt.Errorf("split function %s not found", name)
}

func GetFilterFunction(name string) (UDFFilterFn, error) {
	if fn, ok := FilterRegistry[name]; ok && fn != nil {
		return fn, nil
	}
	return nil, fmt.Errorf("filter function %s not found", name)
}

// SplitFunctionNames lista los nombres validos para --split-fn, ordenados.
func SplitFunctionNames() []string {
	var names []string
	for name, fn := range UDFRegistry {
		if _, ok := fn.(UDFSplitFn); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
