package encoder

import (
	"errors"
	"sort"

	"github.com/samber/lo"
)

var ErrNotFitted = errors.New("binarizer not fitted")

// MultiLabelBinarizer traduce conjuntos de etiquetas a vectores 0/1, una
// columna por clase. Las clases quedan ordenadas.
//
// No es seguro para uso concurrente; Encode crea uno nuevo en cada llamada.
type MultiLabelBinarizer struct {
	classes []string
	index   map[string]int
}

func NewMultiLabelBinarizer() *MultiLabelBinarizer {
	return &MultiLabelBinarizer{}
}

// Fit reemplaza el vocabulario con las etiquetas distintas de labelSets.
func (b *MultiLabelBinarizer) Fit(labelSets [][]string) *MultiLabelBinarizer {
	classes := lo.Uniq(lo.Flatten(labelSets))
	sort.Strings(classes)

	b.classes = classes
	b.index = make(map[string]int, len(classes))
	for i, c := range classes {
		b.index[c] = i
	}
	return b
}

// Transform devuelve una fila por conjunto. Las etiquetas que no estaban
// en el vocabulario se ignoran y se cuentan en unknown.
func (b *MultiLabelBinarizer) Transform(labelSets [][]string) (out [][]int, unknown int, err error) {
	if b.index == nil {
		return nil, 0, ErrNotFitted
	}
	out = make([][]int, len(labelSets))
	for i, labels := range labelSets {
		vec := make([]int, len(b.classes))
		for _, l := range labels {
			idx, ok := b.index[l]
			if !ok {
				unknown++
				continue
			}
			vec[idx] = 1
		}
		out[i] = vec
	}
	return out, unknown, nil
}

// Classes devuelve una copia del vocabulario ajustado.
func (b *MultiLabelBinarizer) Classes() []string {
	return append([]string(nil), b.classes...)
}
