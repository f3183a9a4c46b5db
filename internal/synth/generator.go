// Package synth genera registros de pacientes sinteticos.
package synth

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"medprep/internal/common"
	"medprep/internal/storage"
)

// Generator no es seguro para uso concurrente.
type Generator struct {
	src rand.Source
	rng *rand.Rand
	age distuv.Normal
}

// New crea un generador. seed == 0 elige una semilla aleatoria.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Generator{
		src: src,
		rng: rand.New(src),
		age: distuv.Normal{Mu: common.AgeMean, Sigma: common.AgeStd, Src: src},
	}
}

// Generate produce n registros independientes. n <= 0 devuelve una lista vacia.
func (g *Generator) Generate(n int) []common.PatientRecord {
	records := make([]common.PatientRecord, 0, max(n, 0))
	for i := 0; i < n; i++ {
		records = append(records, g.Record())
	}
	return records
}

// Record muestrea un solo paciente.
func (g *Generator) Record() common.PatientRecord {
	sex := common.SexOptions[g.rng.IntN(len(common.SexOptions))]
	return common.PatientRecord{
		Age:        g.sampleAge(),
		CRB:        common.CRBMin + g.rng.IntN(common.CRBMax-common.CRBMin+1),
		Creatinine: round(g.uniform(common.CreatinineRange[sex]), 2),
		Hematocrit: round(g.uniform(common.HematocritRange[sex]), 1),
		Sex:        sex,
		Diagnoses:  g.sampleDiagnoses(),
	}
}

// sampleAge trunca hacia cero y recorta a [AgeMin, AgeMax].
func (g *Generator) sampleAge() int {
	age := int(g.age.Rand())
	return min(max(age, common.AgeMin), common.AgeMax)
}

func (g *Generator) uniform(r common.Range) float64 {
	u := distuv.Uniform{Min: r.Min, Max: r.Max, Src: g.src}
	return u.Rand()
}

// sampleDiagnoses toma entre 1 y 3 diagnosticos sin reemplazo.
func (g *Generator) sampleDiagnoses() []string {
	k := common.MinDiagnoses + g.rng.IntN(common.MaxDiagnoses-common.MinDiagnoses+1)
	perm := g.rng.Perm(len(common.DiagnosisOptions))[:k]
	out := make([]string, k)
	for i, idx := range perm {
		out[i] = common.DiagnosisOptions[idx]
	}
	return out
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// ToTable arma la tabla con las columnas de common.PatientColumns.
func ToTable(records []common.PatientRecord) *storage.Table {
	table := storage.NewTable(common.PatientColumns)
	for _, r := range records {
		table.Rows = append(table.Rows, r.Row())
	}
	return table
}

// WriteCSV no crea directorios; cualquier error de escritura se devuelve.
func WriteCSV(path string, records []common.PatientRecord) error {
	return storage.WriteCSV(path, ToTable(records))
}
