package common

import (
	"strconv"
	"strings"
)

// PatientRecord es una fila del generador sintetico.
type PatientRecord struct {
	Age        int      `json:"age"`
	CRB        int      `json:"crb"`
	Creatinine float64  `json:"creatinine"` // 2 decimales
	Hematocrit float64  `json:"hematocrit"` // 1 decimal
	Sex        string   `json:"sex"`
	Diagnoses  []string `json:"diagnoses"` // 1 a 3, sin repetidos
}

// Diagnosis devuelve la celda de diagnosticos ya unida.
func (p PatientRecord) Diagnosis() string {
	return strings.Join(p.Diagnoses, DiagnosisSeparator)
}

// Row serializa el registro en el orden de PatientColumns.
func (p PatientRecord) Row() []string {
	return []string{
		strconv.Itoa(p.Age),
		strconv.Itoa(p.CRB),
		formatFloat(p.Creatinine),
		formatFloat(p.Hematocrit),
		p.Sex,
		p.Diagnosis(),
	}
}

// formatFloat usa la representacion mas corta (1.2 y no 1.20).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
