package common

import (
	"time"

	"github.com/google/uuid"
)

type RunReport struct {
	RunID      string   `json:"run_id"`
	Tool       string   `json:"tool"`   // "encoder" o "synth"
	Status     string   `json:"status"` // SUCCESS / FAILURE
	ErrorMsg   string   `json:"error_msg,omitempty"`
	InputPath  string   `json:"input_path,omitempty"`
	OutputPath string   `json:"output_path"`
	Rows       int      `json:"rows"`             // Filas de datos escritas (sin header)
	Columns    int      `json:"columns"`          // Columnas de la salida
	Labels     []string `json:"labels,omitempty"` // Clases del binarizer (solo encoder)
	Timestamp  int64    `json:"timestamp"`
	DurationMS int64    `json:"duration_ms"`
}

// NewRunReport abre un reporte con ID nuevo y marca de tiempo de inicio.
func NewRunReport(tool string) RunReport {
	return RunReport{
		RunID:     uuid.New().String(),
		Tool:      tool,
		Timestamp: time.Now().Unix(),
	}
}

// Finish cierra el reporte. err == nil implica SUCCESS.
func (r *RunReport) Finish(start time.Time, err error) {
	r.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		r.Status = RunStatusFailure
		r.ErrorMsg = err.Error()
		return
	}
	r.Status = RunStatusSuccess
}
