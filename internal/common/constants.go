package common

// --- 1. Valores por defecto de los comandos ---

// Encoder (one-hot)
const (
	DefaultInputFolder  = "data/raw"
	DefaultOutputFolder = "data/processed_data"
	DefaultColumnName   = "diagnoses"
	DefaultDelimiter    = ","
	DefaultSplitFn      = "split"
	EncodedFilePrefix   = "encoded_"

	// Generador sintetico
	DefaultNumRecords = 1000
	DefaultOutputFile = "synthetic_patients.csv"

	// Nombres de las herramientas (RunReport.Tool)
	ToolEncoder = "encoder"
	ToolSynth   = "synth"

	// Estados de una ejecucion (RunReport.Status)
	RunStatusSuccess = "SUCCESS"
	RunStatusFailure = "FAILURE"
)

// --- 2. Esquema de los pacientes sinteticos ---

// Columnas de salida, en el orden en que se escriben.
const (
	ColumnAge        = "age"
	ColumnCRB        = "CRB"
	ColumnCreatinine = "creatinine"
	ColumnHematocrit = "hematocrit"
	ColumnSex        = "sex"
	ColumnDiagnosis  = "diagnosis"
)

var PatientColumns = []string{
	ColumnAge, ColumnCRB, ColumnCreatinine, ColumnHematocrit, ColumnSex, ColumnDiagnosis,
}

const (
	SexMale   = "Male"
	SexFemale = "Female"
)

var SexOptions = []string{SexMale, SexFemale}

// DiagnosisSeparator une los diagnosticos de un paciente en una sola celda.
const DiagnosisSeparator = "; "

// DiagnosisOptions es el vocabulario fijo de diagnosticos (12 entradas).
var DiagnosisOptions = []string{
	"Coma", "Aphasia", "Dysphagia", "Seizure", "Headache", "Stroke", "Migraine",
	"Insultus ischaemicus cerebellum sin", "Ataxia", "Hemiplegia",
	"Reinsultus ischaemicus cerebri in b. ACM sin", "transformatio haemorrhagica",
}

// Rangos clinicos
const (
	AgeMean = 50.0
	AgeStd  = 18.0
	AgeMin  = 0
	AgeMax  = 100

	CRBMin = 0
	CRBMax = 3

	MinDiagnoses = 1
	MaxDiagnoses = 3
)

// Range es un intervalo cerrado [Min, Max].
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Rangos condicionados por sexo
var (
	CreatinineRange = map[string]Range{
		SexMale:   {Min: 0.74, Max: 1.35},
		SexFemale: {Min: 0.59, Max: 1.04},
	}
	HematocritRange = map[string]Range{
		SexMale:   {Min: 38.3, Max: 48.6},
		SexFemale: {Min: 35.5, Max: 44.9},
	}
)
