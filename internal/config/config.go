package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"medprep/internal/common"
)

// Config agrupa la configuracion compartida por los comandos encoder y synth.
type Config struct {
	Encoder   EncoderConfig   `yaml:"encoder"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EncoderConfig tiene los valores por defecto del encoder. Los flags ganan.
type EncoderConfig struct {
	InputFolder  string `yaml:"input_folder"`
	OutputFolder string `yaml:"output_folder"`
	ColumnName   string `yaml:"column_name"`
	Delimiter    string `yaml:"delimiter"`
	SplitFn      string `yaml:"split_fn"` // split, split_trim, split_lower
}

// GeneratorConfig tiene los valores por defecto de synth.
type GeneratorConfig struct {
	NumRecords int    `yaml:"num_records"`
	OutputFile string `yaml:"output_file"`
	Seed       uint64 `yaml:"seed"` // 0 = aleatoria
}

// LoggingConfig configura zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Variables de entorno que pisan los valores del archivo.
const (
	EnvLogLevel     = "MEDPREP_LOG_LEVEL"
	EnvInputFolder  = "MEDPREP_INPUT_FOLDER"
	EnvOutputFolder = "MEDPREP_OUTPUT_FOLDER"
)

// DefaultConfig devuelve los valores por defecto.
func DefaultConfig() *Config {
	return &Config{
		Encoder: EncoderConfig{
			InputFolder:  common.DefaultInputFolder,
			OutputFolder: common.DefaultOutputFolder,
			ColumnName:   common.DefaultColumnName,
			Delimiter:    common.DefaultDelimiter,
			SplitFn:      common.DefaultSplitFn,
		},
		Generator: GeneratorConfig{
			NumRecords: common.DefaultNumRecords,
			OutputFile: common.DefaultOutputFile,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load lee la configuracion de un YAML. Un path vacio o un archivo inexistente
// devuelven los valores por defecto (mas las variables de entorno).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save escribe la configuracion en un YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvInputFolder); v != "" {
		c.Encoder.InputFolder = v
	}
	if v := os.Getenv(EnvOutputFolder); v != "" {
		c.Encoder.OutputFolder = v
	}
}
