package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"coassoc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Inputs InputConfig
	Output OutputConfig
	Stats  StatsConfig
	// StudyFile optionally overrides the built-in study definition with a
	// JSON file (see study.go).
	StudyFile string
}

// InputConfig holds paths to the three tabular inputs
type InputConfig struct {
	PatientsFile   string
	ControlsFile   string
	ExpressionFile string
}

// OutputConfig holds rendering destinations
type OutputConfig struct {
	Dir        string
	ReportName string
}

// StatsConfig holds test configuration the analyst controls explicitly
type StatsConfig struct {
	// Confidence level for odds-ratio and logistic intervals.
	Confidence float64
	// Yates enables the continuity correction on chi-squared tests. Off by
	// default; never auto-enabled from expected cell counts.
	Yates bool
}

// Load reads configuration from environment variables (a .env file is
// honored when present) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Inputs: InputConfig{
			PatientsFile:   os.Getenv("COASSOC_PATIENTS"),
			ControlsFile:   os.Getenv("COASSOC_CONTROLS"),
			ExpressionFile: os.Getenv("COASSOC_EXPRESSION"),
		},
		Output: OutputConfig{
			Dir:        getEnvOrDefault("COASSOC_OUT_DIR", "out"),
			ReportName: getEnvOrDefault("COASSOC_REPORT_NAME", "report"),
		},
		Stats: StatsConfig{
			Confidence: getEnvFloatOrDefault("COASSOC_CONFIDENCE", 0.95),
			Yates:      getEnvBoolOrDefault("COASSOC_YATES", false),
		},
		StudyFile: os.Getenv("COASSOC_STUDY_FILE"),
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Inputs.PatientsFile == "" {
		return errors.ConfigInvalid("COASSOC_PATIENTS is required")
	}
	if cfg.Inputs.ControlsFile == "" {
		return errors.ConfigInvalid("COASSOC_CONTROLS is required")
	}
	if cfg.Stats.Confidence <= 0 || cfg.Stats.Confidence >= 1 {
		return errors.ConfigInvalid("COASSOC_CONFIDENCE must be in (0,1)")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
