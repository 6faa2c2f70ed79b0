// Package config loads application settings from an optional .env file and
// the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizsense/internal/llm"
)

// Config holds application settings. Command-line flags override it.
type Config struct {
	LogLevel  string
	LogFormat string

	// DBPath is empty when the default location should be used.
	DBPath string

	// RulesFile is an optional YAML overlay on the built-in rule tables.
	RulesFile string

	NarrativeEnabled bool
	NarrativeTimeout time.Duration

	// LLM is valid only when LLMConfigured is true.
	LLM           llm.Config
	LLMConfigured bool

	// MetricsFile, when set, receives a Prometheus text dump after each run.
	MetricsFile string
}

// Load reads .env files (missing files are ignored) then the environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{
		LogLevel:    getenvDefault("QUIZSENSE_LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("QUIZSENSE_LOG_FORMAT", "console"),
		DBPath:      os.Getenv("QUIZSENSE_DB"),
		RulesFile:   os.Getenv("QUIZSENSE_RULES_FILE"),
		MetricsFile: os.Getenv("QUIZSENSE_METRICS_FILE"),
	}
	cfg.LLM, cfg.LLMConfigured = llm.ConfigFromEnv()

	timeout, err := getDuration("QUIZSENSE_NARRATIVE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.NarrativeTimeout = timeout

	enabled, err := getBool("QUIZSENSE_NARRATIVE", cfg.LLMConfigured)
	if err != nil {
		return nil, err
	}
	cfg.NarrativeEnabled = enabled

	return cfg, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", k, d)
	}
	return d, nil
}

func getBool(k string, fallback bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a valid boolean: %w", k, v, err)
	}
	return b, nil
}
