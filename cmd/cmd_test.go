package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"QUIZSENSE_LOG_LEVEL", "QUIZSENSE_LOG_FORMAT", "QUIZSENSE_DB", "QUIZSENSE_RULES_FILE",
	"QUIZSENSE_METRICS_FILE", "QUIZSENSE_NARRATIVE_TIMEOUT", "QUIZSENSE_NARRATIVE",
	"QUIZSENSE_LLM_PROVIDER", "QUIZSENSE_ANTHROPIC_API_KEY", "QUIZSENSE_OPENAI_API_KEY",
	"QUIZSENSE_GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY",
}

// run executes the root command with a fresh database and returns stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args,
		"--db", dbPath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--log-level", "error",
	))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Setenv("QUIZSENSE_LLM_PROVIDER", "mock")
	t.Setenv("QUIZSENSE_NARRATIVE_TIMEOUT", "2s")

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "quizsense.db")
	metricsPath := filepath.Join(dir, "quizsense.prom")

	t.Run("analyze json", func(t *testing.T) {
		out, err := run(t, dbPath, "analyze", "testdata/attempt.json",
			"--format", "json", "--metrics-file", metricsPath)
		require.NoError(t, err)

		var r map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, "attempt-001", r["attemptId"])
		assert.Equal(t, "needs_improvement", r["level"])
		assert.Equal(t, "local", r["narrativeSource"])

		prom, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(prom), `quizsense_evaluations_total{level="needs_improvement"} 1`)
		assert.Contains(t, string(prom), `quizsense_narrative_requests_total{outcome="error"} 1`)
	})

	t.Run("analyze text", func(t *testing.T) {
		out, err := run(t, dbPath, "analyze", "testdata/attempt.json",
			"--format", "text", "--plain", "--questions", "--no-narrative")
		require.NoError(t, err)
		assert.Contains(t, out, "Quiz Report")
		assert.Contains(t, out, "Blood filtration is done by the kidneys")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("analyze rejects unknown format", func(t *testing.T) {
		_, err := run(t, dbPath, "analyze", "testdata/attempt.json", "--format", "xml")
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("analyze rejects missing file", func(t *testing.T) {
		_, err := run(t, dbPath, "analyze", filepath.Join(dir, "nope.json"), "--format", "json")
		assert.Error(t, err)
	})

	t.Run("events list", func(t *testing.T) {
		out, err := run(t, dbPath, "events", "list", "--kind", "evaluations")
		require.NoError(t, err)
		assert.Contains(t, out, "attempt-001")
		assert.Contains(t, out, "needs_improvement")

		out, err = run(t, dbPath, "events", "list", "--kind", "llm")
		require.NoError(t, err)
		assert.Contains(t, out, "narrative-feedback")
	})

	t.Run("events stats", func(t *testing.T) {
		out, err := run(t, dbPath, "events", "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "Evaluations by Level")
		assert.Contains(t, out, "narrative-feedback")
	})

	t.Run("rules", func(t *testing.T) {
		out, err := run(t, dbPath, "rules")
		require.NoError(t, err)
		assert.Contains(t, out, "Blood filtration is done by the kidneys")
	})

	t.Run("version", func(t *testing.T) {
		out, err := run(t, dbPath, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "quizsense ")
		assert.Contains(t, out, runtime.Version())
	})
}
