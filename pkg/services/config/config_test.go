package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, FormatCSV, cfg.Output.Format)
	assert.Equal(t, []string{"daily", "monthly"}, cfg.Output.Granularity)
	assert.Equal(t, "HRSystem", cfg.Sources.A)
	assert.Equal(t, "PayrollSystem", cfg.Sources.B)
	assert.Equal(t, 8.0, cfg.Aggregation.DailyThreshold)
	assert.Equal(t, 8.0, cfg.Aggregation.MonthlyThreshold)
	assert.Equal(t, 0.0, cfg.Reconciliation.Tolerance)
	assert.False(t, cfg.Reconciliation.SkipZeroMissing)
	assert.False(t, cfg.Reconciliation.IncludeOnlyInB)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "recon.yaml", `sources:
  payroll: sap.csv
  hr: zalaris.csv
output:
  dir: out
  format: sqlite
  granularity: [monthly]
  markdown: true
aggregation:
  daily_threshold: 7.5
  monthly_threshold: 7.5
reconciliation:
  tolerance: 0.25
  skip_zero_missing: true
  include_only_in_b: true
logging:
  level: debug
`)

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "sap.csv", cfg.Sources.Payroll)
	assert.Equal(t, "zalaris.csv", cfg.Sources.HR)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, FormatSQLite, cfg.Output.Format)
	assert.True(t, cfg.Output.Markdown)
	assert.Equal(t, 7.5, cfg.Aggregation.DailyThreshold)
	assert.Equal(t, 0.25, cfg.Reconciliation.Tolerance)
	assert.True(t, cfg.Reconciliation.SkipZeroMissing)
	assert.True(t, cfg.Reconciliation.IncludeOnlyInB)
	assert.Equal(t, "debug", cfg.Logging.Level)

	granularities, err := cfg.Granularities()
	require.NoError(t, err)
	assert.Equal(t, []domain.Granularity{domain.GranularityMonthly}, granularities)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "recon.yaml", "output:\n  format: duckdb\n")
	t.Setenv("RECON_OUTPUT_FORMAT", "sqlite")
	t.Setenv("RECON_RECONCILIATION_TOLERANCE", "0.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatSQLite, cfg.Output.Format)
	assert.Equal(t, 0.5, cfg.Reconciliation.Tolerance)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "RECON_OUTPUT_DIR=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("RECON_OUTPUT_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Output.Dir)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"format", func(c *Config) { c.Output.Format = "xlsx" }},
		{"dir", func(c *Config) { c.Output.Dir = "" }},
		{"granularity", func(c *Config) { c.Output.Granularity = []string{"weekly"} }},
		{"no granularity", func(c *Config) { c.Output.Granularity = nil }},
		{"same sides", func(c *Config) { c.Sources.B = c.Sources.A }},
		{"threshold", func(c *Config) { c.Aggregation.DailyThreshold = -1 }},
		{"tolerance", func(c *Config) { c.Reconciliation.Tolerance = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGranularities_SplitsAndDeduplicates(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Granularity: []string{"daily,monthly", "Daily"}}}

	got, err := cfg.Granularities()
	require.NoError(t, err)
	assert.Equal(t, []domain.Granularity{domain.GranularityDaily, domain.GranularityMonthly}, got)
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	registry, err := NewRegistry(writeFile(t, dir, "sources.ini", `[PayrollSystem]
path = profile-sap.csv

[HRSystem]
path = profile-zalaris.csv
schema = HRSystem
`))
	require.NoError(t, err)

	t.Run("profiles only", func(t *testing.T) {
		cfg := &Config{Sources: SourcesConfig{A: "HRSystem", B: "PayrollSystem"}}

		inputs, err := cfg.Inputs(registry)
		require.NoError(t, err)
		require.Len(t, inputs, 2)
		assert.Equal(t, domain.SourceProfile{Name: domain.SourceHR, Path: "profile-zalaris.csv", Schema: domain.SourceHR}, inputs[0])
		assert.Equal(t, domain.SourceProfile{Name: domain.SourcePayroll, Path: "profile-sap.csv"}, inputs[1])
	})

	t.Run("explicit path wins", func(t *testing.T) {
		cfg := &Config{Sources: SourcesConfig{A: "HRSystem", B: "PayrollSystem", Payroll: "flag.csv"}}

		inputs, err := cfg.Inputs(registry)
		require.NoError(t, err)
		assert.Equal(t, "flag.csv", inputs[1].Path)
	})

	t.Run("missing source", func(t *testing.T) {
		cfg := &Config{Sources: SourcesConfig{A: "HRSystem", B: "PayrollSystem", HR: "zalaris.csv"}}

		_, err := cfg.Inputs(nil)
		assert.Error(t, err)
	})
}
