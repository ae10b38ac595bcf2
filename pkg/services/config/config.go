package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/hours-atlas/pkg/logging"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/services/aggregate"
	"github.com/de-tools/hours-atlas/pkg/services/reconcile"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g. RECON_OUTPUT_FORMAT.
const EnvPrefix = "RECON"

// Output formats understood by the sinks.
const (
	FormatCSV    = "csv"
	FormatDuckDB = "duckdb"
	FormatSQLite = "sqlite"
)

type SourcesConfig struct {
	Payroll string `mapstructure:"payroll"`
	HR      string `mapstructure:"hr"`
	// Profiles is an optional ini file with one section per source.
	Profiles string `mapstructure:"profiles"`
	// A and B select which source is the left and right side of the comparison.
	A string `mapstructure:"a"`
	B string `mapstructure:"b"`
}

type OutputConfig struct {
	Dir         string   `mapstructure:"dir"`
	Format      string   `mapstructure:"format"`
	Granularity []string `mapstructure:"granularity"`
	Markdown    bool     `mapstructure:"markdown"`
}

type Config struct {
	Sources        SourcesConfig      `mapstructure:"sources"`
	Output         OutputConfig       `mapstructure:"output"`
	Aggregation    aggregate.Settings `mapstructure:"aggregation"`
	Reconciliation reconcile.Settings `mapstructure:"reconciliation"`
	Logging        logging.Config     `mapstructure:"logging"`
}

// Load builds the run configuration from defaults, an optional config file and
// RECON_ prefixed environment variables. A .env file in the working directory is
// loaded first; variables already set in the environment win over it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	agg := aggregate.DefaultSettings()
	rec := reconcile.DefaultSettings()
	log := logging.DefaultConfig()

	v.SetDefault("sources.payroll", "")
	v.SetDefault("sources.hr", "")
	v.SetDefault("sources.profiles", "")
	v.SetDefault("sources.a", string(domain.SourceHR))
	v.SetDefault("sources.b", string(domain.SourcePayroll))

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.format", FormatCSV)
	v.SetDefault("output.granularity", []string{string(domain.GranularityDaily), string(domain.GranularityMonthly)})
	v.SetDefault("output.markdown", false)

	v.SetDefault("aggregation.daily_threshold", agg.DailyThreshold)
	v.SetDefault("aggregation.monthly_threshold", agg.MonthlyThreshold)

	v.SetDefault("reconciliation.tolerance", rec.Tolerance)
	v.SetDefault("reconciliation.skip_zero_missing", rec.SkipZeroMissing)
	v.SetDefault("reconciliation.include_only_in_b", rec.IncludeOnlyInB)

	v.SetDefault("logging.level", log.Level)
	v.SetDefault("logging.format", log.Format)
	v.SetDefault("logging.output", log.Output)
	v.SetDefault("logging.no_color", log.NoColor)
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatCSV, FormatDuckDB, FormatSQLite:
	default:
		return fmt.Errorf("unsupported output format %q (expected csv, duckdb or sqlite)", c.Output.Format)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory must be set")
	}
	if _, err := c.Granularities(); err != nil {
		return err
	}
	if c.Sources.A == c.Sources.B {
		return fmt.Errorf("comparison sides must differ, both are %q", c.Sources.A)
	}
	if err := c.Aggregation.Validate(); err != nil {
		return err
	}
	return c.Reconciliation.Validate()
}

// Granularities returns the requested comparison granularities without duplicates.
func (c *Config) Granularities() ([]domain.Granularity, error) {
	var result []domain.Granularity
	seen := make(map[domain.Granularity]bool)
	for _, raw := range c.Output.Granularity {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			g, err := domain.ParseGranularity(part)
			if err != nil {
				return nil, err
			}
			if !seen[g] {
				seen[g] = true
				result = append(result, g)
			}
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("at least one granularity must be requested")
	}
	return result, nil
}

// Inputs resolves the source files of a run. Explicit paths win over the profiles file.
func (c *Config) Inputs(registry Registry) ([]domain.SourceProfile, error) {
	explicit := map[domain.SourceID]string{
		domain.SourcePayroll: c.Sources.Payroll,
		domain.SourceHR:      c.Sources.HR,
	}

	profiles := make(map[domain.SourceID]domain.SourceProfile)
	if registry != nil {
		names, err := registry.GetProfiles()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			p, err := registry.GetProfile(name)
			if err != nil {
				return nil, err
			}
			profiles[p.Name] = p
		}
	}

	var inputs []domain.SourceProfile
	for _, id := range []domain.SourceID{domain.SourceID(c.Sources.A), domain.SourceID(c.Sources.B)} {
		p, ok := profiles[id]
		if path := explicit[id]; path != "" {
			p = domain.SourceProfile{Name: id, Path: path, Schema: p.Schema}
			ok = true
		}
		if !ok || p.Path == "" {
			return nil, fmt.Errorf("no input file configured for source %s", id)
		}
		inputs = append(inputs, p)
	}
	return inputs, nil
}
