package commands

import (
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/logging"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/hours-atlas/pkg/services/config"
	"github.com/de-tools/hours-atlas/pkg/services/output"
	"github.com/de-tools/hours-atlas/pkg/services/schema"
	"github.com/de-tools/hours-atlas/pkg/services/workflow"
	"github.com/de-tools/hours-atlas/pkg/store/file"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ReportHandler renders the summary of a run.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

type RunCmd struct {
	configPath       string
	sourcesPath      string
	payroll          string
	hr               string
	out              string
	format           string
	granularity      []string
	tolerance        float64
	dailyThreshold   float64
	monthlyThreshold float64
	skipZeroMissing  bool
	includeOnlyInB   bool
	markdown         bool
	logLevel         string

	schemas  schema.Registry
	sinks    output.Registry
	reporter ReportHandler
}

func NewRunCmd(schemas schema.Registry, sinks output.Registry, reporter ReportHandler) *cobra.Command {
	rc := &RunCmd{schemas: schemas, sinks: sinks, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile the payroll and HR timesheet exports",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Path to a YAML run configuration")
	cmd.Flags().StringVar(&rc.sourcesPath, "sources", "", "Path to an ini file with one section per source")
	cmd.Flags().StringVar(&rc.payroll, "payroll", "", "Path to the PayrollSystem export")
	cmd.Flags().StringVar(&rc.hr, "hr", "", "Path to the HRSystem export")
	cmd.Flags().StringVar(&rc.out, "out", "output", "Directory the tables are written to")
	cmd.Flags().StringVar(&rc.format, "format", config.FormatCSV, "Output format (csv, duckdb or sqlite)")
	cmd.Flags().StringSliceVar(&rc.granularity, "granularity", []string{"daily", "monthly"}, "Comparison granularities")
	cmd.Flags().Float64Var(&rc.tolerance, "tolerance", 0, "Absolute hour difference treated as equal")
	cmd.Flags().Float64Var(&rc.dailyThreshold, "daily-threshold", 8, "Daily hours above which a day is flagged")
	cmd.Flags().Float64Var(&rc.monthlyThreshold, "monthly-threshold", 8, "Hours per working day used for the monthly ceiling")
	cmd.Flags().BoolVar(&rc.skipZeroMissing, "skip-zero-missing", false, "Drop missing rows whose present side has zero hours")
	cmd.Flags().BoolVar(&rc.includeOnlyInB, "include-only-in-b", false, "Also report keys present only in the second source")
	cmd.Flags().BoolVar(&rc.markdown, "markdown", false, "Write a markdown summary next to the tables")
	cmd.Flags().StringVar(&rc.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}
	rc.applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("invalid logging configuration: %w", err)
	}
	defer closer.Close()
	ctx := logger.WithContext(cmd.Context())

	var profiles config.Registry
	if cfg.Sources.Profiles != "" {
		if profiles, err = config.NewRegistry(cfg.Sources.Profiles); err != nil {
			return err
		}
	}
	inputs, err := cfg.Inputs(profiles)
	if err != nil {
		return err
	}
	granularities, err := cfg.Granularities()
	if err != nil {
		return err
	}

	sink, err := rc.sinks.Create(cfg.Output.Format, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to create %s output: %w", cfg.Output.Format, err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close output")
		}
	}()

	runner := workflow.NewRunner(schema.NewNormalizer(rc.schemas), file.ReadTable, sink, workflow.RunnerConfig{
		SourceA:        domain.SourceID(cfg.Sources.A),
		SourceB:        domain.SourceID(cfg.Sources.B),
		Granularities:  granularities,
		Aggregation:    cfg.Aggregation,
		Reconciliation: cfg.Reconciliation,
	})

	result, runErr := runner.Run(ctx, inputs)
	report := workflow.BuildReport(result)
	if err := rc.reporter.Handle(report); err != nil {
		logger.Warn().Err(err).Msg("failed to render report")
	}
	if runErr != nil {
		return fmt.Errorf("run %s failed: %w", result.Run.ID, runErr)
	}

	if cfg.Output.Markdown {
		path, err := export.WriteFile(cfg.Output.Dir, report)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("markdown summary written")
	}
	return nil
}

// applyFlags overrides configuration values with the flags set on the command line.
func (rc *RunCmd) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("sources") {
		cfg.Sources.Profiles = rc.sourcesPath
	}
	if flags.Changed("payroll") {
		cfg.Sources.Payroll = rc.payroll
	}
	if flags.Changed("hr") {
		cfg.Sources.HR = rc.hr
	}
	if flags.Changed("out") {
		cfg.Output.Dir = rc.out
	}
	if flags.Changed("format") {
		cfg.Output.Format = rc.format
	}
	if flags.Changed("granularity") {
		cfg.Output.Granularity = rc.granularity
	}
	if flags.Changed("markdown") {
		cfg.Output.Markdown = rc.markdown
	}
	if flags.Changed("tolerance") {
		cfg.Reconciliation.Tolerance = rc.tolerance
	}
	if flags.Changed("skip-zero-missing") {
		cfg.Reconciliation.SkipZeroMissing = rc.skipZeroMissing
	}
	if flags.Changed("include-only-in-b") {
		cfg.Reconciliation.IncludeOnlyInB = rc.includeOnlyInB
	}
	if flags.Changed("daily-threshold") {
		cfg.Aggregation.DailyThreshold = rc.dailyThreshold
	}
	if flags.Changed("monthly-threshold") {
		cfg.Aggregation.MonthlyThreshold = rc.monthlyThreshold
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = rc.logLevel
	}
}
