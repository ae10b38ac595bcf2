package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/hours-atlas/pkg/adapters"
	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/de-tools/hours-atlas/pkg/services/aggregate"
	"github.com/de-tools/hours-atlas/pkg/services/reconcile"
	"github.com/de-tools/hours-atlas/pkg/services/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sink persists the tables of a run.
type Sink interface {
	Begin(ctx context.Context, run *domain.Run) error
	Write(ctx context.Context, table store.Table) error
	Finish(ctx context.Context, run *domain.Run) error
	Close() error
}

// BatchWriter is implemented by sinks that replace all tables of a run at once,
// leaving the previous output untouched when any of them fails.
type BatchWriter interface {
	WriteAll(ctx context.Context, tables []store.Table) error
}

// Reader loads one export file.
type Reader func(ctx context.Context, path string) (*store.RawTable, error)

type RunnerConfig struct {
	// SourceA and SourceB are the left and right side of every comparison.
	SourceA        domain.SourceID
	SourceB        domain.SourceID
	Granularities  []domain.Granularity
	Aggregation    aggregate.Settings
	Reconciliation reconcile.Settings
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		SourceA:        domain.SourceHR,
		SourceB:        domain.SourcePayroll,
		Granularities:  []domain.Granularity{domain.GranularityDaily, domain.GranularityMonthly},
		Aggregation:    aggregate.DefaultSettings(),
		Reconciliation: reconcile.DefaultSettings(),
	}
}

// SourceResult is everything produced for one input file.
type SourceResult struct {
	Profile  domain.SourceProfile
	Records  int
	Hours    float64
	Warnings []*recerrors.FieldParseWarning
	Daily    domain.DailyTable
	Monthly  domain.MonthlyTable
}

type Result struct {
	Run         domain.Run
	Sources     []SourceResult
	Comparisons []domain.ComparisonTable
	Tables      []string
}

// Source returns the result of the given source, if it was processed.
func (r *Result) Source(id domain.SourceID) (SourceResult, bool) {
	for _, s := range r.Sources {
		if s.Profile.Name == id {
			return s, true
		}
	}
	return SourceResult{}, false
}

// WarningCount totals field parse warnings across sources.
func (r *Result) WarningCount() int {
	n := 0
	for _, s := range r.Sources {
		n += len(s.Warnings)
	}
	return n
}

type Runner struct {
	normalizer *schema.Normalizer
	read       Reader
	sink       Sink
	config     RunnerConfig
	now        func() time.Time
	newID      func() string
}

func NewRunner(normalizer *schema.Normalizer, read Reader, sink Sink, config RunnerConfig) *Runner {
	return &Runner{
		normalizer: normalizer,
		read:       read,
		sink:       sink,
		config:     config,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Run reads, normalizes and aggregates every input, builds one comparison table per
// configured granularity and only then writes the tables. The first fatal error marks
// the run failed and stops it; nothing is written when an input fails.
func (r *Runner) Run(ctx context.Context, inputs []domain.SourceProfile) (*Result, error) {
	runID := r.newID()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	result := &Result{
		Run: domain.Run{
			ID:        runID,
			Status:    domain.RunStatusRunning,
			StartedAt: r.now(),
			Inputs:    inputs,
		},
	}

	if err := r.sink.Begin(ctx, &result.Run); err != nil {
		return result, r.fail(ctx, result, err)
	}
	logger.Info().Int("inputs", len(inputs)).Msg("run started")

	if err := r.execute(ctx, inputs, result); err != nil {
		return result, r.fail(ctx, result, err)
	}

	finished := r.now()
	result.Run.Status = domain.RunStatusFinished
	result.Run.FinishedAt = &finished
	if err := r.sink.Finish(ctx, &result.Run); err != nil {
		return result, r.fail(ctx, result, err)
	}

	logger.Info().
		Int("tables", len(result.Tables)).
		Int("warnings", result.WarningCount()).
		Dur("elapsed", finished.Sub(result.Run.StartedAt)).
		Msg("run finished")
	return result, nil
}

func (r *Runner) execute(ctx context.Context, inputs []domain.SourceProfile, result *Result) error {
	for _, id := range []domain.SourceID{r.config.SourceA, r.config.SourceB} {
		if !hasProfile(inputs, id) {
			return fmt.Errorf("no input supplied for source %s", id)
		}
	}

	var tables []store.Table
	for _, p := range inputs {
		sr, err := r.processSource(ctx, p)
		if err != nil {
			return err
		}
		result.Sources = append(result.Sources, sr)
		tables = append(tables,
			adapters.MapDailyTableToStore(sr.Daily),
			adapters.MapMonthlyTableToStore(sr.Monthly))
	}

	a, _ := result.Source(r.config.SourceA)
	b, _ := result.Source(r.config.SourceB)
	for _, g := range r.config.Granularities {
		var comparison domain.ComparisonTable
		switch g {
		case domain.GranularityDaily:
			comparison = reconcile.CompareDaily(ctx, a.Daily, b.Daily, r.config.Reconciliation)
		case domain.GranularityMonthly:
			comparison = reconcile.CompareMonthly(ctx, a.Monthly, b.Monthly, r.config.Reconciliation)
		default:
			return fmt.Errorf("unknown granularity %q", g)
		}
		result.Comparisons = append(result.Comparisons, comparison)
		tables = append(tables, adapters.MapComparisonTableToStore(comparison))
	}

	return r.write(ctx, result, tables)
}

func (r *Runner) processSource(ctx context.Context, p domain.SourceProfile) (SourceResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("source", string(p.Name)).Str("path", p.Path).Logger()
	ctx = logger.WithContext(ctx)

	raw, err := r.read(ctx, p.Path)
	if err != nil {
		return SourceResult{}, err
	}

	canonical, err := r.normalizer.Normalize(ctx, p.SchemaID(), raw)
	if err != nil {
		return SourceResult{}, err
	}
	canonical.Source = p.Name

	sr := SourceResult{
		Profile:  p,
		Records:  len(canonical.Records),
		Hours:    aggregate.TotalHours(canonical.Records),
		Warnings: canonical.Warnings,
		Daily:    aggregate.Daily(ctx, canonical, r.config.Aggregation),
		Monthly:  aggregate.Monthly(ctx, canonical, r.config.Aggregation),
	}

	logger.Info().
		Int("records", sr.Records).
		Int("warnings", len(sr.Warnings)).
		Int("daily_investigate", sr.Daily.InvestigateCount()).
		Int("monthly_investigate", sr.Monthly.InvestigateCount()).
		Msg("source processed")
	return sr, nil
}

// write hands the tables to the sink once every source has been processed. Sinks
// implementing BatchWriter receive them in a single call.
func (r *Runner) write(ctx context.Context, result *Result, tables []store.Table) error {
	if batch, ok := r.sink.(BatchWriter); ok {
		if err := batch.WriteAll(ctx, tables); err != nil {
			return err
		}
		for _, t := range tables {
			result.Tables = append(result.Tables, t.Name)
		}
		return nil
	}

	for _, t := range tables {
		if err := r.sink.Write(ctx, t); err != nil {
			return err
		}
		result.Tables = append(result.Tables, t.Name)
	}
	return nil
}

func (r *Runner) fail(ctx context.Context, result *Result, cause error) error {
	logger := zerolog.Ctx(ctx)

	finished := r.now()
	msg := cause.Error()
	result.Run.Status = domain.RunStatusFailed
	result.Run.FinishedAt = &finished
	result.Run.Error = &msg

	logger.Error().Err(cause).Msg("run failed")
	if err := r.sink.Finish(ctx, &result.Run); err != nil {
		logger.Warn().Err(err).Msg("failed to record run failure")
	}
	return cause
}

func hasProfile(inputs []domain.SourceProfile, id domain.SourceID) bool {
	for _, p := range inputs {
		if p.Name == id {
			return true
		}
	}
	return false
}
