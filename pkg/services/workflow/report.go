package workflow

import (
	"fmt"
	"time"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
)

// BuildReport summarises a run: one section for the run itself, one per source and
// one per comparison table.
func BuildReport(result *Result) *domain.Report {
	report := &domain.Report{
		Title:  "Timesheet reconciliation",
		RunID:  result.Run.ID,
		Period: coveredPeriod(result.Sources),
	}

	runSection := domain.ReportSection{
		Title: "Run",
		Summary: map[string]interface{}{
			"Run ID":         result.Run.ID,
			"Status":         string(result.Run.Status),
			"Tables written": len(result.Tables),
			"Field warnings": result.WarningCount(),
		},
	}
	for _, p := range result.Run.Inputs {
		runSection.Details = append(runSection.Details, domain.ReportDetail{
			Name:        string(p.Name),
			Value:       p.Path,
			Description: fmt.Sprintf("schema %s", p.SchemaID()),
		})
	}
	if result.Run.Error != nil {
		runSection.Summary["Error"] = *result.Run.Error
	}
	report.Sections = append(report.Sections, runSection)

	for _, s := range result.Sources {
		report.Sections = append(report.Sections, sourceSection(s))
	}
	for _, c := range result.Comparisons {
		report.Sections = append(report.Sections, comparisonSection(c))
	}
	return report
}

func sourceSection(s SourceResult) domain.ReportSection {
	section := domain.ReportSection{
		Title: string(s.Profile.Name),
		Summary: map[string]interface{}{
			"Records":                     s.Records,
			"Total hours":                 s.Hours,
			"Field warnings":              len(s.Warnings),
			"Daily rows":                  len(s.Daily.Rows),
			"Daily rows to investigate":   s.Daily.InvestigateCount(),
			"Monthly rows":                len(s.Monthly.Rows),
			"Monthly rows to investigate": s.Monthly.InvestigateCount(),
		},
	}

	for _, d := range s.Daily.Rows {
		if !d.Investigate {
			continue
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%s %s", d.Date.Format(domain.DateLayout), d.Employee),
			Value:       d.Hours,
			Unit:        "h",
			Description: fmt.Sprintf("above daily threshold of %g h", s.Daily.Threshold),
		})
	}
	for _, m := range s.Monthly.Rows {
		if !m.Investigate {
			continue
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%s %s", m.Period, m.Employee),
			Value:       m.Hours,
			Unit:        "h",
			Description: fmt.Sprintf("above %g h for %d working days", m.MaxWorkingHours, m.WorkingDays),
		})
	}
	return section
}

func comparisonSection(c domain.ComparisonTable) domain.ReportSection {
	counts := c.CountBy()
	section := domain.ReportSection{
		Title:   fmt.Sprintf("Comparison (%s): %s vs %s", c.Granularity, c.SourceA, c.SourceB),
		Summary: map[string]interface{}{"Discrepancies": len(c.Rows)},
	}
	for _, class := range []domain.Classification{
		domain.HigherInSourceA,
		domain.HigherInSourceB,
		domain.MissingInOtherSource,
	} {
		section.Summary[string(class)] = counts[class]
	}

	for _, r := range c.Rows {
		detail := domain.ReportDetail{
			Name: fmt.Sprintf("%s %s", r.Key.Period, r.Key.Employee),
			Unit: "h",
		}
		switch {
		case r.Delta != nil:
			detail.Value = *r.Delta
			detail.Description = string(r.Classification)
		case r.HoursA != nil:
			detail.Value = *r.HoursA
			detail.Description = fmt.Sprintf("only in %s", c.SourceA)
		case r.HoursB != nil:
			detail.Value = *r.HoursB
			detail.Description = fmt.Sprintf("only in %s", c.SourceB)
		}
		section.Details = append(section.Details, detail)
	}
	return section
}

// coveredPeriod spans the earliest to the latest day seen in any daily table.
func coveredPeriod(sources []SourceResult) domain.TimePeriod {
	var start, end time.Time
	for _, s := range sources {
		for _, d := range s.Daily.Rows {
			if start.IsZero() || d.Date.Before(start) {
				start = d.Date
			}
			if end.IsZero() || d.Date.After(end) {
				end = d.Date
			}
		}
	}
	if start.IsZero() {
		return domain.TimePeriod{}
	}
	return domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}
