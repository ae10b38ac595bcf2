// Package export writes run reports as markdown documents.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	md "github.com/nao1215/markdown"
)

// FileName is the markdown summary written next to the output tables.
const FileName = "reconciliation.md"

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	doc := md.NewMarkdown(c.writer).
		H1(report.Title).
		PlainTextf("Run %s", md.Code(report.RunID)).
		LF()

	if report.Period.Duration > 0 {
		doc.PlainTextf("Period: %s to %s (%d days)",
			report.Period.Start.Format(domain.DateLayout),
			report.Period.End.Format(domain.DateLayout),
			report.Period.Duration).
			LF()
	}

	for _, section := range report.Sections {
		doc.H2(section.Title).BulletList(summaryItems(section.Summary)...)

		if len(section.Details) == 0 {
			continue
		}
		rows := make([][]string, 0, len(section.Details))
		for _, d := range section.Details {
			rows = append(rows, []string{d.Name, fmt.Sprint(d.Value), d.Unit, d.Description})
		}
		doc.Table(md.TableSet{
			Header: []string{"Name", "Value", "Unit", "Description"},
			Rows:   rows,
		})
	}

	return doc.Build()
}

// WriteFile renders report into dir/reconciliation.md and returns the path written.
func WriteFile(dir string, report *domain.Report) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", recerrors.NewOutputWriteError(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", recerrors.NewOutputWriteError(path, err)
	}
	if err := NewReporter(f).Handle(report); err != nil {
		_ = f.Close()
		return "", recerrors.NewOutputWriteError(path, err)
	}
	if err := f.Close(); err != nil {
		return "", recerrors.NewOutputWriteError(path, err)
	}
	return path, nil
}

func summaryItems(summary map[string]interface{}) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, fmt.Sprintf("%s: %v", k, summary[k]))
	}
	return items
}
