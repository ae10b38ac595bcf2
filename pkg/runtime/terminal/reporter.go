package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/olekukonko/tablewriter"
)

var (
	headerTemplate = template.Must(template.New("header").Parse(`
{{.Title}}{{if .Period.Duration}} ({{.Period.Duration}} days){{end}}
Run: {{.RunID}}
{{- if .Period.Duration}}
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
{{- end}}
`))

	sectionTemplate = template.Must(template.New("section").Parse(`
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}`))
)

// Reporter outputs reports to the console: a text summary per section followed by a
// table of its details.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if err := headerTemplate.Execute(c.writer, report); err != nil {
		return fmt.Errorf("failed to render report header: %w", err)
	}

	for _, section := range report.Sections {
		if err := sectionTemplate.Execute(c.writer, section); err != nil {
			return fmt.Errorf("failed to render section %q: %w", section.Title, err)
		}
		if len(section.Details) == 0 {
			continue
		}
		if err := c.renderDetails(section.Details); err != nil {
			return fmt.Errorf("failed to render details of %q: %w", section.Title, err)
		}
	}
	return nil
}

func (c *Reporter) renderDetails(details []domain.ReportDetail) error {
	table := tablewriter.NewTable(c.writer)
	table.Header("Name", "Value", "Unit", "Description")

	for _, d := range details {
		if err := table.Append(d.Name, fmt.Sprint(d.Value), d.Unit, d.Description); err != nil {
			return err
		}
	}
	return table.Render()
}
