package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title: "Timesheet reconciliation",
		RunID: "run-1",
		Period: domain.TimePeriod{
			Start:    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
			Duration: 31,
		},
		Sections: []domain.ReportSection{
			{
				Title:   "HRSystem",
				Summary: map[string]interface{}{"Records": 3, "Monthly rows to investigate": 1},
				Details: []domain.ReportDetail{
					{Name: "2024-08 Carol", Value: 180.0, Unit: "h", Description: "above 176 h for 22 working days"},
				},
			},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewReporter(&out).Handle(sampleReport()))

	text := out.String()
	assert.Contains(t, text, "# Timesheet reconciliation")
	assert.Contains(t, text, "`run-1`")
	assert.Contains(t, text, "Period: 2024-08-01 to 2024-08-31 (31 days)")
	assert.Contains(t, text, "## HRSystem")
	assert.Contains(t, text, "- Monthly rows to investigate: 1")
	assert.Contains(t, text, "- Records: 3")
	assert.Contains(t, text, "2024-08 Carol")
	assert.Contains(t, text, "above 176 h for 22 working days")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## HRSystem")
}

func TestSummaryItems_SortedByKey(t *testing.T) {
	items := summaryItems(map[string]interface{}{"b": 2, "a": 1})
	assert.Equal(t, []string{"a: 1", "b: 2"}, items)
}
