package commands

import (
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/services/aggregate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type WorkdaysCmd struct {
	threshold float64
}

func NewWorkdaysCmd() *cobra.Command {
	wc := &WorkdaysCmd{}
	cmd := &cobra.Command{
		Use:   "workdays YYYY-MM [YYYY-MM...]",
		Short: "Print working days and the monthly hour ceiling",
		Args:  cobra.MinimumNArgs(1),
		RunE:  wc.run,
	}

	cmd.Flags().Float64Var(&wc.threshold, "threshold", aggregate.DefaultSettings().MonthlyThreshold, "Hours per working day")

	return cmd
}

func (wc *WorkdaysCmd) run(cmd *cobra.Command, args []string) error {
	if wc.threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %g", wc.threshold)
	}

	months := make([]domain.YearMonth, 0, len(args))
	for _, arg := range args {
		ym, err := domain.ParseYearMonth(arg)
		if err != nil {
			return err
		}
		months = append(months, ym)
	}

	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("Month", "Working days", "Max hours")
	for _, ym := range months {
		if err := table.Append(
			ym.String(),
			fmt.Sprint(aggregate.WorkingDays(ym)),
			fmt.Sprintf("%g", aggregate.MaxWorkingHours(ym, wc.threshold)),
		); err != nil {
			return err
		}
	}
	return table.Render()
}
