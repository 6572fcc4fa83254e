package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// CSVGoalsExporter writes the goal feasibility table.
type CSVGoalsExporter struct{}

func (c CSVGoalsExporter) Name() string { return "goals-csv" }

var goalHeader = []string{"Goal", "Category", "Priority", "TargetDate", "TargetAmount", "MonthsUntilTarget", "MonthlyCashAccumulation", "ProjectedCashAtTarget", "Shortfall", "RequiredMonthlySaving", "Status"}

func (c CSVGoalsExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(goalHeader); err != nil {
		return nil, err
	}
	for _, g := range result.GoalFeasibility {
		row := []string{
			g.Goal.Label(),
			g.Goal.Category,
			string(g.Goal.Priority),
			dateString(g.Goal.TargetDate),
			g.Goal.TargetAmount.StringFixed(2),
			intToString(g.MonthsUntilTarget),
			g.MonthlyCashAccumulation.StringFixed(2),
			g.ProjectedCashAtTarget.StringFixed(2),
			g.Shortfall.StringFixed(2),
			g.RequiredMonthlySaving.StringFixed(2),
			string(g.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
