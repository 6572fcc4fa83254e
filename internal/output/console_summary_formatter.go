package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// ConsoleSummaryFormatter provides a concise console style summary via the formatter interface.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string { return "console-lite" }

func (c ConsoleSummaryFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CASH FLOW PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Monthly surplus: %s\n", FormatCurrency(result.Totals.MonthlySurplus))
	for _, s := range result.ForwardSnapshots() {
		fmt.Fprintf(&buf, "%s: Cash=%s Investments=%s Debt=%s NetWorth=%s\n",
			s.PeriodLabel,
			FormatCurrency(s.CashBalance),
			FormatCurrency(s.InvestmentBalance.Expected),
			FormatCurrency(s.TotalDebtBalance),
			FormatCurrency(s.NetWorth),
		)
	}
	a := AnalyzeProjection(result)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Net worth change: %s  Goals on track: %d/%d  Warnings: %d\n",
		FormatCurrency(a.NetWorthChange), a.GoalsOnTrack, a.GoalsOnTrack+a.GoalsAtRisk, len(result.Warnings))
	return buf.Bytes(), nil
}
