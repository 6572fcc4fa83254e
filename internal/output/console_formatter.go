package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// ConsoleFormatter renders the detailed text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 120))
	fmt.Fprintln(&buf, "CASH FLOW PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 120))
	fmt.Fprintf(&buf, "Start: %s   Granularity: %s   Periods: %d forward, %d history   Risk: %s\n",
		dateString(result.Start), result.Granularity, result.ForwardPeriods, result.HistoryPeriods, result.RiskTolerance)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	t := result.Totals
	fmt.Fprintln(&buf, "MONTHLY TOTALS")
	fmt.Fprintln(&buf, "==============")
	rows := []struct {
		label string
		value string
	}{
		{"Income:", FormatCurrency(t.MonthlyIncome)},
		{"Expenses:", FormatCurrency(t.MonthlyExpenses)},
		{"Savings contributions:", FormatCurrency(t.MonthlySavings)},
		{"Investment contributions:", FormatCurrency(t.MonthlyInvestments)},
		{"Minimum debt payments:", FormatCurrency(t.TotalMinimumPayments)},
		{"Surplus:", FormatCurrency(t.MonthlySurplus)},
		{"Total debt:", FormatCurrency(t.TotalDebtBalance)},
	}
	for _, r := range rows {
		fmt.Fprintf(&buf, "%-26s%s\n", r.label, r.value)
	}
	fmt.Fprintln(&buf)

	writeSnapshotTable(&buf, result.Snapshots)
	writeDebtDetail(&buf, result.ForwardSnapshots())
	writeGoalDetail(&buf, result.GoalFeasibility)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, "========")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "[%s] %s: %s\n", w.PeriodLabel, w.Kind, w.Message)
		}
		fmt.Fprintln(&buf)
	}

	writeSummary(&buf, result)
	return buf.Bytes(), nil
}

func writeSnapshotTable(buf *bytes.Buffer, snapshots []domain.ProjectionSnapshot) {
	fmt.Fprintln(buf, "PERIOD DETAIL")
	fmt.Fprintln(buf, strings.Repeat("=", 120))
	fmt.Fprintf(buf, "%-9s %14s %14s %12s %14s %14s %14s %14s %14s  %s\n",
		"Period", "Income", "Expenses", "Debt Pmts", "Net Cash", "Cash", "Investments", "Debt", "Net Worth", "Flags")
	fmt.Fprintln(buf, strings.Repeat("-", 120))
	for _, s := range snapshots {
		fmt.Fprintf(buf, "%-9s %14s %14s %12s %14s %14s %14s %14s %14s  %s\n",
			s.PeriodLabel,
			FormatCurrency(s.Income),
			FormatCurrency(s.Expenses),
			FormatCurrency(s.DebtPayments),
			FormatCurrency(s.NetCashDelta),
			FormatCurrency(s.CashBalance),
			FormatCurrency(s.InvestmentBalance.Expected),
			FormatCurrency(s.TotalDebtBalance),
			FormatCurrency(s.NetWorth),
			snapshotFlags(s),
		)
	}
	fmt.Fprintln(buf)
}

func snapshotFlags(s domain.ProjectionSnapshot) string {
	var flags []string
	if s.Historical {
		flags = append(flags, "history")
	}
	if s.Insolvent {
		flags = append(flags, "insolvent (deficit "+FormatCurrency(s.CashDeficit)+")")
	}
	if s.Liquidated.IsPositive() {
		flags = append(flags, "sold "+FormatCurrency(s.Liquidated))
	}
	if s.HasNonAmortizingDebt() {
		flags = append(flags, "non-amortizing")
	}
	if len(s.Events) > 0 {
		flags = append(flags, fmt.Sprintf("%d event(s)", len(s.Events)))
	}
	return strings.Join(flags, ", ")
}

func writeDebtDetail(buf *bytes.Buffer, forward []domain.ProjectionSnapshot) {
	if len(forward) == 0 || len(forward[len(forward)-1].Debts) == 0 {
		return
	}
	last := forward[len(forward)-1]
	fmt.Fprintf(buf, "DEBTS AT END OF %s\n", last.PeriodLabel)
	fmt.Fprintln(buf, "==============================")
	for _, d := range last.Debts {
		status := "paying down"
		switch {
		case d.PaidOff:
			status = "paid off"
		case d.NonAmortizing:
			status = "NOT AMORTIZING"
		}
		fmt.Fprintf(buf, "%-24s remaining %14s  last period interest %12s  (%s)\n",
			d.Name, FormatCurrency(d.RemainingBalance), FormatCurrency(d.InterestCharged), status)
	}
	fmt.Fprintln(buf)
}

func writeGoalDetail(buf *bytes.Buffer, goals []domain.GoalFeasibility) {
	if len(goals) == 0 {
		return
	}
	fmt.Fprintln(buf, "GOALS")
	fmt.Fprintln(buf, "=====")
	for _, g := range goals {
		fmt.Fprintf(buf, "%-24s %s by %s: projected %s, shortfall %s [%s]\n",
			g.Goal.Label(),
			FormatCurrency(g.Goal.TargetAmount),
			dateString(g.Goal.TargetDate),
			FormatCurrency(g.ProjectedCashAtTarget),
			FormatCurrency(g.Shortfall),
			g.Status,
		)
		if g.RequiredMonthlySaving.IsPositive() {
			fmt.Fprintf(buf, "%-24s save an extra %s per month to close the gap\n", "", FormatCurrency(g.RequiredMonthlySaving))
		}
	}
	fmt.Fprintln(buf)
}

func writeSummary(buf *bytes.Buffer, result *domain.ProjectionResult) {
	a := AnalyzeProjection(result)
	fmt.Fprintln(buf, "SUMMARY")
	fmt.Fprintln(buf, "=======")
	fmt.Fprintf(buf, "Final net worth:   %s (change %s)\n", FormatCurrency(a.FinalNetWorth), FormatCurrency(a.NetWorthChange))
	fmt.Fprintf(buf, "Interest paid:     %s\n", FormatCurrency(a.TotalInterestPaid))
	if a.TotalLiquidated.IsPositive() {
		fmt.Fprintf(buf, "Investments sold:  %s\n", FormatCurrency(a.TotalLiquidated))
	}
	if a.DebtFreeLabel != "" {
		fmt.Fprintf(buf, "Debt free in:      %s\n", a.DebtFreeLabel)
	}
	if a.FirstInsolventLabel != "" {
		fmt.Fprintf(buf, "First shortfall:   %s\n", a.FirstInsolventLabel)
	}
	fmt.Fprintf(buf, "Goals on track:    %d of %d\n", a.GoalsOnTrack, a.GoalsOnTrack+a.GoalsAtRisk)
	for _, p := range result.Summary.Payoffs {
		if p.Payable {
			fmt.Fprintf(buf, "Payoff %-18s %d months, %s interest\n", p.Name+":", p.Months, FormatCurrency(p.TotalInterest))
		} else {
			fmt.Fprintf(buf, "Payoff %-18s never at the current payment\n", p.Name+":")
		}
	}
}
