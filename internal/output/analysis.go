package output

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Assessment condenses the headline facts of a projection for report headers.
type Assessment struct {
	FinalNetWorth       decimal.Decimal
	NetWorthChange      decimal.Decimal
	DebtFreeLabel       string // empty when debt remains or there was none
	FirstInsolventLabel string
	GoalsOnTrack        int
	GoalsAtRisk         int
	NonAmortizingDebts  []string
	TotalInterestPaid   decimal.Decimal
	TotalLiquidated     decimal.Decimal
	ScenarioSpread      decimal.Decimal // optimistic minus pessimistic at the horizon
}

// AnalyzeProjection extracts the assessment from a finished run.
// Extracted from the console and HTML formatters for testability.
func AnalyzeProjection(result *domain.ProjectionResult) Assessment {
	s := result.Summary
	a := Assessment{
		FinalNetWorth:     s.FinalNetWorth,
		NetWorthChange:    s.NetWorthChange,
		TotalInterestPaid: s.TotalInterestPaid,
		TotalLiquidated:   s.TotalLiquidated,
		ScenarioSpread:    decimal.Zero,
	}
	if s.DebtFreePeriod != nil {
		a.DebtFreeLabel = periodLabel(result, *s.DebtFreePeriod)
	}
	if s.FirstInsolventPeriod != nil {
		a.FirstInsolventLabel = periodLabel(result, *s.FirstInsolventPeriod)
	}
	for _, g := range result.GoalFeasibility {
		if g.Status == domain.GoalAchievable {
			a.GoalsOnTrack++
		} else {
			a.GoalsAtRisk++
		}
	}
	for _, w := range result.Warnings {
		if w.Kind == domain.WarningNonAmortizingDebt {
			a.NonAmortizingDebts = append(a.NonAmortizingDebts, w.Subject)
		}
	}
	if fwd := result.ForwardSnapshots(); len(fwd) > 0 {
		last := fwd[len(fwd)-1].InvestmentBalance
		a.ScenarioSpread = last.Optimistic.Sub(last.Pessimistic)
	}
	return a
}

func periodLabel(result *domain.ProjectionResult, index int) string {
	for _, s := range result.Snapshots {
		if s.PeriodIndex == index {
			return s.PeriodLabel
		}
	}
	return ""
}
