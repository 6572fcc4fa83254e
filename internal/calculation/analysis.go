package calculation

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeTotals aggregates the recurring profile figures once per run.
func ComputeTotals(p *domain.FinancialProfile) domain.Totals {
	t := domain.Totals{
		MonthlyIncome:        p.MonthlyIncome(),
		MonthlyExpenses:      p.MonthlyExpenses(),
		MonthlySavings:       p.MonthlySavings(),
		MonthlyInvestments:   p.MonthlyInvestments(),
		TotalDebtBalance:     p.TotalDebtBalance(),
		TotalMinimumPayments: p.TotalMinimumPayments(),
	}
	t.MonthlySurplus = t.MonthlyIncome.
		Sub(t.MonthlyExpenses).
		Sub(t.MonthlySavings).
		Sub(t.MonthlyInvestments).
		Sub(t.TotalMinimumPayments)
	return t
}

// Summarize condenses the forward snapshots of a run.
func Summarize(p *domain.FinancialProfile, forward []domain.ProjectionSnapshot) domain.Summary {
	s := domain.Summary{
		OpeningNetWorth:   p.StartingCash.Add(p.StartingInvestments).Sub(p.TotalDebtBalance()),
		TotalInterestPaid: decimal.Zero,
		TotalLiquidated:   decimal.Zero,
	}
	s.FinalNetWorth = s.OpeningNetWorth

	hadDebt := p.TotalDebtBalance().IsPositive()
	for i := range forward {
		snap := &forward[i]
		s.TotalInterestPaid = s.TotalInterestPaid.Add(snap.InterestCharged)
		s.TotalLiquidated = s.TotalLiquidated.Add(snap.Liquidated)
		if hadDebt && s.DebtFreePeriod == nil && snap.TotalDebtBalance.IsZero() {
			idx := snap.PeriodIndex
			s.DebtFreePeriod = &idx
		}
		if s.FirstInsolventPeriod == nil && snap.Insolvent {
			idx := snap.PeriodIndex
			s.FirstInsolventPeriod = &idx
		}
	}
	if n := len(forward); n > 0 {
		s.FinalNetWorth = forward[n-1].NetWorth
	}
	s.NetWorthChange = s.FinalNetWorth.Sub(s.OpeningNetWorth)

	for _, acct := range p.DebtAccounts {
		s.Payoffs = append(s.Payoffs, EstimatePayoff(acct))
	}
	return s
}
