package calculation

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// PessimisticMonthlyFloor bounds the pessimistic monthly return from below.
var PessimisticMonthlyFloor = decimal.NewFromFloat(-0.08)

// ReturnProfile is an annual return assumption with its variance, both in percent.
type ReturnProfile struct {
	BaseAnnualReturnPercent decimal.Decimal
	AnnualVariancePercent   decimal.Decimal
}

var returnProfiles = map[domain.RiskTolerance]ReturnProfile{
	domain.RiskLow:    {BaseAnnualReturnPercent: decimal.NewFromInt(3), AnnualVariancePercent: decimal.NewFromInt(1)},
	domain.RiskMedium: {BaseAnnualReturnPercent: decimal.NewFromInt(6), AnnualVariancePercent: decimal.NewFromFloat(2.5)},
	domain.RiskHigh:   {BaseAnnualReturnPercent: decimal.NewFromInt(9), AnnualVariancePercent: decimal.NewFromInt(4)},
}

// ReturnProfileFor returns the fixed tier for a risk tolerance (medium when unset).
func ReturnProfileFor(risk domain.RiskTolerance) ReturnProfile {
	return returnProfiles[risk.OrDefault()]
}

// ScenarioRates are the monthly growth rates of the three tracks.
type ScenarioRates struct {
	Expected    decimal.Decimal
	Pessimistic decimal.Decimal
	Optimistic  decimal.Decimal
}

// MonthlyRates converts the profile to per-track monthly rates.
func (rp ReturnProfile) MonthlyRates() ScenarioRates {
	base := money.MonthlyRate(rp.BaseAnnualReturnPercent)
	variance := money.MonthlyRate(rp.AnnualVariancePercent)
	return ScenarioRates{
		Expected:    base,
		Pessimistic: money.Max(base.Sub(variance), PessimisticMonthlyFloor),
		Optimistic:  base.Add(variance),
	}
}

// AdvanceInvestment adds the contribution and then applies one month of growth.
// The contribution earns the full month's return; no intra-month timing is modelled.
func AdvanceInvestment(balance, contribution, monthlyRate decimal.Decimal) decimal.Decimal {
	grown := balance.Add(contribution).Mul(decimalOne.Add(monthlyRate))
	return money.NonNegative(grown)
}

// AdvanceScenarios advances every track with the same contribution.
func AdvanceScenarios(b domain.InvestmentBalances, contribution decimal.Decimal, rates ScenarioRates) domain.InvestmentBalances {
	return domain.InvestmentBalances{
		Expected:    AdvanceInvestment(b.Expected, contribution, rates.Expected),
		Pessimistic: AdvanceInvestment(b.Pessimistic, contribution, rates.Pessimistic),
		Optimistic:  AdvanceInvestment(b.Optimistic, contribution, rates.Optimistic),
	}
}
