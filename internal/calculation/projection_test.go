package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSurplusAccumulatesInCash(t *testing.T) {
	ce := NewCalculationEngine()
	result, err := ce.Project(context.Background(), createTestProfile(), monthlySettings(12))
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 12)

	last := result.Snapshots[11]
	assert.Equal(t, "2025-12", last.PeriodLabel)
	assert.True(t, last.CashBalance.Equal(dec(24000)), "cash %s", last.CashBalance)
	assert.True(t, last.NetWorth.Equal(dec(24000)), "net worth %s", last.NetWorth)
	assert.Empty(t, result.Warnings)

	assertMoney(t, dec(2000), result.Totals.MonthlySurplus)
	assertMoney(t, dec(24000), result.Summary.NetWorthChange)
	assert.Nil(t, result.Summary.FirstInsolventPeriod)
	assert.Nil(t, result.Summary.DebtFreePeriod)
}

func TestProjectIsDeterministic(t *testing.T) {
	p := createTestProfile()
	p.RecurringInvestmentContributions = map[string]decimal.Decimal{"index": dec(400)}
	p.StartingInvestments = dec(15000)
	p.DebtAccounts = []domain.DebtAccount{{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(120)}}
	p.LumpSums = []domain.LumpSumEvent{{Amount: dec(3000), EffectiveDate: month(4), Direction: domain.Outflow}}
	p.Goals = []domain.Goal{{Name: "car", TargetAmount: dec(20000), TargetDate: month(30)}}

	ce := NewCalculationEngine()
	a, err := ce.Project(context.Background(), p, monthlySettings(36))
	require.NoError(t, err)
	b, err := ce.Project(context.Background(), p, monthlySettings(36))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestProjectDoesNotModifyProfile(t *testing.T) {
	p := createTestProfile()
	p.DebtAccounts = []domain.DebtAccount{{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(120)}}
	before := p.Clone()

	_, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(24))
	require.NoError(t, err)
	assert.Equal(t, before, p)
}

func TestProjectQuarterlyAggregation(t *testing.T) {
	p := &domain.FinancialProfile{
		RecurringIncome:   map[string]decimal.Decimal{"salary": dec(1000)},
		RecurringExpenses: map[string]decimal.Decimal{"food": dec(400)},
		Granularity:       domain.GranularityQuarterly,
	}
	settings := domain.ProjectionSettings{Start: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), ForwardPeriods: 2}

	result, err := NewCalculationEngine().Project(context.Background(), p, settings)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 2)

	assert.Equal(t, testStart, result.Start)
	first := result.Snapshots[0]
	assert.Equal(t, "2025-Q1", first.PeriodLabel)
	assert.Equal(t, 3, first.Months)
	assertMoney(t, dec(3000), first.Income)
	assertMoney(t, dec(1200), first.Expenses)
	assertMoney(t, dec(1800), first.NetCashDelta)
	assertMoney(t, dec(2700), first.IncomeBand.Low)

	second := result.Snapshots[1]
	assert.Equal(t, "2025-Q2", second.PeriodLabel)
	assert.Equal(t, month(3), second.PeriodStart)
	assertMoney(t, dec(3600), second.CashBalance)
}

func TestProjectGranularityOverride(t *testing.T) {
	settings := monthlySettings(2)
	settings.Granularity = domain.GranularityYearly

	result, err := NewCalculationEngine().Project(context.Background(), createTestProfile(), settings)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 2)
	assert.Equal(t, "2026", result.Snapshots[1].PeriodLabel)
	assertMoney(t, dec(48000), result.Snapshots[1].CashBalance)
}

func TestProjectHistoryPeriods(t *testing.T) {
	p := createTestProfile()
	p.StartingCash = dec(1000)
	p.LumpSums = []domain.LumpSumEvent{
		{Amount: dec(999), EffectiveDate: time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC), Direction: domain.Inflow, Description: "refund"},
	}
	settings := monthlySettings(3)
	settings.HistoryPeriods = 2

	result, err := NewCalculationEngine().Project(context.Background(), p, settings)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 5)
	require.Len(t, result.ForwardSnapshots(), 3)

	hist := result.Snapshots[1]
	assert.True(t, hist.Historical)
	assert.Equal(t, -1, hist.PeriodIndex)
	assert.Equal(t, "2024-12", hist.PeriodLabel)
	require.Len(t, hist.Events, 1)
	assertMoney(t, dec(999), hist.LumpSumNet)
	assertMoney(t, dec(1000), hist.CashBalance)
	assertMoney(t, dec(2999), hist.NetCashDelta)
	assertMoney(t, dec(2000), result.Snapshots[0].NetCashDelta)

	// past events never reach the forward balances
	assertMoney(t, dec(7000), result.Snapshots[4].CashBalance)
}

func TestProjectHistoryPaymentsCappedAtBalance(t *testing.T) {
	p := createTestProfile()
	p.DebtAccounts = []domain.DebtAccount{{ID: "loan", PrincipalBalance: dec(50), MonthlyPayment: dec(120)}}
	settings := monthlySettings(1)
	settings.HistoryPeriods = 1

	result, err := NewCalculationEngine().Project(context.Background(), p, settings)
	require.NoError(t, err)

	hist := result.Snapshots[0]
	require.True(t, hist.Historical)
	assertMoney(t, dec(50), hist.DebtPayments)
	assertMoney(t, dec(1950), hist.NetCashDelta)
	assertMoney(t, dec(50), hist.TotalDebtBalance)
}

func TestProjectGoalOutflowInHorizon(t *testing.T) {
	p := createTestProfile()
	p.Goals = []domain.Goal{{Name: "trip", TargetAmount: dec(5000), TargetDate: month(2).AddDate(0, 0, 9)}}

	result, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(4))
	require.NoError(t, err)

	snap := result.Snapshots[2]
	assertMoney(t, dec(5000), snap.GoalOutflow)
	assertMoney(t, dec(8000), snap.Expenses)
	assert.True(t, snap.LumpSumNet.IsZero())
	assertMoney(t, dec(1000), snap.CashBalance)
	require.Len(t, result.GoalFeasibility, 1)
	assert.Equal(t, 2, result.GoalFeasibility[0].MonthsUntilTarget)
}

func TestProjectNonAmortizingWarning(t *testing.T) {
	p := createTestProfile()
	p.DebtAccounts = []domain.DebtAccount{{ID: "card", Name: "Visa", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(40)}}

	result, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(6))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, domain.WarningNonAmortizingDebt, w.Kind)
	assert.Equal(t, "card", w.Subject)
	assert.Equal(t, 0, w.PeriodIndex)
	assert.Contains(t, w.Message, "Visa")

	for _, snap := range result.Snapshots {
		require.Len(t, snap.Debts, 1)
		assert.True(t, snap.Debts[0].NonAmortizing)
		assert.True(t, snap.Debts[0].RemainingBalance.Equal(dec(2500)))
		assert.True(t, snap.HasNonAmortizingDebt())
	}
	require.Len(t, result.Summary.Payoffs, 1)
	assert.False(t, result.Summary.Payoffs[0].Payable)
}

func TestProjectInsolvency(t *testing.T) {
	p := &domain.FinancialProfile{
		RecurringExpenses: map[string]decimal.Decimal{"rent": dec(1000)},
		StartingCash:      dec(500),
	}

	result, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(3))
	require.NoError(t, err)

	first := result.Snapshots[0]
	assert.True(t, first.Insolvent)
	assert.True(t, first.CashBalance.IsZero())
	assertMoney(t, dec(500), first.CashDeficit)
	assertMoney(t, dec(2500), result.Snapshots[2].CashDeficit)
	// the uncovered deficit is reported separately from net worth
	assert.True(t, result.Snapshots[2].NetWorth.IsZero())

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.WarningInsolvency, result.Warnings[0].Kind)
	require.NotNil(t, result.Summary.FirstInsolventPeriod)
	assert.Equal(t, 0, *result.Summary.FirstInsolventPeriod)
}

func TestProjectDebtFreePeriod(t *testing.T) {
	p := createTestProfile()
	p.DebtAccounts = []domain.DebtAccount{{ID: "loan", PrincipalBalance: dec(300), MonthlyPayment: dec(100)}}

	result, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(6))
	require.NoError(t, err)

	require.NotNil(t, result.Summary.DebtFreePeriod)
	assert.Equal(t, 2, *result.Summary.DebtFreePeriod)
	require.Len(t, result.Summary.Payoffs, 1)
	assert.Equal(t, 3, result.Summary.Payoffs[0].Months)
	assertMoney(t, dec(-300), result.Summary.OpeningNetWorth)
	assert.True(t, result.Snapshots[3].DebtPayments.IsZero())
}

func TestInvariant_NetWorthIdentity(t *testing.T) {
	p := createTestProfile()
	p.RecurringExpenses["rent"] = dec(4800)
	p.RecurringInvestmentContributions = map[string]decimal.Decimal{"index": dec(250)}
	p.StartingInvestments = dec(4000)
	p.DebtAccounts = []domain.DebtAccount{
		{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(120)},
		{ID: "car", PrincipalBalance: dec(9000), AnnualPercentageRate: dec(6.5), MonthlyPayment: dec(280)},
	}

	for _, g := range []domain.Granularity{domain.GranularityMonthly, domain.GranularityQuarterly, domain.GranularityYearly} {
		t.Run(string(g), func(t *testing.T) {
			settings := monthlySettings(8)
			settings.Granularity = g
			result, err := NewCalculationEngine().Project(context.Background(), p, settings)
			require.NoError(t, err)

			for _, s := range result.Snapshots {
				want := s.CashBalance.Add(s.InvestmentBalance.Expected).Sub(s.TotalDebtBalance)
				assert.True(t, s.NetWorth.Equal(want), "period %s", s.PeriodLabel)
				assert.False(t, s.CashBalance.IsNegative())
				assert.False(t, s.TotalDebtBalance.IsNegative())
				assert.False(t, s.InvestmentBalance.Pessimistic.IsNegative())
				assert.True(t, s.InvestmentBalance.Pessimistic.LessThanOrEqual(s.InvestmentBalance.Expected), "period %s", s.PeriodLabel)
				assert.True(t, s.InvestmentBalance.Expected.LessThanOrEqual(s.InvestmentBalance.Optimistic), "period %s", s.PeriodLabel)
			}
		})
	}
}

func TestInvariant_DebtBalanceMonotonic(t *testing.T) {
	p := createTestProfile()
	p.StartingInvestments = dec(1500)
	p.RecurringInvestmentContributions = map[string]decimal.Decimal{"index": dec(200)}
	p.DebtAccounts = []domain.DebtAccount{
		{ID: "card", PrincipalBalance: dec(1200), AnnualPercentageRate: dec(19.9), MonthlyPayment: dec(150)},
		{ID: "car", PrincipalBalance: dec(9000), AnnualPercentageRate: dec(6.5), MonthlyPayment: dec(280)},
		{ID: "loan", PrincipalBalance: dec(250), MonthlyPayment: dec(100)},
	}

	for _, g := range []domain.Granularity{domain.GranularityMonthly, domain.GranularityQuarterly} {
		t.Run(string(g), func(t *testing.T) {
			settings := monthlySettings(12)
			settings.Granularity = g
			result, err := NewCalculationEngine().Project(context.Background(), p, settings)
			require.NoError(t, err)

			forward := result.ForwardSnapshots()
			prev := make(map[string]decimal.Decimal)
			for _, d := range p.DebtAccounts {
				prev[d.ID] = d.PrincipalBalance
			}
			for _, s := range forward {
				for _, d := range s.Debts {
					before := prev[d.AccountID]
					if before.IsPositive() {
						assert.True(t, d.RemainingBalance.LessThan(before), "%s in %s", d.AccountID, s.PeriodLabel)
					} else {
						assert.True(t, d.RemainingBalance.IsZero(), "%s in %s", d.AccountID, s.PeriodLabel)
					}
					assert.False(t, d.RemainingBalance.IsNegative())
					prev[d.AccountID] = d.RemainingBalance
				}
				assert.True(t, s.InvestmentBalance.Pessimistic.LessThanOrEqual(s.InvestmentBalance.Expected), "period %s", s.PeriodLabel)
				assert.True(t, s.InvestmentBalance.Expected.LessThanOrEqual(s.InvestmentBalance.Optimistic), "period %s", s.PeriodLabel)
			}
			assert.True(t, prev["loan"].IsZero())
			assert.True(t, prev["card"].IsZero())
		})
	}
}

func TestProjectPayoffMonthPreservesNetWorth(t *testing.T) {
	p := &domain.FinancialProfile{
		DebtAccounts: []domain.DebtAccount{{ID: "loan", PrincipalBalance: dec(50), MonthlyPayment: dec(120)}},
		StartingCash: dec(1000),
	}
	result, err := NewCalculationEngine().Project(context.Background(), p, monthlySettings(3))
	require.NoError(t, err)

	assertMoney(t, dec(950), result.Summary.OpeningNetWorth)
	assertMoney(t, dec(50), result.Snapshots[0].DebtPayments)
	for _, s := range result.Snapshots {
		assertMoney(t, dec(950), s.NetWorth, "period %s", s.PeriodLabel)
	}
	assertMoney(t, dec(0), result.Summary.NetWorthChange)
}

func TestProjectValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *domain.FinancialProfile, s *domain.ProjectionSettings)
		wantField string
	}{
		{
			name: "apr above 100",
			mutate: func(p *domain.FinancialProfile, s *domain.ProjectionSettings) {
				p.DebtAccounts = []domain.DebtAccount{{ID: "card", PrincipalBalance: dec(100), AnnualPercentageRate: dec(150), MonthlyPayment: dec(10)}}
			},
			wantField: "debt_accounts[0].annual_percentage_rate",
		},
		{
			name: "negative expense",
			mutate: func(p *domain.FinancialProfile, s *domain.ProjectionSettings) {
				p.RecurringExpenses["rent"] = dec(-1)
			},
			wantField: "recurring_expenses[rent]",
		},
		{
			name: "zero periods",
			mutate: func(p *domain.FinancialProfile, s *domain.ProjectionSettings) {
				s.ForwardPeriods = 0
			},
			wantField: "projection.forward_periods",
		},
		{
			name: "horizon too long",
			mutate: func(p *domain.FinancialProfile, s *domain.ProjectionSettings) {
				s.ForwardPeriods = 101
				s.Granularity = domain.GranularityYearly
			},
			wantField: "projection.forward_periods",
		},
		{
			name: "unknown risk",
			mutate: func(p *domain.FinancialProfile, s *domain.ProjectionSettings) {
				p.RiskTolerance = "reckless"
			},
			wantField: "risk_tolerance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := createTestProfile()
			s := monthlySettings(12)
			tt.mutate(p, &s)

			result, err := NewCalculationEngine().Project(context.Background(), p, s)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrInvalidProfile))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestProjectNilProfile(t *testing.T) {
	_, err := NewCalculationEngine().Project(context.Background(), nil, monthlySettings(1))
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestProjectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewCalculationEngine().Project(ctx, createTestProfile(), monthlySettings(12))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestProjectDefaultsStartToCurrentMonth(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetNowFunc(func() time.Time { return time.Date(2030, time.June, 17, 9, 30, 0, 0, time.UTC) })

	result, err := engine.Project(context.Background(), createTestProfile(), domain.ProjectionSettings{ForwardPeriods: 1})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC), result.Start)
	assert.Equal(t, "2030-06", result.Snapshots[0].PeriodLabel)

	// the clock belongs to the engine, not the package
	other, err := NewCalculationEngine().Project(context.Background(), createTestProfile(), domain.ProjectionSettings{ForwardPeriods: 1})
	require.NoError(t, err)
	assert.NotEqual(t, result.Start, other.Start)
}
