package calculation

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// StepState is carried from one month to the next.
type StepState struct {
	DebtBalances []decimal.Decimal // aligned with profile.DebtAccounts
	Investments  domain.InvestmentBalances
	Cash         decimal.Decimal // signed; negative means uncovered shortfall
}

// MonthResult holds the flows of one simulated month.
type MonthResult struct {
	Income                 decimal.Decimal
	Expenses               decimal.Decimal
	LumpInflow             decimal.Decimal
	LumpOutflow            decimal.Decimal
	GoalOutflow            decimal.Decimal
	DebtPayments           decimal.Decimal
	InterestCharged        decimal.Decimal
	TotalDebtBalance       decimal.Decimal
	SavingsContribution    decimal.Decimal
	InvestmentContribution decimal.Decimal
	NetCashDelta           decimal.Decimal
	Liquidated             decimal.Decimal
	CashDeficit            decimal.Decimal
	Debts                  []domain.DebtEntry
	Events                 []domain.MatchedEvent
	Insolvent              bool
}

// PeriodStepper turns month k-1's state into month k's state.
type PeriodStepper struct {
	profile     *domain.FinancialProfile
	rates       ScenarioRates
	income      decimal.Decimal
	expenses    decimal.Decimal
	savings     decimal.Decimal
	investments decimal.Decimal
}

// NewPeriodStepper precomputes the monthly recurring sums of profile.
func NewPeriodStepper(profile *domain.FinancialProfile, rp ReturnProfile) *PeriodStepper {
	return &PeriodStepper{
		profile:     profile,
		rates:       rp.MonthlyRates(),
		income:      profile.MonthlyIncome(),
		expenses:    profile.MonthlyExpenses(),
		savings:     profile.MonthlySavings(),
		investments: profile.MonthlyInvestments(),
	}
}

// InitialState opens every account at the profile's current figures.
func (ps *PeriodStepper) InitialState() StepState {
	balances := make([]decimal.Decimal, len(ps.profile.DebtAccounts))
	for i, d := range ps.profile.DebtAccounts {
		balances[i] = d.PrincipalBalance
	}
	return StepState{
		DebtBalances: balances,
		Investments:  domain.NewInvestmentBalances(ps.profile.StartingInvestments),
		Cash:         ps.profile.StartingCash,
	}
}

// Step simulates one month. It does not modify state; the same state and month
// always produce the same result.
func (ps *PeriodStepper) Step(state StepState, month Period) (StepState, MonthResult) {
	res := MonthResult{
		Income:                 ps.income,
		Expenses:               ps.expenses,
		SavingsContribution:    ps.savings,
		InvestmentContribution: ps.investments,
		DebtPayments:           decimal.Zero,
		InterestCharged:        decimal.Zero,
		TotalDebtBalance:       decimal.Zero,
		Liquidated:             decimal.Zero,
	}
	next := StepState{DebtBalances: make([]decimal.Decimal, len(state.DebtBalances))}

	// 1. debts
	res.Debts = make([]domain.DebtEntry, len(ps.profile.DebtAccounts))
	for i, acct := range ps.profile.DebtAccounts {
		remaining := state.DebtBalances[i]
		entry := domain.DebtEntry{
			AccountID:       acct.ID,
			Name:            acct.Label(),
			InterestCharged: decimal.Zero,
			PrincipalPaid:   decimal.Zero,
			Payment:         decimal.Zero,
		}
		if remaining.IsPositive() {
			step := AdvanceDebt(acct, remaining)
			entry.InterestCharged = step.InterestCharged
			entry.PrincipalPaid = step.PrincipalPaid
			entry.Payment = step.Payment
			entry.NonAmortizing = step.NonAmortizing
			remaining = step.NewRemainingBalance
			res.DebtPayments = res.DebtPayments.Add(step.Payment)
			res.InterestCharged = res.InterestCharged.Add(step.InterestCharged)
		}
		entry.RemainingBalance = remaining
		entry.PaidOff = !remaining.IsPositive()
		next.DebtBalances[i] = remaining
		res.TotalDebtBalance = res.TotalDebtBalance.Add(remaining)
		res.Debts[i] = entry
	}

	// 2. investment tracks
	next.Investments = AdvanceScenarios(state.Investments, ps.investments, ps.rates)

	// 3. one-off events
	events := ResolveEvents(month, ps.profile.LumpSums, ps.profile.Goals)
	res.LumpInflow = events.Inflow
	res.LumpOutflow = events.Outflow
	res.GoalOutflow = events.GoalOutflow
	res.Events = events.Matched

	// 4. net cash movement excluding the savings deposit
	res.NetCashDelta = ps.income.Add(events.Inflow).
		Sub(ps.expenses).
		Sub(events.Outflow).
		Sub(events.GoalOutflow).
		Sub(res.DebtPayments).
		Sub(ps.savings).
		Sub(ps.investments)

	// 5. savings land in cash
	cash := state.Cash.Add(ps.savings).Add(res.NetCashDelta)

	// 6. cover a negative balance from investments
	if cash.IsNegative() {
		var liquidated decimal.Decimal
		next.Investments, liquidated = next.Investments.Liquidate(cash.Neg())
		res.Liquidated = liquidated
		cash = money.Min(decimal.Zero, cash.Add(liquidated))
	}
	next.Cash = cash
	res.CashDeficit = money.NonNegative(cash.Neg())
	res.Insolvent = cash.IsNegative()
	return next, res
}
