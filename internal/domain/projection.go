package domain

import (
	"time"

	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// ScenarioTag names one investment-growth track.
type ScenarioTag string

const (
	ScenarioExpected    ScenarioTag = "expected"
	ScenarioPessimistic ScenarioTag = "pessimistic"
	ScenarioOptimistic  ScenarioTag = "optimistic"
)

// ScenarioTags lists the tracks in display order.
var ScenarioTags = []ScenarioTag{ScenarioExpected, ScenarioPessimistic, ScenarioOptimistic}

// InvestmentBalances holds the three scenario tracks as one value so that
// liquidation is applied to every track in a single operation.
type InvestmentBalances struct {
	Expected    decimal.Decimal `json:"expected"`
	Pessimistic decimal.Decimal `json:"pessimistic"`
	Optimistic  decimal.Decimal `json:"optimistic"`
}

// NewInvestmentBalances opens all tracks at the same balance.
func NewInvestmentBalances(opening decimal.Decimal) InvestmentBalances {
	return InvestmentBalances{Expected: opening, Pessimistic: opening, Optimistic: opening}
}

// Get returns the balance of one track.
func (b InvestmentBalances) Get(tag ScenarioTag) decimal.Decimal {
	switch tag {
	case ScenarioPessimistic:
		return b.Pessimistic
	case ScenarioOptimistic:
		return b.Optimistic
	default:
		return b.Expected
	}
}

// Liquidate sells up to shortfall from the expected track and removes the same
// amount from the other tracks, clamping each at zero. It returns the new
// balances and the amount actually liquidated.
func (b InvestmentBalances) Liquidate(shortfall decimal.Decimal) (InvestmentBalances, decimal.Decimal) {
	if !shortfall.IsPositive() || !b.Expected.IsPositive() {
		return b, decimal.Zero
	}
	liquidated := shortfall
	if b.Expected.LessThan(liquidated) {
		liquidated = b.Expected
	}
	return InvestmentBalances{
		Expected:    money.NonNegative(b.Expected.Sub(liquidated)),
		Pessimistic: money.NonNegative(b.Pessimistic.Sub(liquidated)),
		Optimistic:  money.NonNegative(b.Optimistic.Sub(liquidated)),
	}, liquidated
}

// DebtEntry is one account's state at the end of a period.
type DebtEntry struct {
	AccountID        string          `json:"account_id"`
	Name             string          `json:"name"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	InterestCharged  decimal.Decimal `json:"interest_charged"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	Payment          decimal.Decimal `json:"payment"`
	// NonAmortizing is set when the payment did not cover the interest charge;
	// the balance is held rather than grown.
	NonAmortizing bool `json:"non_amortizing"`
	PaidOff       bool `json:"paid_off"`
}

// Band is a low/high uncertainty range around a figure.
type Band struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// EventKind distinguishes matched lump sums from scheduled goal outflows.
type EventKind string

const (
	EventLumpSum EventKind = "lump_sum"
	EventGoal    EventKind = "goal"
)

// MatchedEvent is a one-off cash effect that landed in a period.
type MatchedEvent struct {
	Kind        EventKind       `json:"kind"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"` // signed: negative leaves cash
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// ProjectionSnapshot is the financial state at the end of one period.
type ProjectionSnapshot struct {
	PeriodLabel string    `json:"period_label"`
	PeriodIndex int       `json:"period_index"` // negative for trailing history
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"` // exclusive
	Months      int       `json:"months"`
	Historical  bool      `json:"historical,omitempty"`

	// Income includes lump-sum inflows; Expenses includes lump-sum and goal outflows.
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	IncomeBand  Band            `json:"income_band"`
	ExpenseBand Band            `json:"expense_band"`

	SavingsContribution    decimal.Decimal `json:"savings_contribution"`
	InvestmentContribution decimal.Decimal `json:"investment_contribution"`

	DebtPayments     decimal.Decimal `json:"debt_payments"`
	InterestCharged  decimal.Decimal `json:"interest_charged"`
	TotalDebtBalance decimal.Decimal `json:"total_debt_balance"`
	Debts            []DebtEntry     `json:"debts,omitempty"`

	InvestmentBalance InvestmentBalances `json:"investment_balance"`
	Liquidated        decimal.Decimal    `json:"liquidated"`

	// CashBalance is clamped at zero for display; CashDeficit carries the
	// uncovered shortfall when investments could not cover it.
	CashBalance  decimal.Decimal `json:"cash_balance"`
	CashDeficit  decimal.Decimal `json:"cash_deficit"`
	NetCashDelta decimal.Decimal `json:"net_cash_delta"` // history periods report it without applying it
	NetWorth     decimal.Decimal `json:"net_worth"`

	LumpSumNet  decimal.Decimal `json:"lump_sum_net"`
	GoalOutflow decimal.Decimal `json:"goal_outflow"`
	Events      []MatchedEvent  `json:"events,omitempty"`

	Insolvent bool `json:"insolvent"`
}

// HasNonAmortizingDebt reports whether any debt entry is flagged.
func (s *ProjectionSnapshot) HasNonAmortizingDebt() bool {
	for _, d := range s.Debts {
		if d.NonAmortizing {
			return true
		}
	}
	return false
}

// WarningKind classifies a non-fatal condition surfaced with a projection.
type WarningKind string

const (
	WarningNonAmortizingDebt WarningKind = "non_amortizing_debt"
	WarningInsolvency        WarningKind = "insolvency"
)

// Warning is reported to the caller, never returned as an error.
type Warning struct {
	Kind        WarningKind `json:"kind"`
	PeriodIndex int         `json:"period_index"`
	PeriodLabel string      `json:"period_label"`
	Subject     string      `json:"subject,omitempty"`
	Message     string      `json:"message"`
}

// GoalStatus is the feasibility verdict for a goal.
type GoalStatus string

const (
	GoalAchievable GoalStatus = "achievable"
	GoalShortfall  GoalStatus = "shortfall"
	GoalOverdue    GoalStatus = "overdue"
)

// GoalFeasibility is the affordability of one goal.
type GoalFeasibility struct {
	Goal                    Goal            `json:"goal"`
	Status                  GoalStatus      `json:"status"`
	MonthsUntilTarget       int             `json:"months_until_target"`
	MonthlyCashAccumulation decimal.Decimal `json:"monthly_cash_accumulation"`
	ProjectedCashAtTarget   decimal.Decimal `json:"projected_cash_at_target"`
	Shortfall               decimal.Decimal `json:"shortfall"`
	RequiredMonthlySaving   decimal.Decimal `json:"required_monthly_saving"`
}

// Totals are run-level aggregates of the recurring profile figures.
type Totals struct {
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	MonthlySavings       decimal.Decimal `json:"monthly_savings"`
	MonthlyInvestments   decimal.Decimal `json:"monthly_investments"`
	TotalDebtBalance     decimal.Decimal `json:"total_debt_balance"`
	TotalMinimumPayments decimal.Decimal `json:"total_minimum_payments"`
	MonthlySurplus       decimal.Decimal `json:"monthly_surplus"`
}

// PayoffEstimate is how long an account takes to reach zero from its current state.
type PayoffEstimate struct {
	AccountID     string          `json:"account_id"`
	Name          string          `json:"name"`
	Months        int             `json:"months"`
	Payable       bool            `json:"payable"` // false means "never" within the iteration cap
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// Summary condenses a projection for display.
type Summary struct {
	OpeningNetWorth      decimal.Decimal  `json:"opening_net_worth"`
	FinalNetWorth        decimal.Decimal  `json:"final_net_worth"`
	NetWorthChange       decimal.Decimal  `json:"net_worth_change"`
	TotalInterestPaid    decimal.Decimal  `json:"total_interest_paid"`
	TotalLiquidated      decimal.Decimal  `json:"total_liquidated"`
	DebtFreePeriod       *int             `json:"debt_free_period,omitempty"`
	FirstInsolventPeriod *int             `json:"first_insolvent_period,omitempty"`
	Payoffs              []PayoffEstimate `json:"payoffs,omitempty"`
}

// ProjectionResult is everything one run hands to the presentation side.
type ProjectionResult struct {
	Start           time.Time            `json:"start"`
	Granularity     Granularity          `json:"granularity"`
	RiskTolerance   RiskTolerance        `json:"risk_tolerance"`
	ForwardPeriods  int                  `json:"forward_periods"`
	HistoryPeriods  int                  `json:"history_periods"`
	Snapshots       []ProjectionSnapshot `json:"snapshots"`
	GoalFeasibility []GoalFeasibility    `json:"goal_feasibility"`
	Totals          Totals               `json:"totals"`
	Summary         Summary              `json:"summary"`
	Warnings        []Warning            `json:"warnings,omitempty"`
}

// ForwardSnapshots returns the snapshots with a non-negative period index.
func (r *ProjectionResult) ForwardSnapshots() []ProjectionSnapshot {
	for i, s := range r.Snapshots {
		if s.PeriodIndex >= 0 {
			return r.Snapshots[i:]
		}
	}
	return nil
}
