package domain

import (
	"time"

	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// RiskTolerance selects the return/variance profile for investment growth
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Valid reports whether r is one of the known tiers.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// OrDefault returns r, or medium when unset.
func (r RiskTolerance) OrDefault() RiskTolerance {
	if r == "" {
		return RiskMedium
	}
	return r
}

// Granularity is the period size used for aggregation and display.
type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return true
	}
	return false
}

// OrDefault returns g, or monthly when unset.
func (g Granularity) OrDefault() Granularity {
	if g == "" {
		return GranularityMonthly
	}
	return g
}

// MonthsPerPeriod returns 1, 3 or 12.
func (g Granularity) MonthsPerPeriod() int {
	switch g {
	case GranularityQuarterly:
		return 3
	case GranularityYearly:
		return 12
	default:
		return 1
	}
}

// Direction of a lump sum cash event
type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

// DebtAccount is a single amortizing liability. The account is never mutated by
// a projection; every period owns its own remaining balance.
type DebtAccount struct {
	ID                   string          `yaml:"id" json:"id"`
	Name                 string          `yaml:"name,omitempty" json:"name,omitempty"`
	PrincipalBalance     decimal.Decimal `yaml:"principal_balance" json:"principal_balance"`
	AnnualPercentageRate decimal.Decimal `yaml:"annual_percentage_rate" json:"annual_percentage_rate"` // 19.0 means 19%
	MonthlyPayment       decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment"`
}

// Label returns the display name, falling back to the ID.
func (d DebtAccount) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// LumpSumEvent is a one-shot dated cash movement.
type LumpSumEvent struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	EffectiveDate time.Time       `yaml:"effective_date" json:"effective_date"`
	Direction     Direction       `yaml:"direction" json:"direction"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	Category      string          `yaml:"category,omitempty" json:"category,omitempty"`
}

// SignedAmount is positive for inflows and negative for outflows.
func (e LumpSumEvent) SignedAmount() decimal.Decimal {
	if e.Direction == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// GoalPriority orders goals that share a target date
type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

// Rank returns 0 for high, 1 for medium (and unset), 2 for low.
func (p GoalPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Valid reports whether p is unset or a known priority.
func (p GoalPriority) Valid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Goal is a dated savings target. Goals are read-only inputs.
type Goal struct {
	Name         string          `yaml:"name,omitempty" json:"name,omitempty"`
	TargetAmount decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	TargetDate   time.Time       `yaml:"target_date" json:"target_date"`
	Category     string          `yaml:"category,omitempty" json:"category,omitempty"`
	Priority     GoalPriority    `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// Label returns the goal name, falling back to its category.
func (g Goal) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Category
}

// FinancialProfile is the immutable input of one projection run. All recurring
// figures are monthly amounts in a single currency.
type FinancialProfile struct {
	RecurringIncome                  map[string]decimal.Decimal `yaml:"recurring_income,omitempty" json:"recurring_income,omitempty"`
	RecurringExpenses                map[string]decimal.Decimal `yaml:"recurring_expenses,omitempty" json:"recurring_expenses,omitempty"`
	RecurringSavingsContributions    map[string]decimal.Decimal `yaml:"recurring_savings_contributions,omitempty" json:"recurring_savings_contributions,omitempty"`
	RecurringInvestmentContributions map[string]decimal.Decimal `yaml:"recurring_investment_contributions,omitempty" json:"recurring_investment_contributions,omitempty"`

	DebtAccounts []DebtAccount  `yaml:"debt_accounts,omitempty" json:"debt_accounts,omitempty"`
	LumpSums     []LumpSumEvent `yaml:"lump_sums,omitempty" json:"lump_sums,omitempty"`
	Goals        []Goal         `yaml:"goals,omitempty" json:"goals,omitempty"`

	RiskTolerance RiskTolerance `yaml:"risk_tolerance,omitempty" json:"risk_tolerance,omitempty"`
	Granularity   Granularity   `yaml:"granularity,omitempty" json:"granularity,omitempty"`

	// Opening account state
	StartingCash        decimal.Decimal `yaml:"starting_cash" json:"starting_cash"`
	StartingInvestments decimal.Decimal `yaml:"starting_investments" json:"starting_investments"`
}

// MonthlyIncome sums recurring income.
func (p *FinancialProfile) MonthlyIncome() decimal.Decimal {
	return money.SumMap(p.RecurringIncome)
}

// MonthlyExpenses sums recurring expenses.
func (p *FinancialProfile) MonthlyExpenses() decimal.Decimal {
	return money.SumMap(p.RecurringExpenses)
}

// MonthlySavings sums recurring savings contributions.
func (p *FinancialProfile) MonthlySavings() decimal.Decimal {
	return money.SumMap(p.RecurringSavingsContributions)
}

// MonthlyInvestments sums recurring investment contributions.
func (p *FinancialProfile) MonthlyInvestments() decimal.Decimal {
	return money.SumMap(p.RecurringInvestmentContributions)
}

// TotalDebtBalance sums the principal of every debt account.
func (p *FinancialProfile) TotalDebtBalance() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.DebtAccounts {
		total = total.Add(d.PrincipalBalance)
	}
	return total
}

// TotalMinimumPayments sums the scheduled monthly payment of every debt account.
func (p *FinancialProfile) TotalMinimumPayments() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.DebtAccounts {
		total = total.Add(d.MonthlyPayment)
	}
	return total
}

// Clone returns a deep copy that shares no maps or slices with p.
func (p *FinancialProfile) Clone() *FinancialProfile {
	c := *p
	c.RecurringIncome = cloneMap(p.RecurringIncome)
	c.RecurringExpenses = cloneMap(p.RecurringExpenses)
	c.RecurringSavingsContributions = cloneMap(p.RecurringSavingsContributions)
	c.RecurringInvestmentContributions = cloneMap(p.RecurringInvestmentContributions)
	c.DebtAccounts = append([]DebtAccount(nil), p.DebtAccounts...)
	c.LumpSums = append([]LumpSumEvent(nil), p.LumpSums...)
	c.Goals = append([]Goal(nil), p.Goals...)
	return &c
}

func cloneMap(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
