package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var maxAPR = decimal.NewFromInt(100)

const (
	// MaxProjectionMonths bounds forward periods × months per period.
	MaxProjectionMonths = 1200
	// MaxHistoryPeriods bounds trailing context periods.
	MaxHistoryPeriods = 120
)

// Validate checks the profile before any computation. It returns a
// *ValidationError for the first offending field.
func (p *FinancialProfile) Validate() error {
	if err := validateCategories("recurring_income", p.RecurringIncome); err != nil {
		return err
	}
	if err := validateCategories("recurring_expenses", p.RecurringExpenses); err != nil {
		return err
	}
	if err := validateCategories("recurring_savings_contributions", p.RecurringSavingsContributions); err != nil {
		return err
	}
	if err := validateCategories("recurring_investment_contributions", p.RecurringInvestmentContributions); err != nil {
		return err
	}

	if p.StartingCash.IsNegative() {
		return invalid("starting_cash", "cannot be negative, got %s", p.StartingCash)
	}
	if p.StartingInvestments.IsNegative() {
		return invalid("starting_investments", "cannot be negative, got %s", p.StartingInvestments)
	}
	if p.RiskTolerance != "" && !p.RiskTolerance.Valid() {
		return invalid("risk_tolerance", "must be low, medium or high, got %q", p.RiskTolerance)
	}
	if p.Granularity != "" && !p.Granularity.Valid() {
		return invalid("granularity", "must be monthly, quarterly or yearly, got %q", p.Granularity)
	}

	seen := make(map[string]bool, len(p.DebtAccounts))
	for i, d := range p.DebtAccounts {
		field := fmt.Sprintf("debt_accounts[%d]", i)
		if strings.TrimSpace(d.ID) == "" {
			return invalid(field+".id", "is required")
		}
		if seen[d.ID] {
			return invalid(field+".id", "duplicate account id %q", d.ID)
		}
		seen[d.ID] = true
		if d.PrincipalBalance.IsNegative() {
			return invalid(field+".principal_balance", "cannot be negative, got %s", d.PrincipalBalance)
		}
		if d.AnnualPercentageRate.IsNegative() || d.AnnualPercentageRate.GreaterThan(maxAPR) {
			return invalid(field+".annual_percentage_rate", "must be between 0 and 100, got %s", d.AnnualPercentageRate)
		}
		if d.MonthlyPayment.IsNegative() {
			return invalid(field+".monthly_payment", "cannot be negative, got %s", d.MonthlyPayment)
		}
	}

	for i, e := range p.LumpSums {
		field := fmt.Sprintf("lump_sums[%d]", i)
		if !e.Amount.IsPositive() {
			return invalid(field+".amount", "must be positive, got %s", e.Amount)
		}
		if e.EffectiveDate.IsZero() {
			return invalid(field+".effective_date", "is required")
		}
		if e.Direction != Inflow && e.Direction != Outflow {
			return invalid(field+".direction", "must be inflow or outflow, got %q", e.Direction)
		}
		if i > 0 && e.EffectiveDate.Before(p.LumpSums[i-1].EffectiveDate) {
			return invalid(field+".effective_date", "lump sums must be in chronological order")
		}
	}

	for i, g := range p.Goals {
		field := fmt.Sprintf("goals[%d]", i)
		if !g.TargetAmount.IsPositive() {
			return invalid(field+".target_amount", "must be positive, got %s", g.TargetAmount)
		}
		if g.TargetDate.IsZero() {
			return invalid(field+".target_date", "is required")
		}
		if !g.Priority.Valid() {
			return invalid(field+".priority", "must be high, medium or low, got %q", g.Priority)
		}
		if i > 0 && g.TargetDate.Before(p.Goals[i-1].TargetDate) {
			return invalid(field+".target_date", "goals must be in chronological order")
		}
	}
	return nil
}

func validateCategories(field string, m map[string]decimal.Decimal) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // report the same field on every run
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return invalid(field, "category name cannot be empty")
		}
		if m[k].IsNegative() {
			return invalid(fmt.Sprintf("%s[%s]", field, k), "cannot be negative, got %s", m[k])
		}
	}
	return nil
}

// Validate checks the requested range. Granularity falls back to the profile's.
func (s ProjectionSettings) Validate(profileGranularity Granularity) error {
	if s.Granularity != "" && !s.Granularity.Valid() {
		return invalid("projection.granularity", "must be monthly, quarterly or yearly, got %q", s.Granularity)
	}
	if s.ForwardPeriods < 1 {
		return invalid("projection.forward_periods", "must be at least 1, got %d", s.ForwardPeriods)
	}
	months := s.ForwardPeriods * s.EffectiveGranularity(profileGranularity).MonthsPerPeriod()
	if months > MaxProjectionMonths {
		return invalid("projection.forward_periods", "horizon of %d months exceeds the %d month limit", months, MaxProjectionMonths)
	}
	if s.HistoryPeriods < 0 || s.HistoryPeriods > MaxHistoryPeriods {
		return invalid("projection.history_periods", "must be between 0 and %d, got %d", MaxHistoryPeriods, s.HistoryPeriods)
	}
	return nil
}
