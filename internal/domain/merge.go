package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProfileUpdate is a partial profile produced by the data-collection side.
// Nil or empty fields leave the current value untouched.
type ProfileUpdate struct {
	RecurringIncome                  map[string]decimal.Decimal `yaml:"recurring_income,omitempty" json:"recurring_income,omitempty"`
	RecurringExpenses                map[string]decimal.Decimal `yaml:"recurring_expenses,omitempty" json:"recurring_expenses,omitempty"`
	RecurringSavingsContributions    map[string]decimal.Decimal `yaml:"recurring_savings_contributions,omitempty" json:"recurring_savings_contributions,omitempty"`
	RecurringInvestmentContributions map[string]decimal.Decimal `yaml:"recurring_investment_contributions,omitempty" json:"recurring_investment_contributions,omitempty"`

	DebtAccounts []DebtAccount  `yaml:"debt_accounts,omitempty" json:"debt_accounts,omitempty"`
	LumpSums     []LumpSumEvent `yaml:"lump_sums,omitempty" json:"lump_sums,omitempty"`
	Goals        []Goal         `yaml:"goals,omitempty" json:"goals,omitempty"`

	RiskTolerance       *RiskTolerance   `yaml:"risk_tolerance,omitempty" json:"risk_tolerance,omitempty"`
	Granularity         *Granularity     `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	StartingCash        *decimal.Decimal `yaml:"starting_cash,omitempty" json:"starting_cash,omitempty"`
	StartingInvestments *decimal.Decimal `yaml:"starting_investments,omitempty" json:"starting_investments,omitempty"`
}

// Merge returns a new profile with the update applied; p is not modified.
// Category maps merge key-wise, debt accounts merge by ID, lump sums and goals
// are appended and kept in date order.
func (p *FinancialProfile) Merge(u ProfileUpdate) *FinancialProfile {
	out := p.Clone()
	out.RecurringIncome = mergeCategories(out.RecurringIncome, u.RecurringIncome)
	out.RecurringExpenses = mergeCategories(out.RecurringExpenses, u.RecurringExpenses)
	out.RecurringSavingsContributions = mergeCategories(out.RecurringSavingsContributions, u.RecurringSavingsContributions)
	out.RecurringInvestmentContributions = mergeCategories(out.RecurringInvestmentContributions, u.RecurringInvestmentContributions)

	for _, d := range u.DebtAccounts {
		replaced := false
		for i := range out.DebtAccounts {
			if out.DebtAccounts[i].ID == d.ID {
				out.DebtAccounts[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			out.DebtAccounts = append(out.DebtAccounts, d)
		}
	}

	if len(u.LumpSums) > 0 {
		out.LumpSums = append(out.LumpSums, u.LumpSums...)
		sort.SliceStable(out.LumpSums, func(i, j int) bool {
			return out.LumpSums[i].EffectiveDate.Before(out.LumpSums[j].EffectiveDate)
		})
	}
	if len(u.Goals) > 0 {
		out.Goals = append(out.Goals, u.Goals...)
		sort.SliceStable(out.Goals, func(i, j int) bool {
			return out.Goals[i].TargetDate.Before(out.Goals[j].TargetDate)
		})
	}

	if u.RiskTolerance != nil {
		out.RiskTolerance = *u.RiskTolerance
	}
	if u.Granularity != nil {
		out.Granularity = *u.Granularity
	}
	if u.StartingCash != nil {
		out.StartingCash = *u.StartingCash
	}
	if u.StartingInvestments != nil {
		out.StartingInvestments = *u.StartingInvestments
	}
	return out
}

func mergeCategories(dst, src map[string]decimal.Decimal) map[string]decimal.Decimal {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]decimal.Decimal, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
