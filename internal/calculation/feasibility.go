package calculation

import (
	"sort"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/dateutil"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// MonthlyCashAccumulation is the recurring savings deposit plus the last
// forward period's positive net cash delta, per month.
func MonthlyCashAccumulation(profile *domain.FinancialProfile, forward []domain.ProjectionSnapshot) decimal.Decimal {
	lastDelta := decimal.Zero
	if n := len(forward); n > 0 && forward[n-1].Months > 0 {
		last := forward[n-1]
		lastDelta = last.NetCashDelta.Div(decimal.NewFromInt(int64(last.Months)))
	}
	return profile.MonthlySavings().Add(money.NonNegative(lastDelta))
}

// AnalyzeGoals computes affordability per goal as of asOf. It only reads the
// projection and returns goals ordered by target date, then priority.
func AnalyzeGoals(profile *domain.FinancialProfile, forward []domain.ProjectionSnapshot, asOf time.Time) []domain.GoalFeasibility {
	accumulation := MonthlyCashAccumulation(profile, forward)
	current := profile.StartingCash

	out := make([]domain.GoalFeasibility, 0, len(profile.Goals))
	for _, g := range profile.Goals {
		months := dateutil.MonthsBetween(asOf, g.TargetDate)
		if months < 0 {
			months = 0
		}
		projected := current.Add(accumulation.Mul(decimal.NewFromInt(int64(months))))
		shortfall := money.NonNegative(g.TargetAmount.Sub(projected))

		gf := domain.GoalFeasibility{
			Goal:                    g,
			MonthsUntilTarget:       months,
			MonthlyCashAccumulation: accumulation,
			ProjectedCashAtTarget:   projected,
			Shortfall:               shortfall,
			RequiredMonthlySaving:   decimal.Zero,
		}
		switch {
		case dateutil.CalendarDate(g.TargetDate).Before(asOf):
			gf.Status = domain.GoalOverdue
		case projected.GreaterThanOrEqual(g.TargetAmount):
			gf.Status = domain.GoalAchievable
		default:
			gf.Status = domain.GoalShortfall
		}
		if shortfall.IsPositive() && months > 0 {
			gf.RequiredMonthlySaving = shortfall.Div(decimal.NewFromInt(int64(months))).RoundUp(2)
		}
		out = append(out, gf)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Goal, out[j].Goal
		if !a.TargetDate.Equal(b.TargetDate) {
			return a.TargetDate.Before(b.TargetDate)
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.Category < b.Category
	})
	return out
}
