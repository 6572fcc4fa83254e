package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/dateutil"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// Project runs one projection over the requested range. The profile is copied
// and validated first; invalid input returns a *domain.ValidationError and no
// snapshots. Cancelling ctx discards the run.
func (ce *CalculationEngine) Project(ctx context.Context, profile *domain.FinancialProfile, settings domain.ProjectionSettings) (*domain.ProjectionResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}
	p := profile.Clone()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(p.Granularity); err != nil {
		return nil, err
	}

	granularity := settings.EffectiveGranularity(p.Granularity)
	monthsPerPeriod := granularity.MonthsPerPeriod()
	start := settings.Start
	if start.IsZero() {
		start = ce.now()
	}
	start = dateutil.AlignToPeriod(start, monthsPerPeriod)
	risk := p.RiskTolerance.OrDefault()
	bandPercent := VariabilityPercentFor(risk)

	ce.Logger.Debugf("projecting %d %s periods (+%d history) from %s, risk %s",
		settings.ForwardPeriods, granularity, settings.HistoryPeriods, dateutil.MonthLabel(start), risk)

	stepper := NewPeriodStepper(p, ReturnProfileFor(risk))
	snapshots := make([]domain.ProjectionSnapshot, 0, settings.HistoryPeriods+settings.ForwardPeriods)

	for k := -settings.HistoryPeriods; k < 0; k++ {
		period := periodAt(start, k, granularity)
		snapshots = append(snapshots, stepper.historicalSnapshot(period, monthsPerPeriod, bandPercent))
	}

	var warnings []domain.Warning
	flagged := make(map[string]bool)
	wasInsolvent := false
	state := stepper.InitialState()

	for k := 0; k < settings.ForwardPeriods; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		period := periodAt(start, k, granularity)
		agg := newPeriodAggregate(period, monthsPerPeriod)
		for m := 0; m < monthsPerPeriod; m++ {
			monthStart := dateutil.AddMonths(period.Start, m)
			month := Period{Index: k, Label: period.Label, Start: monthStart, End: dateutil.AddMonths(monthStart, 1)}
			var res MonthResult
			state, res = stepper.Step(state, month)
			agg.add(res)
		}
		snap := agg.snapshot(state, bandPercent)

		for _, d := range snap.Debts {
			if d.NonAmortizing && !flagged[d.AccountID] {
				flagged[d.AccountID] = true
				msg := fmt.Sprintf("payment on %s does not cover the monthly interest; balance held at %s", d.Name, money.Format(d.RemainingBalance))
				ce.Logger.Warnf("%s (period %s)", msg, snap.PeriodLabel)
				warnings = append(warnings, domain.Warning{
					Kind:        domain.WarningNonAmortizingDebt,
					PeriodIndex: snap.PeriodIndex,
					PeriodLabel: snap.PeriodLabel,
					Subject:     d.AccountID,
					Message:     msg,
				})
			}
		}
		if snap.Insolvent && !wasInsolvent {
			msg := fmt.Sprintf("cash shortfall of %s not covered by investments", money.Format(agg.peakDeficit))
			ce.Logger.Warnf("%s (period %s)", msg, snap.PeriodLabel)
			warnings = append(warnings, domain.Warning{
				Kind:        domain.WarningInsolvency,
				PeriodIndex: snap.PeriodIndex,
				PeriodLabel: snap.PeriodLabel,
				Message:     msg,
			})
		}
		wasInsolvent = snap.Insolvent
		snapshots = append(snapshots, snap)
	}

	result := &domain.ProjectionResult{
		Start:          start,
		Granularity:    granularity,
		RiskTolerance:  risk,
		ForwardPeriods: settings.ForwardPeriods,
		HistoryPeriods: settings.HistoryPeriods,
		Snapshots:      snapshots,
		Totals:         ComputeTotals(p),
		Warnings:       warnings,
	}
	result.GoalFeasibility = AnalyzeGoals(p, result.ForwardSnapshots(), start)
	result.Summary = Summarize(p, result.ForwardSnapshots())
	return result, nil
}

func periodAt(start time.Time, index int, g domain.Granularity) Period {
	m := g.MonthsPerPeriod()
	ps := dateutil.AddMonths(start, index*m)
	return Period{Index: index, Label: periodLabel(ps, g), Start: ps, End: dateutil.AddMonths(ps, m)}
}

func periodLabel(start time.Time, g domain.Granularity) string {
	switch g {
	case domain.GranularityQuarterly:
		return dateutil.QuarterLabel(start)
	case domain.GranularityYearly:
		return dateutil.YearLabel(start)
	default:
		return dateutil.MonthLabel(start)
	}
}

// periodAggregate folds the months of one display period.
type periodAggregate struct {
	snap        domain.ProjectionSnapshot
	debtIdx     map[string]int
	peakDeficit decimal.Decimal
}

func newPeriodAggregate(p Period, months int) *periodAggregate {
	return &periodAggregate{
		snap: domain.ProjectionSnapshot{
			PeriodLabel:            p.Label,
			PeriodIndex:            p.Index,
			PeriodStart:            p.Start,
			PeriodEnd:              p.End,
			Months:                 months,
			Income:                 decimal.Zero,
			Expenses:               decimal.Zero,
			SavingsContribution:    decimal.Zero,
			InvestmentContribution: decimal.Zero,
			DebtPayments:           decimal.Zero,
			InterestCharged:        decimal.Zero,
			Liquidated:             decimal.Zero,
			NetCashDelta:           decimal.Zero,
			LumpSumNet:             decimal.Zero,
			GoalOutflow:            decimal.Zero,
		},
		debtIdx:     make(map[string]int),
		peakDeficit: decimal.Zero,
	}
}

func (a *periodAggregate) add(r MonthResult) {
	s := &a.snap
	s.Income = s.Income.Add(r.Income).Add(r.LumpInflow)
	s.Expenses = s.Expenses.Add(r.Expenses).Add(r.LumpOutflow).Add(r.GoalOutflow)
	s.SavingsContribution = s.SavingsContribution.Add(r.SavingsContribution)
	s.InvestmentContribution = s.InvestmentContribution.Add(r.InvestmentContribution)
	s.DebtPayments = s.DebtPayments.Add(r.DebtPayments)
	s.InterestCharged = s.InterestCharged.Add(r.InterestCharged)
	s.Liquidated = s.Liquidated.Add(r.Liquidated)
	s.NetCashDelta = s.NetCashDelta.Add(r.NetCashDelta)
	s.LumpSumNet = s.LumpSumNet.Add(r.LumpInflow).Sub(r.LumpOutflow)
	s.GoalOutflow = s.GoalOutflow.Add(r.GoalOutflow)
	s.Events = append(s.Events, r.Events...)
	s.Insolvent = s.Insolvent || r.Insolvent
	a.peakDeficit = money.Max(a.peakDeficit, r.CashDeficit)

	for _, d := range r.Debts {
		i, ok := a.debtIdx[d.AccountID]
		if !ok {
			a.debtIdx[d.AccountID] = len(s.Debts)
			s.Debts = append(s.Debts, d)
			continue
		}
		cur := &s.Debts[i]
		cur.RemainingBalance = d.RemainingBalance
		cur.InterestCharged = cur.InterestCharged.Add(d.InterestCharged)
		cur.PrincipalPaid = cur.PrincipalPaid.Add(d.PrincipalPaid)
		cur.Payment = cur.Payment.Add(d.Payment)
		cur.NonAmortizing = cur.NonAmortizing || d.NonAmortizing
		cur.PaidOff = d.PaidOff
	}
}

// snapshot closes the period with the end-of-period balances.
func (a *periodAggregate) snapshot(end StepState, bandPercent decimal.Decimal) domain.ProjectionSnapshot {
	s := a.snap
	s.TotalDebtBalance = money.Sum(end.DebtBalances...)
	s.InvestmentBalance = end.Investments
	s.CashBalance = money.NonNegative(end.Cash)
	s.CashDeficit = money.NonNegative(end.Cash.Neg())
	s.NetWorth = s.CashBalance.Add(end.Investments.Expected).Sub(s.TotalDebtBalance)
	s.IncomeBand = VariabilityBand(s.Income, bandPercent)
	s.ExpenseBand = VariabilityBand(s.Expenses, bandPercent)
	return s
}

// historicalSnapshot shows recurring flows against the opening balances. The
// profile describes the present, so past events are listed but never applied.
func (ps *PeriodStepper) historicalSnapshot(p Period, months int, bandPercent decimal.Decimal) domain.ProjectionSnapshot {
	n := decimal.NewFromInt(int64(months))
	opening := ps.InitialState()
	events := ResolveEvents(p, ps.profile.LumpSums, ps.profile.Goals)

	payments := decimal.Zero
	debts := make([]domain.DebtEntry, len(ps.profile.DebtAccounts))
	for i, d := range ps.profile.DebtAccounts {
		debts[i] = domain.DebtEntry{
			AccountID:        d.ID,
			Name:             d.Label(),
			RemainingBalance: d.PrincipalBalance,
			InterestCharged:  decimal.Zero,
			PrincipalPaid:    decimal.Zero,
			Payment:          decimal.Zero,
			PaidOff:          !d.PrincipalBalance.IsPositive(),
		}
		if d.PrincipalBalance.IsPositive() {
			debts[i].Payment = AdvanceDebt(d, d.PrincipalBalance).Payment.Mul(n)
			payments = payments.Add(debts[i].Payment)
		}
	}

	agg := newPeriodAggregate(p, months)
	s := &agg.snap
	s.Historical = true
	s.Income = ps.income.Mul(n).Add(events.Inflow)
	s.Expenses = ps.expenses.Mul(n).Add(events.Outflow).Add(events.GoalOutflow)
	s.SavingsContribution = ps.savings.Mul(n)
	s.InvestmentContribution = ps.investments.Mul(n)
	s.DebtPayments = payments
	s.Debts = debts
	s.LumpSumNet = events.LumpSumNet()
	s.GoalOutflow = events.GoalOutflow
	s.NetCashDelta = s.Income.
		Sub(s.Expenses).
		Sub(payments).
		Sub(s.SavingsContribution).
		Sub(s.InvestmentContribution)
	s.Events = events.Matched
	return agg.snapshot(opening, bandPercent)
}
