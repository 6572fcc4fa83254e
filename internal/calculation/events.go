package calculation

import (
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Period is one half-open date range [Start, End).
type Period struct {
	Index int
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day of t, read in t's own location,
// falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return dateutil.InRange(dateutil.CalendarDate(t), p.Start, p.End)
}

// EventResolution is the one-off cash that lands in a period.
type EventResolution struct {
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	GoalOutflow decimal.Decimal
	Matched     []domain.MatchedEvent
}

// LumpSumNet is inflow minus outflow; scheduled goal outflows are excluded.
func (r EventResolution) LumpSumNet() decimal.Decimal {
	return r.Inflow.Sub(r.Outflow)
}

// ResolveEvents matches lump sums and goals whose date falls in period. Periods
// produced by the engine partition the timeline, so every event is counted in
// exactly one of them.
func ResolveEvents(period Period, lumpSums []domain.LumpSumEvent, goals []domain.Goal) EventResolution {
	res := EventResolution{Inflow: decimal.Zero, Outflow: decimal.Zero, GoalOutflow: decimal.Zero}

	for _, e := range lumpSums {
		if !period.Contains(e.EffectiveDate) {
			continue
		}
		if e.Direction == domain.Inflow {
			res.Inflow = res.Inflow.Add(e.Amount)
		} else {
			res.Outflow = res.Outflow.Add(e.Amount)
		}
		res.Matched = append(res.Matched, domain.MatchedEvent{
			Kind:        domain.EventLumpSum,
			Date:        e.EffectiveDate,
			Amount:      e.SignedAmount(),
			Description: e.Description,
			Category:    e.Category,
		})
	}

	for _, g := range goals {
		if !period.Contains(g.TargetDate) {
			continue
		}
		res.GoalOutflow = res.GoalOutflow.Add(g.TargetAmount)
		res.Matched = append(res.Matched, domain.MatchedEvent{
			Kind:        domain.EventGoal,
			Date:        g.TargetDate,
			Amount:      g.TargetAmount.Neg(),
			Description: g.Label(),
			Category:    g.Category,
		})
	}
	return res
}
