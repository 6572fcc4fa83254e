package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// assertMoney compares two amounts to the cent.
func assertMoney(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Sub(want).Abs().LessThan(dec(0.01)),
		append([]any{"want %s, got %s", want.StringFixed(4), got.StringFixed(4)}, msgAndArgs...)...)
}

func month(offset int) time.Time {
	return testStart.AddDate(0, offset, 0)
}

func createTestProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		RecurringIncome:   map[string]decimal.Decimal{"salary": dec(5000)},
		RecurringExpenses: map[string]decimal.Decimal{"rent": dec(3000)},
		RiskTolerance:     domain.RiskMedium,
		Granularity:       domain.GranularityMonthly,
	}
}

func monthlySettings(periods int) domain.ProjectionSettings {
	return domain.ProjectionSettings{Start: testStart, ForwardPeriods: periods}
}
