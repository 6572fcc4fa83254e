package calculation

import (
	"testing"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReturnProfileFor(t *testing.T) {
	tests := []struct {
		risk     domain.RiskTolerance
		base     float64
		variance float64
	}{
		{domain.RiskLow, 3, 1},
		{domain.RiskMedium, 6, 2.5},
		{domain.RiskHigh, 9, 4},
		{"", 6, 2.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.risk.OrDefault()), func(t *testing.T) {
			rp := ReturnProfileFor(tt.risk)
			assert.True(t, rp.BaseAnnualReturnPercent.Equal(dec(tt.base)))
			assert.True(t, rp.AnnualVariancePercent.Equal(dec(tt.variance)))
		})
	}
}

func TestMonthlyRatesOrdering(t *testing.T) {
	for _, risk := range []domain.RiskTolerance{domain.RiskLow, domain.RiskMedium, domain.RiskHigh} {
		rates := ReturnProfileFor(risk).MonthlyRates()
		assert.True(t, rates.Pessimistic.LessThan(rates.Expected), "risk %s", risk)
		assert.True(t, rates.Expected.LessThan(rates.Optimistic), "risk %s", risk)
		assert.True(t, rates.Pessimistic.GreaterThanOrEqual(PessimisticMonthlyFloor))
	}

	rates := ReturnProfileFor(domain.RiskMedium).MonthlyRates()
	assertMoney(t, dec(0.005), rates.Expected)
}

func TestMonthlyRatesFloor(t *testing.T) {
	rp := ReturnProfile{BaseAnnualReturnPercent: decimal.Zero, AnnualVariancePercent: dec(1200)}
	rates := rp.MonthlyRates()
	assert.True(t, rates.Pessimistic.Equal(PessimisticMonthlyFloor))
}

func TestAdvanceInvestment(t *testing.T) {
	// contribution lands before growth
	got := AdvanceInvestment(dec(1000), dec(200), dec(0.01))
	assertMoney(t, dec(1212), got)

	got = AdvanceInvestment(decimal.Zero, decimal.Zero, dec(0.01))
	assert.True(t, got.IsZero())
}

func TestAdvanceScenariosKeepsTracksOrdered(t *testing.T) {
	rates := ReturnProfileFor(domain.RiskHigh).MonthlyRates()
	b := domain.NewInvestmentBalances(dec(10000))
	for i := 0; i < 120; i++ {
		b = AdvanceScenarios(b, dec(250), rates)
		assert.True(t, b.Pessimistic.LessThanOrEqual(b.Expected))
		assert.True(t, b.Expected.LessThanOrEqual(b.Optimistic))
	}
}

func TestVariabilityBand(t *testing.T) {
	band := VariabilityBand(dec(5000), VariabilityPercentFor(domain.RiskMedium))
	assertMoney(t, dec(4500), band.Low)
	assertMoney(t, dec(5500), band.High)

	band = VariabilityBand(dec(1000), VariabilityPercentFor(domain.RiskLow))
	assertMoney(t, dec(950), band.Low)
	assertMoney(t, dec(1050), band.High)

	assert.True(t, VariabilityPercentFor(domain.RiskHigh).Equal(dec(15)))
}
