package calculation

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Income/expense uncertainty is shown as a band around each period figure.
// It is independent of the investment scenario tracks.
var variabilityPercents = map[domain.RiskTolerance]decimal.Decimal{
	domain.RiskLow:    decimal.NewFromInt(5),
	domain.RiskMedium: decimal.NewFromInt(10),
	domain.RiskHigh:   decimal.NewFromInt(15),
}

// VariabilityPercentFor returns the band width for a risk tolerance.
func VariabilityPercentFor(risk domain.RiskTolerance) decimal.Decimal {
	return variabilityPercents[risk.OrDefault()]
}

// VariabilityBand returns figure × (1 ∓ percent/100).
func VariabilityBand(figure, percent decimal.Decimal) domain.Band {
	spread := figure.Mul(percent).Div(decimalHundred)
	return domain.Band{Low: figure.Sub(spread), High: figure.Add(spread)}
}
