package output

import (
	"fmt"

	"github.com/rpgo/cashflow-projector/internal/calculation"
	"github.com/rpgo/cashflow-projector/internal/domain"
)

// GenerateAssumptions lists the modelling assumptions behind a run.
func GenerateAssumptions(result *domain.ProjectionResult) []string {
	risk := result.RiskTolerance.OrDefault()
	rp := calculation.ReturnProfileFor(risk)
	return []string{
		fmt.Sprintf("Investment returns (%s risk): expected %s, pessimistic %s, optimistic %s per year",
			risk,
			FormatPercentage(rp.BaseAnnualReturnPercent),
			FormatPercentage(rp.BaseAnnualReturnPercent.Sub(rp.AnnualVariancePercent)),
			FormatPercentage(rp.BaseAnnualReturnPercent.Add(rp.AnnualVariancePercent))),
		fmt.Sprintf("Income and expense bands: ±%s of each period figure", FormatPercentage(calculation.VariabilityPercentFor(risk))),
		"Contributions are invested at the start of each month and earn that month's return",
		"A negative cash balance is covered by selling investments; sales are permanent",
		"A debt payment below the monthly interest holds the balance flat and is flagged",
		"History periods show recurring flows only and never change balances",
	}
}
