package calculation

import (
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// MaxPayoffIterations caps the payoff estimator.
const MaxPayoffIterations = 1000

// DebtStep is the outcome of advancing one account by one month.
type DebtStep struct {
	NewRemainingBalance decimal.Decimal
	InterestCharged     decimal.Decimal
	PrincipalPaid       decimal.Decimal
	// Payment is the cash that leaves for this account: the scheduled
	// payment, capped at interest plus the remaining balance.
	Payment      decimal.Decimal
	IsPayingDown bool
	// NonAmortizing is set when a positive balance saw no principal reduction.
	// The balance is frozen instead of accruing the unpaid interest.
	NonAmortizing bool
}

// AdvanceDebt applies one month of interest and payment to remaining. It is a
// pure function of its arguments.
func AdvanceDebt(account domain.DebtAccount, remaining decimal.Decimal) DebtStep {
	if !remaining.IsPositive() {
		return DebtStep{NewRemainingBalance: decimal.Zero, InterestCharged: decimal.Zero, PrincipalPaid: decimal.Zero, Payment: decimal.Zero}
	}

	interest := remaining.Mul(money.MonthlyRate(account.AnnualPercentageRate))
	principal := money.NonNegative(account.MonthlyPayment.Sub(interest))
	// never overpay
	principal = money.Min(principal, remaining)

	paying := principal.IsPositive()
	return DebtStep{
		NewRemainingBalance: money.NonNegative(remaining.Sub(principal)),
		InterestCharged:     interest,
		PrincipalPaid:       principal,
		Payment:             money.Min(account.MonthlyPayment, interest.Add(remaining)),
		IsPayingDown:        paying,
		NonAmortizing:       !paying,
	}
}

// EstimatePayoff runs AdvanceDebt from the account's current principal until
// the balance reaches zero. Payable is false when a step pays no principal or
// the iteration cap is hit.
func EstimatePayoff(account domain.DebtAccount) domain.PayoffEstimate {
	est := domain.PayoffEstimate{
		AccountID:     account.ID,
		Name:          account.Label(),
		TotalInterest: decimal.Zero,
	}
	balance := account.PrincipalBalance
	if !balance.IsPositive() {
		est.Payable = true
		return est
	}

	for month := 1; month <= MaxPayoffIterations; month++ {
		step := AdvanceDebt(account, balance)
		if !step.IsPayingDown {
			est.Months = -1
			return est
		}
		est.TotalInterest = est.TotalInterest.Add(step.InterestCharged)
		balance = step.NewRemainingBalance
		if balance.IsZero() {
			est.Months = month
			est.Payable = true
			return est
		}
	}
	est.Months = -1
	return est
}
