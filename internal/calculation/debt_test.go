package calculation

import (
	"testing"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceDebt(t *testing.T) {
	card := domain.DebtAccount{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(120)}

	tests := []struct {
		name          string
		payment       decimal.Decimal
		remaining     decimal.Decimal
		wantInterest  decimal.Decimal
		wantPrincipal decimal.Decimal
		wantBalance   decimal.Decimal
		wantPayment   decimal.Decimal
		nonAmortizing bool
	}{
		{
			name:          "payment covers interest",
			payment:       dec(120),
			remaining:     dec(2500),
			wantInterest:  dec(45.83),
			wantPrincipal: dec(74.17),
			wantBalance:   dec(2425.83),
			wantPayment:   dec(120),
		},
		{
			name:          "payment below interest holds balance",
			payment:       dec(40),
			remaining:     dec(2500),
			wantInterest:  dec(45.83),
			wantPrincipal: decimal.Zero,
			wantBalance:   dec(2500),
			wantPayment:   dec(40),
			nonAmortizing: true,
		},
		{
			name:          "final payment never overpays",
			payment:       dec(120),
			remaining:     dec(50),
			wantInterest:  dec(0.92),
			wantPrincipal: dec(50),
			wantBalance:   decimal.Zero,
			wantPayment:   dec(50.92),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := card
			acct.MonthlyPayment = tt.payment
			step := AdvanceDebt(acct, tt.remaining)
			assertMoney(t, tt.wantInterest, step.InterestCharged, "interest")
			assertMoney(t, tt.wantPrincipal, step.PrincipalPaid, "principal")
			assertMoney(t, tt.wantBalance, step.NewRemainingBalance, "balance")
			assertMoney(t, tt.wantPayment, step.Payment, "payment")
			assert.Equal(t, tt.nonAmortizing, step.NonAmortizing)
			assert.Equal(t, !tt.nonAmortizing, step.IsPayingDown)
			assert.False(t, step.NewRemainingBalance.IsNegative())
		})
	}
}

func TestAdvanceDebtZeroBalance(t *testing.T) {
	acct := domain.DebtAccount{ID: "loan", AnnualPercentageRate: dec(5), MonthlyPayment: dec(100)}
	step := AdvanceDebt(acct, decimal.Zero)
	assert.True(t, step.NewRemainingBalance.IsZero())
	assert.True(t, step.InterestCharged.IsZero())
	assert.True(t, step.Payment.IsZero())
	assert.False(t, step.NonAmortizing)
}

func TestEstimatePayoff(t *testing.T) {
	t.Run("zero interest", func(t *testing.T) {
		est := EstimatePayoff(domain.DebtAccount{ID: "a", PrincipalBalance: dec(300), MonthlyPayment: dec(100)})
		assert.True(t, est.Payable)
		assert.Equal(t, 3, est.Months)
		assert.True(t, est.TotalInterest.IsZero())
	})

	t.Run("with interest", func(t *testing.T) {
		est := EstimatePayoff(domain.DebtAccount{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(120)})
		assert.True(t, est.Payable)
		assert.Greater(t, est.Months, 21)
		assert.Less(t, est.Months, 30)
		assert.True(t, est.TotalInterest.IsPositive())
	})

	t.Run("payment below interest never pays off", func(t *testing.T) {
		est := EstimatePayoff(domain.DebtAccount{ID: "card", PrincipalBalance: dec(2500), AnnualPercentageRate: dec(22), MonthlyPayment: dec(40)})
		assert.False(t, est.Payable)
		assert.Equal(t, -1, est.Months)
	})

	t.Run("iteration cap", func(t *testing.T) {
		// 1 cent per month on a large balance takes longer than the cap
		est := EstimatePayoff(domain.DebtAccount{ID: "big", PrincipalBalance: dec(1000000), MonthlyPayment: dec(0.01)})
		assert.False(t, est.Payable)
		assert.Equal(t, -1, est.Months)
	})

	t.Run("already paid", func(t *testing.T) {
		est := EstimatePayoff(domain.DebtAccount{ID: "done", MonthlyPayment: dec(50)})
		assert.True(t, est.Payable)
		assert.Equal(t, 0, est.Months)
	})
}
