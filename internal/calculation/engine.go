package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// Logger receives engine diagnostics. *logrus.Logger and *logrus.Entry both
// satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine runs projections. It holds no state between runs, so one
// engine may serve concurrent Project calls as long as each caller owns its
// profile.
type CalculationEngine struct {
	Logger Logger

	// nowFunc supplies the start month when settings leave it zero.
	nowFunc func() time.Time
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}, nowFunc: time.Now}
}

// SetNowFunc replaces the clock used for a zero start date. nil restores time.Now.
func (ce *CalculationEngine) SetNowFunc(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	ce.nowFunc = f
}

func (ce *CalculationEngine) now() time.Time {
	if ce.nowFunc == nil {
		return time.Now()
	}
	return ce.nowFunc()
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunConfiguration projects a loaded configuration document.
func (ce *CalculationEngine) RunConfiguration(ctx context.Context, config *domain.Configuration) (*domain.ProjectionResult, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: configuration is required", domain.ErrInvalidProfile)
	}
	result, err := ce.Project(ctx, &config.Profile, config.Projection)
	if err != nil {
		return nil, fmt.Errorf("projection failed: %w", err)
	}
	ce.Logger.Infof("projected %d periods, final net worth %s", len(result.Snapshots), result.Summary.FinalNetWorth.StringFixed(2))
	return result, nil
}

// PayoffEstimates validates the profile and estimates every account's payoff
// from its current balance.
func (ce *CalculationEngine) PayoffEstimates(profile *domain.FinancialProfile) ([]domain.PayoffEstimate, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	out := make([]domain.PayoffEstimate, 0, len(profile.DebtAccounts))
	for _, acct := range profile.DebtAccounts {
		est := EstimatePayoff(acct)
		if !est.Payable {
			ce.Logger.Warnf("debt %s will never be paid off at %s per month", acct.Label(), acct.MonthlyPayment.StringFixed(2))
		}
		out = append(out, est)
	}
	return out, nil
}
