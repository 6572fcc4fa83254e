// Package recorder persists finished projection runs.
package recorder

import (
	"context"
	"errors"
	"time"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrRunNotFound is returned when a run id has no stored record.
var ErrRunNotFound = errors.New("run not found")

// Recorder stores projection runs. The engine never calls it; the CLI does
// after a successful projection.
type Recorder interface {
	RecordRun(ctx context.Context, label string, result *domain.ProjectionResult) (string, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	LoadRun(ctx context.Context, id string) (*domain.ProjectionResult, error)
	Close() error
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID             string
	Label          string
	RecordedAt     time.Time
	Start          time.Time
	Granularity    domain.Granularity
	RiskTolerance  domain.RiskTolerance
	ForwardPeriods int
	HistoryPeriods int
	FinalNetWorth  decimal.Decimal
	Warnings       int
}

func summarize(id, label string, recordedAt time.Time, result *domain.ProjectionResult) RunSummary {
	return RunSummary{
		ID:             id,
		Label:          label,
		RecordedAt:     recordedAt,
		Start:          result.Start,
		Granularity:    result.Granularity,
		RiskTolerance:  result.RiskTolerance,
		ForwardPeriods: result.ForwardPeriods,
		HistoryPeriods: result.HistoryPeriods,
		FinalNetWorth:  result.Summary.FinalNetWorth,
		Warnings:       len(result.Warnings),
	}
}
