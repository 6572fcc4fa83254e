package recorder

import (
	"context"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ context.Context, _ string, _ *domain.ProjectionResult) (string, error) {
	return "", nil
}
func (n *NoopRecorder) ListRuns(_ context.Context, _ int) ([]RunSummary, error) { return nil, nil }
func (n *NoopRecorder) LoadRun(_ context.Context, id string) (*domain.ProjectionResult, error) {
	return nil, ErrRunNotFound
}
func (n *NoopRecorder) Close() error { return nil }
