package output

import (
	"encoding/json"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// JSONFormatter serializes the projection result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
