package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// CSVDetailedExporter writes one row per period and debt account.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

var debtHeader = []string{"Period", "Index", "Historical", "AccountID", "Name", "Payment", "InterestCharged", "PrincipalPaid", "RemainingBalance", "NonAmortizing", "PaidOff"}

func (c CSVDetailedExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(debtHeader); err != nil {
		return nil, err
	}
	for _, s := range result.Snapshots {
		for _, d := range s.Debts {
			row := []string{
				s.PeriodLabel,
				intToString(s.PeriodIndex),
				boolToString(s.Historical),
				d.AccountID,
				d.Name,
				d.Payment.StringFixed(2),
				d.InterestCharged.StringFixed(2),
				d.PrincipalPaid.StringFixed(2),
				d.RemainingBalance.StringFixed(2),
				boolToString(d.NonAmortizing),
				boolToString(d.PaidOff),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
