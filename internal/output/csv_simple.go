package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// CSVSnapshotExporter writes one row per period snapshot.
type CSVSnapshotExporter struct{}

func (c CSVSnapshotExporter) Name() string { return "csv" }

var snapshotHeader = []string{
	"Period", "Index", "Start", "End", "Historical",
	"Income", "IncomeLow", "IncomeHigh", "Expenses", "ExpensesLow", "ExpensesHigh",
	"SavingsContribution", "InvestmentContribution", "DebtPayments", "InterestCharged", "TotalDebt",
	"InvestmentsExpected", "InvestmentsPessimistic", "InvestmentsOptimistic", "Liquidated",
	"Cash", "CashDeficit", "NetCashDelta", "NetWorth", "LumpSumNet", "GoalOutflow", "Insolvent",
}

func (c CSVSnapshotExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(snapshotHeader); err != nil {
		return nil, err
	}
	for _, s := range result.Snapshots {
		if err := w.Write(snapshotRow(s)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func snapshotRow(s domain.ProjectionSnapshot) []string {
	return []string{
		s.PeriodLabel,
		intToString(s.PeriodIndex),
		dateString(s.PeriodStart),
		dateString(s.PeriodEnd),
		boolToString(s.Historical),
		s.Income.StringFixed(2),
		s.IncomeBand.Low.StringFixed(2),
		s.IncomeBand.High.StringFixed(2),
		s.Expenses.StringFixed(2),
		s.ExpenseBand.Low.StringFixed(2),
		s.ExpenseBand.High.StringFixed(2),
		s.SavingsContribution.StringFixed(2),
		s.InvestmentContribution.StringFixed(2),
		s.DebtPayments.StringFixed(2),
		s.InterestCharged.StringFixed(2),
		s.TotalDebtBalance.StringFixed(2),
		s.InvestmentBalance.Expected.StringFixed(2),
		s.InvestmentBalance.Pessimistic.StringFixed(2),
		s.InvestmentBalance.Optimistic.StringFixed(2),
		s.Liquidated.StringFixed(2),
		s.CashBalance.StringFixed(2),
		s.CashDeficit.StringFixed(2),
		s.NetCashDelta.StringFixed(2),
		s.NetWorth.StringFixed(2),
		s.LumpSumNet.StringFixed(2),
		s.GoalOutflow.StringFixed(2),
		boolToString(s.Insolvent),
	}
}
