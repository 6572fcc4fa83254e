package output

import (
	"fmt"

	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// XLSXFormatter writes a workbook with Summary, Snapshots, Debts and Goals sheets.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

const (
	sheetSummary   = "Summary"
	sheetSnapshots = "Snapshots"
	sheetDebts     = "Debts"
	sheetGoals     = "Goals"
)

func (x XLSXFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetSnapshots, sheetDebts, sheetGoals} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, result); err != nil {
		return nil, err
	}

	snapshotRows := make([][]any, 0, len(result.Snapshots))
	debtRows := make([][]any, 0)
	for _, s := range result.Snapshots {
		snapshotRows = append(snapshotRows, []any{
			s.PeriodLabel, s.PeriodIndex, dateString(s.PeriodStart), dateString(s.PeriodEnd), s.Historical,
			num(s.Income), num(s.IncomeBand.Low), num(s.IncomeBand.High),
			num(s.Expenses), num(s.ExpenseBand.Low), num(s.ExpenseBand.High),
			num(s.SavingsContribution), num(s.InvestmentContribution), num(s.DebtPayments), num(s.InterestCharged), num(s.TotalDebtBalance),
			num(s.InvestmentBalance.Expected), num(s.InvestmentBalance.Pessimistic), num(s.InvestmentBalance.Optimistic), num(s.Liquidated),
			num(s.CashBalance), num(s.CashDeficit), num(s.NetCashDelta), num(s.NetWorth), num(s.LumpSumNet), num(s.GoalOutflow), s.Insolvent,
		})
		for _, d := range s.Debts {
			debtRows = append(debtRows, []any{
				s.PeriodLabel, s.PeriodIndex, s.Historical, d.AccountID, d.Name,
				num(d.Payment), num(d.InterestCharged), num(d.PrincipalPaid), num(d.RemainingBalance),
				d.NonAmortizing, d.PaidOff,
			})
		}
	}

	goalRows := make([][]any, 0, len(result.GoalFeasibility))
	for _, g := range result.GoalFeasibility {
		goalRows = append(goalRows, []any{
			g.Goal.Label(), g.Goal.Category, string(g.Goal.Priority), dateString(g.Goal.TargetDate), num(g.Goal.TargetAmount),
			g.MonthsUntilTarget, num(g.MonthlyCashAccumulation), num(g.ProjectedCashAtTarget), num(g.Shortfall), num(g.RequiredMonthlySaving),
			string(g.Status),
		})
	}

	if err := writeTable(f, sheetSnapshots, snapshotHeader, snapshotRows); err != nil {
		return nil, err
	}
	if err := writeTable(f, sheetDebts, debtHeader, debtRows); err != nil {
		return nil, err
	}
	if err := writeTable(f, sheetGoals, goalHeader, goalRows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, result *domain.ProjectionResult) error {
	a := AnalyzeProjection(result)
	rows := [][]any{
		{"Start", dateString(result.Start)},
		{"Granularity", string(result.Granularity)},
		{"Risk tolerance", string(result.RiskTolerance)},
		{"Forward periods", result.ForwardPeriods},
		{"History periods", result.HistoryPeriods},
		{"Monthly income", num(result.Totals.MonthlyIncome)},
		{"Monthly expenses", num(result.Totals.MonthlyExpenses)},
		{"Monthly surplus", num(result.Totals.MonthlySurplus)},
		{"Opening net worth", num(result.Summary.OpeningNetWorth)},
		{"Final net worth", num(a.FinalNetWorth)},
		{"Net worth change", num(a.NetWorthChange)},
		{"Interest paid", num(a.TotalInterestPaid)},
		{"Investments sold", num(a.TotalLiquidated)},
		{"Debt free", a.DebtFreeLabel},
		{"First shortfall", a.FirstInsolventLabel},
		{"Warnings", len(result.Warnings)},
	}
	return writeTable(f, sheetSummary, []string{"Metric", "Value"}, rows)
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]any) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// num converts an amount to a spreadsheet number rounded to cents.
func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
