package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rpgo/cashflow-projector/internal/calculation"
	"github.com/rpgo/cashflow-projector/internal/domain"
)

// ScenarioCSVReport exports the investment scenario tracks and the
// income/expense bands of a projection.
type ScenarioCSVReport struct {
	Result *domain.ProjectionResult
}

// GenerateSummaryCSV writes one row per scenario track at the horizon.
func (r *ScenarioCSVReport) GenerateSummaryCSV(outputPath string) error {
	return writeCSVFile(outputPath, r.writeSummary)
}

// GenerateDetailedCSV writes every track and band per period.
func (r *ScenarioCSVReport) GenerateDetailedCSV(outputPath string) error {
	return writeCSVFile(outputPath, r.writeDetailed)
}

func (r *ScenarioCSVReport) writeSummary(writer *csv.Writer) error {
	if err := writer.Write([]string{"Scenario", "AnnualReturnPercent", "FinalInvestmentBalance", "FinalNetWorth", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	risk := r.Result.RiskTolerance.OrDefault()
	rp := calculation.ReturnProfileFor(risk)
	annual := map[domain.ScenarioTag]string{
		domain.ScenarioExpected:    rp.BaseAnnualReturnPercent.StringFixed(2),
		domain.ScenarioPessimistic: rp.BaseAnnualReturnPercent.Sub(rp.AnnualVariancePercent).StringFixed(2),
		domain.ScenarioOptimistic:  rp.BaseAnnualReturnPercent.Add(rp.AnnualVariancePercent).StringFixed(2),
	}
	descriptions := map[domain.ScenarioTag]string{
		domain.ScenarioExpected:    "Base return for the risk tolerance",
		domain.ScenarioPessimistic: "Base return minus variance, floored monthly",
		domain.ScenarioOptimistic:  "Base return plus variance",
	}

	var last domain.ProjectionSnapshot
	if fwd := r.Result.ForwardSnapshots(); len(fwd) > 0 {
		last = fwd[len(fwd)-1]
	}
	for _, tag := range domain.ScenarioTags {
		balance := last.InvestmentBalance.Get(tag)
		// net worth on this track swaps the expected balance for the track's own
		netWorth := last.NetWorth.Sub(last.InvestmentBalance.Expected).Add(balance)
		row := []string{string(tag), annual[tag], balance.StringFixed(2), netWorth.StringFixed(2), descriptions[tag]}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}

func (r *ScenarioCSVReport) writeDetailed(writer *csv.Writer) error {
	header := []string{
		"Period", "Index", "Historical",
		"Expected", "Pessimistic", "Optimistic",
		"IncomeLow", "Income", "IncomeHigh",
		"ExpensesLow", "Expenses", "ExpensesHigh",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range r.Result.Snapshots {
		row := []string{
			s.PeriodLabel,
			intToString(s.PeriodIndex),
			boolToString(s.Historical),
			s.InvestmentBalance.Expected.StringFixed(2),
			s.InvestmentBalance.Pessimistic.StringFixed(2),
			s.InvestmentBalance.Optimistic.StringFixed(2),
			s.IncomeBand.Low.StringFixed(2),
			s.Income.StringFixed(2),
			s.IncomeBand.High.StringFixed(2),
			s.ExpenseBand.Low.StringFixed(2),
			s.Expenses.StringFixed(2),
			s.ExpenseBand.High.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	return nil
}

func writeCSVFile(outputPath string, write func(*csv.Writer) error) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, write); err != nil {
		return err
	}
	return file.Close()
}

func writeCSV(w io.Writer, write func(*csv.Writer) error) error {
	writer := csv.NewWriter(w)
	if err := write(writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// CSVScenarioExporter exposes the detailed scenario table as a formatter.
type CSVScenarioExporter struct{}

func (c CSVScenarioExporter) Name() string { return "scenarios-csv" }

func (c CSVScenarioExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	report := &ScenarioCSVReport{Result: result}
	if err := writeCSV(&buf, report.writeDetailed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
