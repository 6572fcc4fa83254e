package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/cashflow-projector/internal/config"
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleConfig = "../../internal/config/testdata/example_config.yaml"
	exampleUpdate = "../../internal/config/testdata/update.yaml"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestProjectConsole(t *testing.T) {
	out, _, err := execute(t, "project", "--config", exampleConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "CASH FLOW PROJECTION")
	assert.Contains(t, out, "2025-Q1")
	assert.Contains(t, out, "Vacation")
}

func TestProjectJSONWithOverrides(t *testing.T) {
	out, _, err := execute(t, "project", "-c", exampleConfig, "-f", "json",
		"--periods", "4", "--history", "0", "--granularity", "monthly", "--start", "2025-02")
	require.NoError(t, err)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.GranularityMonthly, result.Granularity)
	require.Len(t, result.Snapshots, 4)
	assert.Equal(t, "2025-02", result.Snapshots[0].PeriodLabel)
}

func TestProjectMergeUpdate(t *testing.T) {
	out, _, err := execute(t, "project", "-c", exampleConfig, "--merge", exampleUpdate, "-f", "json")
	require.NoError(t, err)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.RiskHigh, result.RiskTolerance)
	assert.Equal(t, "5250", result.Totals.MonthlyIncome.String())
}

func TestProjectWritesReportAndScenarios(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "project", "-c", exampleConfig, "-f", "csv", "-o", dir, "--scenarios-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	for _, name := range []string{"scenario_summary.csv", "scenario_detail.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "cashflow_projection_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestProjectRecordAndListRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, stderr, err := execute(t, "project", "-c", exampleConfig, "-f", "summary", "--record", "--db", db, "--label", "baseline")
	require.NoError(t, err)
	require.Contains(t, stderr, "Recorded run ")

	id := strings.TrimSpace(strings.TrimPrefix(stderr[strings.Index(stderr, "Recorded run "):], "Recorded run "))
	id = strings.Fields(id)[0]

	out, _, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "baseline")

	out, _, err = execute(t, "runs", "show", id, "--db", db, "-f", "json")
	require.NoError(t, err)
	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Snapshots, 10)
}

func TestRunsEmptyDatabase(t *testing.T) {
	out, _, err := execute(t, "runs", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs")
}

func TestProjectErrors(t *testing.T) {
	_, _, err := execute(t, "project", "-c", exampleConfig, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")

	_, _, err = execute(t, "project", "-c", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, _, err = execute(t, "project", "-c", exampleConfig, "--granularity", "weekly")
	require.Error(t, err)

	_, _, err = execute(t, "project", "-c", exampleConfig, "--start", "March")
	require.Error(t, err)

	_, _, err = execute(t, "project")
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, "validate", "-c", exampleConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "$5,000.00")
}

func TestPayoffCommand(t *testing.T) {
	out, _, err := execute(t, "payoff", "-c", exampleConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "ACCOUNT")
	assert.Contains(t, out, "Visa")
}

func TestExampleCommand(t *testing.T) {
	out, _, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "profile:")

	path := filepath.Join(t.TempDir(), "example.yaml")
	_, _, err = execute(t, "example", "-o", path)
	require.NoError(t, err)

	cfg, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Profile.DebtAccounts)
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "scenarios-csv")
	assert.Contains(t, out, "xlsx")
	assert.Contains(t, out, "excel")
}

func TestLogFlags(t *testing.T) {
	_, stderr, err := execute(t, "--log-level", "info", "--log-format", "json", "project", "-c", exampleConfig, "-f", "summary")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"info"`)

	_, _, err = execute(t, "--log-level", "loud", "formats")
	require.Error(t, err)

	_, _, err = execute(t, "--log-format", "xml", "formats")
	require.Error(t, err)
}
