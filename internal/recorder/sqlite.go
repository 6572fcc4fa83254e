package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists runs and their snapshots to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
// A nil logger discards output.
func NewSQLiteRecorder(dbPath string, logger logrus.FieldLogger) (*SQLiteRecorder, error) {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			label           TEXT,
			recorded_at     INTEGER NOT NULL,
			start           TEXT NOT NULL,
			granularity     TEXT NOT NULL,
			risk_tolerance  TEXT NOT NULL,
			forward_periods INTEGER NOT NULL,
			history_periods INTEGER NOT NULL,
			final_net_worth TEXT NOT NULL,
			warnings        INTEGER NOT NULL,
			result_json     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded ON runs(recorded_at)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL REFERENCES runs(id),
			period_index       INTEGER NOT NULL,
			period_label       TEXT NOT NULL,
			historical         INTEGER NOT NULL,
			income             TEXT,
			expenses           TEXT,
			debt_payments      TEXT,
			total_debt_balance TEXT,
			investments        TEXT,
			cash_balance       TEXT,
			cash_deficit       TEXT,
			net_worth          TEXT,
			insolvent          INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, period_index)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the result in one transaction and returns the new run id.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, label string, result *domain.ProjectionResult) (string, error) {
	if result == nil {
		return "", errors.New("cannot record nil result")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	recordedAt := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, label, recorded_at, start, granularity, risk_tolerance,
		 forward_periods, history_periods, final_net_worth, warnings, result_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id, label, recordedAt.Unix(), result.Start.Format(time.RFC3339),
		string(result.Granularity), string(result.RiskTolerance),
		result.ForwardPeriods, result.HistoryPeriods,
		result.Summary.FinalNetWorth.String(), len(result.Warnings), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshots
		(run_id, period_index, period_label, historical, income, expenses,
		 debt_payments, total_debt_balance, investments, cash_balance,
		 cash_deficit, net_worth, insolvent)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range result.Snapshots {
		_, err := stmt.ExecContext(ctx,
			id, s.PeriodIndex, s.PeriodLabel, boolToInt(s.Historical),
			s.Income.String(), s.Expenses.String(), s.DebtPayments.String(),
			s.TotalDebtBalance.String(), s.InvestmentBalance.Expected.String(),
			s.CashBalance.String(), s.CashDeficit.String(), s.NetWorth.String(),
			boolToInt(s.Insolvent),
		)
		if err != nil {
			return "", fmt.Errorf("insert snapshot %s: %w", s.PeriodLabel, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"run_id":    id,
		"snapshots": len(result.Snapshots),
		"warnings":  len(result.Warnings),
	}).Debug("projection run recorded")
	return id, nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all.
func (r *SQLiteRecorder) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, label, recorded_at, start, granularity, risk_tolerance,
		forward_periods, history_periods, final_net_worth, warnings
		FROM runs ORDER BY recorded_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run         RunSummary
			label       sql.NullString
			recordedAt  int64
			start       string
			granularity string
			risk        string
			netWorth    string
		)
		if err := rows.Scan(&run.ID, &label, &recordedAt, &start, &granularity, &risk,
			&run.ForwardPeriods, &run.HistoryPeriods, &netWorth, &run.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Label = label.String
		run.RecordedAt = time.Unix(recordedAt, 0).UTC()
		if run.Start, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("run %s: bad start %q: %w", run.ID, start, err)
		}
		run.Granularity = domain.Granularity(granularity)
		run.RiskTolerance = domain.RiskTolerance(risk)
		if run.FinalNetWorth, err = decimal.NewFromString(netWorth); err != nil {
			return nil, fmt.Errorf("run %s: bad net worth %q: %w", run.ID, netWorth, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadRun decodes the stored result of one run.
func (r *SQLiteRecorder) LoadRun(ctx context.Context, id string) (*domain.ProjectionResult, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT result_json FROM runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var result domain.ProjectionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &result, nil
}

// SnapshotCount returns the number of snapshot rows stored for a run.
func (r *SQLiteRecorder) SnapshotCount(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE run_id = ?`, id).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
