package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rpgo/cashflow-projector/internal/calculation"
	"github.com/rpgo/cashflow-projector/internal/config"
	"github.com/rpgo/cashflow-projector/internal/domain"
	"github.com/rpgo/cashflow-projector/internal/output"
	"github.com/rpgo/cashflow-projector/internal/recorder"
	"github.com/rpgo/cashflow-projector/pkg/dateutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type projectOptions struct {
	configPath   string
	mergePath    string
	periods      int
	history      int
	granularity  string
	start        string
	format       string
	outputDir    string
	record       bool
	dbPath       string
	label        string
	scenariosDir string
}

func newProjectCmd(a *app) *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a projection and render a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProject(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "profile document (YAML or JSON)")
	f.StringVar(&opts.mergePath, "merge", "", "profile update document merged before projecting")
	f.IntVar(&opts.periods, "periods", 0, "forward periods (overrides the document)")
	f.IntVar(&opts.history, "history", 0, "trailing history periods (overrides the document)")
	f.StringVar(&opts.granularity, "granularity", "", "monthly, quarterly or yearly (overrides the document)")
	f.StringVar(&opts.start, "start", "", "projection start month, YYYY-MM (overrides the document)")
	f.StringVarP(&opts.format, "format", "f", envOr(envFormat, "console"), "report format")
	f.StringVarP(&opts.outputDir, "output", "o", "", "write the report to a timestamped file in this directory")
	f.BoolVar(&opts.record, "record", false, "store the run in the SQLite run database")
	f.StringVar(&opts.dbPath, "db", envOr(envDatabase, "finproj.db"), "SQLite run database")
	f.StringVar(&opts.label, "label", "", "label stored with a recorded run")
	f.StringVar(&opts.scenariosDir, "scenarios-dir", "", "also write scenario summary and detail CSVs to this directory")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func (a *app) runProject(cmd *cobra.Command, opts *projectOptions) error {
	formatter, err := output.LookupFormatter(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(opts.configPath, opts.mergePath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg, opts); err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(a.logger)

	result, err := engine.RunConfiguration(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if opts.outputDir != "" {
		path, err := output.GenerateReport(result, opts.format, opts.outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	} else if err := output.Render(cmd.OutOrStdout(), formatter, result); err != nil {
		return err
	}

	if opts.scenariosDir != "" {
		if err := writeScenarioReports(result, opts.scenariosDir); err != nil {
			return err
		}
	}

	if opts.record {
		id, err := a.recordRun(cmd.Context(), opts, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s\n", id)
	}
	return nil
}

func loadConfiguration(configPath, mergePath string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if mergePath == "" {
		return cfg, nil
	}

	update, err := parser.LoadUpdateFromFile(mergePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile update: %w", err)
	}
	cfg.Profile = *cfg.Profile.Merge(*update)
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("merged profile is invalid: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cmd *cobra.Command, cfg *domain.Configuration, opts *projectOptions) error {
	flags := cmd.Flags()
	if flags.Changed("periods") {
		cfg.Projection.ForwardPeriods = opts.periods
	}
	if flags.Changed("history") {
		cfg.Projection.HistoryPeriods = opts.history
	}
	if flags.Changed("granularity") {
		cfg.Projection.Granularity = domain.Granularity(opts.granularity)
	}
	if flags.Changed("start") {
		start, err := dateutil.ParseMonth(opts.start)
		if err != nil {
			return err
		}
		cfg.Projection.Start = start
	}
	return cfg.Projection.Validate(cfg.Profile.Granularity)
}

func writeScenarioReports(result *domain.ProjectionResult, dir string) error {
	report := &output.ScenarioCSVReport{Result: result}
	if err := report.GenerateSummaryCSV(filepath.Join(dir, "scenario_summary.csv")); err != nil {
		return err
	}
	return report.GenerateDetailedCSV(filepath.Join(dir, "scenario_detail.csv"))
}

func (a *app) recordRun(ctx context.Context, opts *projectOptions, result *domain.ProjectionResult) (string, error) {
	rec, err := recorder.NewSQLiteRecorder(opts.dbPath, a.logger.WithField("component", "recorder"))
	if err != nil {
		return "", err
	}
	defer rec.Close()

	id, err := rec.RecordRun(ctx, opts.label, result)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	a.logger.WithFields(logrus.Fields{"run_id": id, "db": opts.dbPath}).Info("run recorded")
	return id, nil
}
