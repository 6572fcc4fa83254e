package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/cashflow-projector/internal/calculation"
	"github.com/rpgo/cashflow-projector/internal/config"
	"github.com/rpgo/cashflow-projector/internal/output"
	"github.com/rpgo/cashflow-projector/internal/recorder"
	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newValidateCmd(a *app) *cobra.Command {
	var configPath, mergePath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a profile document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(configPath, mergePath)
			if err != nil {
				return err
			}
			totals := calculation.ComputeTotals(&cfg.Profile)
			a.logger.WithField("config", configPath).Debug("configuration validated")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration is valid")
			fmt.Fprintf(out, "Monthly income:   %s\n", money.Format(totals.MonthlyIncome))
			fmt.Fprintf(out, "Monthly expenses: %s\n", money.Format(totals.MonthlyExpenses))
			fmt.Fprintf(out, "Monthly surplus:  %s\n", money.Format(totals.MonthlySurplus))
			fmt.Fprintf(out, "Total debt:       %s\n", money.Format(totals.TotalDebtBalance))
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "profile document (YAML or JSON)")
	cmd.Flags().StringVar(&mergePath, "merge", "", "profile update document merged before validating")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newPayoffCmd(a *app) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Estimate months to pay off each debt account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(configPath, "")
			if err != nil {
				return err
			}
			engine := calculation.NewCalculationEngine()
			engine.SetLogger(a.logger)
			estimates, err := engine.PayoffEstimates(&cfg.Profile)
			if err != nil {
				return err
			}
			if len(estimates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No debt accounts")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tMONTHS\tINTEREST")
			for _, e := range estimates {
				months := "never"
				interest := "-"
				if e.Payable {
					months = fmt.Sprintf("%d", e.Months)
					interest = money.Format(e.TotalInterest)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, months, interest)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "profile document (YAML or JSON)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print or save a sample profile document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			example := config.NewInputParser().CreateExampleConfiguration()
			if outputPath != "" {
				if err := output.SaveConfiguration(example, outputPath); err != nil {
					return err
				}
				a.logger.WithField("path", outputPath).Info("example configuration written")
				fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", outputPath)
				return nil
			}
			data, err := yaml.Marshal(example)
			if err != nil {
				return fmt.Errorf("failed to marshal example: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to this file instead of stdout")
	return cmd
}

func newRunsCmd(a *app) *cobra.Command {
	var dbPath string
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded projection runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := recorder.NewSQLiteRecorder(dbPath, a.logger.WithField("component", "recorder"))
			if err != nil {
				return err
			}
			defer rec.Close()

			runs, err := rec.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRECORDED\tLABEL\tSTART\tPERIODS\tFINAL NET WORTH\tWARNINGS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d %s\t%s\t%d\n",
					r.ID, r.RecordedAt.Format("2006-01-02 15:04"), r.Label,
					r.Start.Format("2006-01"), r.ForwardPeriods, r.Granularity,
					money.Format(r.FinalNetWorth), r.Warnings)
			}
			return tw.Flush()
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", envOr(envDatabase, "finproj.db"), "SQLite run database")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 for all)")

	var format string
	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Render a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.LookupFormatter(format)
			if err != nil {
				return err
			}
			rec, err := recorder.NewSQLiteRecorder(dbPath, a.logger.WithField("component", "recorder"))
			if err != nil {
				return err
			}
			defer rec.Close()

			result, err := rec.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), formatter, result)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", envOr(envFormat, "console"), "report format")
	cmd.AddCommand(show)
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
