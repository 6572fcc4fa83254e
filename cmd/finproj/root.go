package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	envLogLevel  = "FINPROJ_LOG_LEVEL"
	envLogFormat = "FINPROJ_LOG_FORMAT"
	envFormat    = "FINPROJ_FORMAT"
	envDatabase  = "FINPROJ_DB"
)

// app holds the state shared by every subcommand.
type app struct {
	logLevel  string
	logFormat string
	logger    *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logrus.New()}

	root := &cobra.Command{
		Use:          "finproj",
		Short:        "Multi-period personal cash flow projections",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configureLogger(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr(envLogLevel, "warn"), "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", envOr(envLogFormat, "text"), "log format (text or json)")

	root.AddCommand(
		newProjectCmd(a),
		newValidateCmd(a),
		newPayoffCmd(a),
		newExampleCmd(a),
		newRunsCmd(a),
		newFormatsCmd(),
	)
	return root
}

func (a *app) configureLogger(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}
	a.logger.SetLevel(level)
	a.logger.SetOutput(cmd.ErrOrStderr())

	switch strings.ToLower(a.logFormat) {
	case "json":
		a.logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q: expected text or json", a.logFormat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
