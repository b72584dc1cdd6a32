package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dirok/internal/platform/logger"
)

const Version = "0.1.0"

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "dirok",
		Short: "dirok - certainty-factor diagnosis of smoking-related diseases",
		Long: `dirok ranks smoking-related diseases from reported symptoms using
certainty-factor inference, adjusts the ranking by smoking exposure and
produces a summary with recommendations.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newDiagnoseCmd(opts))
	cmd.AddCommand(newKBCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// Execute runs the CLI against os.Args.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func (o *rootOptions) logger() *slog.Logger {
	return logger.New(o.logLevel, o.logFormat)
}
