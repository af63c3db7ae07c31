// Package cli contains the podiumctl commands.
package cli

import (
	"context"
	"fmt"
	"os"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds the state shared by every subcommand.
type rootOptions struct {
	logLevel  string
	logFormat string
	log       logger.Logger
}

// NewRootCommand builds the podiumctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "podiumctl",
		Short: "Query the Olympic athlete-events dataset",
		Long: `podiumctl answers the dashboard queries on a dataset file without a
server, and probes a running server for consistency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logger.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			opts.log = logger.New(
				logger.WithFormat(opts.logFormat),
				logger.WithLevel(level),
				logger.WithWriter(cmd.ErrOrStderr()),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", logger.FormatText, "log format (text, json)")

	root.AddCommand(
		newDomainsCommand(opts),
		newExportCommand(opts),
		newViewCommand(opts),
		newSummaryCommand(opts),
		newProbeCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open loads the dataset at path into a fresh service.
func (o *rootOptions) open(ctx context.Context, path string, extra ...service.Option) (*service.Service, error) {
	opts := append([]service.Option{
		service.WithDataPath(path),
		service.WithLogger(o.log),
	}, extra...)
	svc := service.New(opts...)
	if _, err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// defaultDataPath matches the server's data_path default.
func defaultDataPath() string {
	return config.New().DataPath
}
