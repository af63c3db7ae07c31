package cli

import (
	"fmt"
	"time"

	"github.com/okian/podium/internal/probe"
	"github.com/spf13/cobra"
)

func newProbeCommand(opts *rootOptions) *cobra.Command {
	var cfg probe.Config
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check a running server for filter and aggregate consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := probe.Run(cmd.Context(), cfg, opts.log)
			for _, f := range report.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", f)
			}
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "replay with --seed %d\n", report.Seed)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d checks over %d rounds in %s (seed %d)\n",
				report.Checks, report.Rounds, report.Duration.Round(time.Millisecond), report.Seed)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", probe.DefaultBaseURL, "base URL of the server")
	cmd.Flags().IntVar(&cfg.Rounds, "rounds", probe.DefaultRounds, "randomized filter rounds")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "seed for picking filter values (default: clock)")
	return cmd
}
