package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const exportFilePermission = 0o644

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered records as CSV",
		Long:  `Write every record matching the filters as CSV. An empty selection writes the header only.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.open(cmd.Context(), filters.data)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, exportFilePermission)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer func() {
					_ = f.Close()
				}()
				w = f
			}

			n, err := svc.Export(cmd.Context(), w, filters.query(cmd))
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", n, out)
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
