package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the overview figures of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.open(cmd.Context(), filters.data)
			if err != nil {
				return err
			}
			s, err := svc.Summary(cmd.Context(), filters.query(cmd))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, row := range []struct {
				label string
				value int
			}{
				{"Editions", s.Editions},
				{"Host cities", s.HostCities},
				{"Medals", s.Medals},
				{"Athletes", s.Athletes},
				{"Nations", s.Nations},
				{"Sports", s.Sports},
				{"Showing", s.Showing},
			} {
				fmt.Fprintf(w, "%s\t%s\n", row.label, humanize.Comma(int64(row.value)))
			}
			return w.Flush()
		},
	}
	filters.register(cmd)
	return cmd
}
