package cli

import (
	service "github.com/okian/podium/internal/app"
	"github.com/spf13/cobra"
)

func newViewCommand(opts *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		buckets int
		topN    int
	)
	names := make([]string, 0, len(service.Views))
	for _, v := range service.Views {
		names = append(names, string(v))
	}

	cmd := &cobra.Command{
		Use:       "view NAME",
		Short:     "Print one dashboard view as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.open(cmd.Context(), filters.data,
				service.WithHistogramBuckets(buckets),
				service.WithDonutTopN(topN),
			)
			if err != nil {
				return err
			}
			result, err := svc.View(cmd.Context(), args[0], filters.query(cmd))
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVar(&buckets, "buckets", 50, "age histogram bucket count")
	cmd.Flags().IntVar(&topN, "top", 15, "teams kept in the medal donut")
	return cmd
}
