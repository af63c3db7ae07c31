package cli

import (
	"encoding/json"

	"github.com/okian/podium/internal/domain/domainindex"
	"github.com/spf13/cobra"
)

func newDomainsCommand(opts *rootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Print the selectable values of every filter dimension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.open(cmd.Context(), data)
			if err != nil {
				return err
			}
			idx, err := svc.Domains(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, struct {
				domainindex.Index
				CountryChoices []domainindex.Choice `json:"country_choices"`
			}{idx, idx.CountryChoices()})
		},
	}
	cmd.Flags().StringVar(&data, "data", defaultDataPath(), "athlete-events CSV file")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
