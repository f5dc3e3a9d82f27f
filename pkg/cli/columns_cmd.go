package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newColumnsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns the server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols, err := opts.client.Columns(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), cols)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSORTABLE\tFILTERABLE")
			for _, c := range cols {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", c.ID, c.Title, c.Type, c.Sortable, c.Filterable)
			}
			return tw.Flush()
		},
	}
}
