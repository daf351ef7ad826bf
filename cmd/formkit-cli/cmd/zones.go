package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/components/timezones"
)

func newZonesCommand(_ *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "zones [QUERY]",
		Short: "Search the timezone choices offered by the demo form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			component := timezones.New(timezones.WithEmptySearchMode(timezones.EmptySearchTop))
			found, err := component.Search(strings.Join(args, ""), limit)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No options found")
				return nil
			}
			for _, zone := range found {
				fmt.Fprintln(cmd.OutOrStdout(), zone)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results")
	return cmd
}
