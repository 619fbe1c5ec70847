package commands

import (
	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	var series bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved summary snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			if len(a.session.History()) == 0 {
				a.printf("No saved summaries yet. Save one with: fintrack summary save\n")
				return nil
			}
			if series {
				a.printf("%s\n", a.format.Series(a.session.HistoryAsSeries()))
				return nil
			}
			a.printf("%s\n", a.format.History(a.session.History()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&series, "series", false, "show one row per figure with a column per snapshot")

	return cmd
}
