package commands

import (
	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *globalOptions) *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balances by account type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			a.printf("%s\n", a.format.Summary(a.session.Summary()))
			return nil
		},
	}
	summaryCmd.AddCommand(newSummarySaveCommand(opts))
	return summaryCmd
}

func newSummarySaveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Append the current summary to history.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			snap, err := a.session.SnapshotSummary()
			if err != nil {
				return err
			}
			a.commit("summary: save snapshot", a.cfg.HistoryPath())

			a.printf("Saved summary #%d (total %s)\n", len(a.session.History())-1, a.format.Money(snap.Total))
			return nil
		},
	}
}
