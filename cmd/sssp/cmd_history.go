package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists the runs kept in the run store, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(a.storeURI, a.logger)
			if err != nil {
				return err
			}
			defer closeStore(store, a.logger)

			now := time.Now()
			it, err := store.Runs(now.Add(time.Second))
			if err != nil {
				return err
			}
			defer func() { _ = it.Close() }()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tVERTICES\tSOURCE\tROUNDS\tELAPSED")

			for it.Next() {
				run := it.Run()
				if since > 0 && run.CreatedAt.Before(now.Add(-since)) {
					continue
				}

				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					run.ID,
					run.CreatedAt.Format(time.RFC3339),
					len(run.Matrix),
					run.Source,
					run.Rounds,
					run.Elapsed,
				)
			}

			if err := it.Error(); err != nil {
				return fmt.Errorf("history: %w", err)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().DurationVar(&since, "since", 0, "Only list runs created within this duration, e.g. 24h")

	return cmd
}
