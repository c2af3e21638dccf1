package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/state"
)

// newRunsCommand creates the runs command.
func newRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent resolution runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.StatePath == "" {
				return fmt.Errorf("no state path configured")
			}
			if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No resolution runs recorded")
				return nil
			}

			store := state.NewSQLiteStore(logger)
			if err := store.Open(cfg.StatePath); err != nil {
				return fmt.Errorf("failed to open state database: %w", err)
			}
			defer store.Close()
			if err := store.InitSchema(); err != nil {
				return err
			}

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resolution runs recorded")
				return nil
			}

			for _, r := range runs {
				dur := ""
				if r.CompletedAt != nil {
					dur = r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %3d targets %2d facades  %s\n",
					r.StartedAt.Format(time.RFC3339), r.Status, r.Targets, r.Facades, dur)
				if r.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", r.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}
