package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kubev2v/workpark/internal/config"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/store"
)

func newHistoryCmd(cfg *config.Configuration) *cobra.Command {
	var (
		modes    []string
		statuses []string
		limit    uint64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.DataFolder == "" {
				return fmt.Errorf("--%s is required to read the run history", config.KeyDataFolder)
			}
			for _, m := range modes {
				if _, err := models.ParseRunMode(m); err != nil {
					return err
				}
			}

			st, err := openStore(cmd.Context(), cfg.DataFolder)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Runs().List(cmd.Context(),
				store.ByMode(modes...),
				store.ByStatus(statuses...),
				store.WithLimit(limit),
			)
			if err != nil {
				return err
			}

			printHistory(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&modes, "filter-mode", nil, "Only show runs of these modes")
	cmd.Flags().StringSliceVar(&statuses, "filter-status", nil, "Only show runs with these statuses")
	cmd.Flags().Uint64Var(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func printHistory(out io.Writer, runs []models.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs stored")
		return
	}

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tMODE\tWORKERS\tROUNDS\tWAKEUPS\tDURATION\tSTATUS")
	for _, r := range runs {
		status := green(r.Status)
		if r.Status != models.RunStatusCompleted {
			status = red(r.Status)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d/%d\t%s\t%s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Workers, r.Rounds,
			r.Observed, r.Expected, r.Duration, status)
	}
	_ = w.Flush()
}
