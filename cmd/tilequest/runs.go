package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/plus3/tilequest/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagRunsLimit  int
	flagRunsRecent bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Shows the best runs by gold, or the most recent ones with --recent.

Examples:
  tilequest runs
  tilequest runs -n 20 --recent`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Order by finish time instead of gold")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var runs []store.Run
	if flagRunsRecent {
		runs, err = db.RecentRuns(flagRunsLimit)
	} else {
		runs, err = db.TopRuns(flagRunsLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tGOLD\tLEVELS\tTIME\tFINISHED")
	for i, run := range runs {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", i+1, run.Gold, run.Levels,
			run.Duration.Round(100*time.Millisecond), run.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
