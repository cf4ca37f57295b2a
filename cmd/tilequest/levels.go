package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/plus3/tilequest/internal/levels"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	catalog, err := levels.Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTILES\tNEXT")
	for _, level := range catalog.All() {
		next := level.Next
		if next == "" {
			next = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", level.Id, level.Name, len(level.Tiles), next)
	}
	return w.Flush()
}
