package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scoutctl",
		Short:        "Operate the scout gateway data and inspect lineups",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSeedCmd(),
		newLineupCmd(),
		newRankingCmd(),
		newAggregateCmd(),
	)
	return root
}
