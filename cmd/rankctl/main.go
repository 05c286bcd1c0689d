package main

import (
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rankctl",
		Short:         "Pushup rank tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `rankctl computes pushup ranks offline, prints the rank and difficulty tables,
and applies the database schema.`,
	}
	root.AddCommand(newRankCmd(), newTableCmd(), newMigrateCmd())
	return root
}
