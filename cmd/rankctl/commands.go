package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/jason-s-yu/pushups/internal/config"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/rank"
	"github.com/spf13/cobra"
)

func newRankCmd() *cobra.Command {
	var (
		total      int
		maxSet     int
		difficulty string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "rank [count]",
		Short: "Compute the rank for a pushup count or for total/max-set totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				count, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be an integer: %q", args[0])
				}
				if difficulty != "" {
					if !pushup.KnownDifficulty(difficulty) {
						return fmt.Errorf("unknown difficulty %q (see rankctl table)", difficulty)
					}
					count = pushup.EffectiveCount(count, difficulty)
				}
				total = max(total, count)
			}

			info, err := rank.Calculate(total, maxSet)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(struct {
					rank.Info
					FormattedRank string `json:"formattedRank"`
				}{info, info.FormattedRank()})
			}

			next := "max"
			if info.NextThreshold != nil {
				next = fmt.Sprint(*info.NextThreshold)
			}
			fmt.Fprintf(out, "%s (%d%%, next at %s)\n", info.FormattedRank(), info.Progress, next)
			return nil
		},
	}
	cmd.Flags().IntVar(&total, "total", 0, "cumulative pushups")
	cmd.Flags().IntVar(&maxSet, "max-set", 0, "largest single set")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "weight the count by a difficulty level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the rank thresholds and difficulty modifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "THRESHOLD\tRANK")
			for _, st := range rank.Default().Steps() {
				fmt.Fprintf(w, "%d\t%s\n", st.Threshold, rank.FormatName(st.Tier, st.Level))
			}
			fmt.Fprintf(w, "\t(%s widens every %d up to level %d)\n", rank.Diamond, rank.DiamondLevelWidth, rank.DiamondMaxLevel)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "DIFFICULTY\tMODIFIER")
			for _, d := range pushup.Difficulties() {
				fmt.Fprintf(w, "%s\t%.1f\n", d.Value, d.Modifier)
			}
			return w.Flush()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				fmt.Fprint(cmd.OutOrStdout(), database.Schema())
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := database.Connect(cmd.Context(), cfg.PostgresURL())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the schema instead of applying it")
	return cmd
}
