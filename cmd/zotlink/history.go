// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotlink/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded linking runs",
	Long: `History lists past linking runs with their bucket counts, newest
first. Use --run with a run ID to show the per-note outcomes of one run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show per-note outcomes for this run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("db", "", "history database path (default from config)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetInt64("run")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("history.path")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if runID > 0 {
		notes, err := store.NoteOutcomes(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(notes)
		}
		for _, rec := range notes {
			switch {
			case rec.PDF != nil:
				fmt.Fprintf(os.Stdout, "%-10s %s -> %s\n", rec.Outcome, rec.Name, rec.PDF.ItemID)
			case rec.Err != "":
				fmt.Fprintf(os.Stdout, "%-10s %s (%s)\n", rec.Outcome, rec.Name, rec.Err)
			default:
				fmt.Fprintf(os.Stdout, "%-10s %s\n", rec.Outcome, rec.Name)
			}
		}
		fmt.Fprintf(os.Stdout, "\n%d notes\n", len(notes))
		return nil
	}

	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return encodeJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-5s  %-6s  %-6s  %-9s  %-7s  %-6s\n",
		"ID", "Started", "Dry", "Linked", "Fuzzy", "Unmatched", "Skipped", "Failed")
	for _, r := range runs {
		dry := ""
		if r.DryRun {
			dry = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-5s  %-6d  %-6d  %-9d  %-7d  %-6d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), dry,
			r.Matched, r.FuzzyMatched, r.Unmatched, r.Skipped, r.Failed)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func encodeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
