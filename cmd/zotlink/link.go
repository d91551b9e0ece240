// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotlink/internal/history"
	"github.com/pdiddy/zotlink/internal/scan"
	"github.com/pdiddy/zotlink/internal/watch"
	"github.com/pdiddy/zotlink/pkg/types"
)

var linkCmd = &cobra.Command{
	Use:   "link <library-dir> <notes-dir>",
	Short: "Scan notes and insert Zotero deep links into matched ones",
	Long: `Link walks the notes tree, matches each note filename against the PDFs
in Zotero storage, and inserts a deep link into every matched note.
Notes already carrying a link on line 6 are skipped; notes with no
plausible PDF are reported as unmatched and left untouched.

With --dry-run every outcome is computed and reported identically but
no file is written. With --watch the command stays resident and
re-scans whenever the notes tree or the library changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().BoolP("dry-run", "n", false, "preview outcomes without writing any note")
	linkCmd.Flags().String("include", scan.DefaultIncludePattern, "note glob pattern, relative to the notes root")
	linkCmd.Flags().String("report", "", "write a YAML run report to this path")
	linkCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")
	linkCmd.Flags().Bool("watch", false, "stay resident and re-scan on filesystem changes")

	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	include, _ := cmd.Flags().GetString("include")
	reportPath, _ := cmd.Flags().GetString("report")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	watchMode, _ := cmd.Flags().GetBool("watch")

	cfg := types.LinkConfig{
		LibraryDir:     args[0],
		NotesDir:       args[1],
		DryRun:         dryRun,
		IncludePattern: include,
		ReportPath:     reportPath,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkRoots(cfg); err != nil {
		return err
	}

	hist := types.HistoryConfig{
		Path:     viper.GetString("history.path"),
		Disabled: noHistory || viper.GetBool("history.disabled"),
	}

	runOnce := func() error {
		sum, err := scan.Run(cfg, os.Stdout)
		if err != nil {
			return err
		}
		if cfg.ReportPath != "" {
			if err := scan.WriteReport(cfg.ReportPath, cfg, sum); err != nil {
				return fmt.Errorf("writing run report: %w", err)
			}
			fmt.Fprintf(os.Stdout, "\nReport written to %s\n", cfg.ReportPath)
		}
		recordHistory(hist, cfg, sum)
		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := viper.GetDuration("watch.debounce")
	fmt.Fprintf(os.Stderr, "Watching %s and %s (debounce %s, Ctrl-C to stop)\n",
		cfg.LibraryDir, cfg.NotesDir, debounceString(debounce))

	return watch.Watch(ctx, []string{cfg.LibraryDir, cfg.NotesDir}, debounce, func() {
		if err := runOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "rescan failed: %v\n", err)
		}
	})
}

// checkRoots verifies the library is a readable directory and the notes
// root is a directory this process can write into (unless dry-run, where
// only readability matters). Failures here abort before any scanning.
func checkRoots(cfg types.LinkConfig) error {
	info, err := os.Stat(cfg.LibraryDir)
	if err != nil {
		return fmt.Errorf("library storage %s: %w", cfg.LibraryDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library storage %s is not a directory", cfg.LibraryDir)
	}

	info, err = os.Stat(cfg.NotesDir)
	if err != nil {
		return fmt.Errorf("notes root %s: %w", cfg.NotesDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("notes root %s is not a directory", cfg.NotesDir)
	}

	if !cfg.DryRun {
		probe, err := os.CreateTemp(cfg.NotesDir, ".zotlink-probe-*")
		if err != nil {
			return fmt.Errorf("notes root %s is not writable: %w", cfg.NotesDir, err)
		}
		probe.Close()
		os.Remove(probe.Name())
	}
	return nil
}

// recordHistory appends the run to the history database. Recording is
// best-effort: a failure becomes a warning, never a scan failure.
func recordHistory(hist types.HistoryConfig, cfg types.LinkConfig, sum scan.Summary) {
	if hist.Disabled {
		return
	}
	store, err := history.Open(hist.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(context.Background(), cfg, sum); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run failed: %v\n", err)
	}
}

func debounceString(d time.Duration) string {
	if d <= 0 {
		return watch.DefaultDebounce.String()
	}
	return d.String()
}
