// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zotlink CLI, which links
// markdown notes to Zotero PDF records by filename matching.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the zotlink CLI.
var rootCmd = &cobra.Command{
	Use:   "zotlink",
	Short: "Link markdown notes to Zotero PDF records",
	Long: `zotlink matches note filenames against the PDFs in a Zotero storage
directory and inserts a deep link into each matched note:

    [Open in Zotero](zotero://open-pdf/library/items/<item-key>)

Matching normalizes both filenames (author prefix, year runs, and
punctuation removed) and accepts exact or near-identical tokens. The
link always lands on line 6 of the note, and notes that already carry
one are skipped, so repeated runs are safe.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./zotlink.yaml or ~/.config/zotlink/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zotlink")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zotlink"))
		}
	}

	viper.SetDefault("history.path", defaultHistoryPath())
	viper.SetDefault("watch.debounce", "500ms")

	viper.SetEnvPrefix("ZOTLINK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryPath places the run-history database under the user's
// state directory, falling back to the working directory.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "zotlink-history.db"
	}
	return filepath.Join(home, ".local", "state", "zotlink", "history.db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
