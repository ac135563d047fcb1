package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	debug   bool
	// Column-mapping overrides (override config if set)
	flagSourceCol  string
	flagStatusCol  string
	flagValueCol   string
	flagCreatedCol string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "leadscope",
	Short: "LeadScope CLI: clean, analyze, and report on lead datasets",
	Long:  `LeadScope loads a lead/customer dataset from a CSV, TSV, or XLSX file, cleans it, computes conversion and breakdown statistics, renders chart dashboards, and exports cleaned data and reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation drops into the interactive menu.
		return runMenu(cmd, args)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.leadscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSourceCol, "source-col", "", "source column header (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStatusCol, "status-col", "", "status column header (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagValueCol, "value-col", "", "value column header (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCreatedCol, "created-col", "", "created-date column header (overrides config)")
}

// warnTruncated reports rows that were wider than the header.
func warnTruncated(t *dataset.Table) {
	if t.Truncated > 0 {
		fmt.Fprintf(os.Stderr, "⚠ %d row(s) had more cells than the header; extra cells dropped\n", t.Truncated)
	}
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so one-shot commands still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("source-col") && flagSourceCol != "" {
		cfg.Columns.Source = flagSourceCol
	}
	if f.Changed("status-col") && flagStatusCol != "" {
		cfg.Columns.Status = flagStatusCol
	}
	if f.Changed("value-col") && flagValueCol != "" {
		cfg.Columns.Value = flagValueCol
	}
	if f.Changed("created-col") && flagCreatedCol != "" {
		cfg.Columns.Created = flagCreatedCol
	}
}
