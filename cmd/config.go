package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/leadscope/leadscope-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set LeadScope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("columns.identifier: %s\n", cfg.Columns.Identifier)
		fmt.Printf("columns.source: %s\n", cfg.Columns.Source)
		fmt.Printf("columns.status: %s\n", cfg.Columns.Status)
		fmt.Printf("columns.value: %s\n", cfg.Columns.Value)
		fmt.Printf("columns.created: %s\n", cfg.Columns.Created)
		fmt.Printf("columns.email: %s\n", cfg.Columns.Email)
		fmt.Printf("converted_status: %s\n", cfg.ConvertedStatus)
		fmt.Printf("unknown_label: %s\n", cfg.UnknownLabel)
		if cfg.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", cfg.Delimiter)
		}
		if cfg.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Printf("fill_value_zero: %t\n", cfg.FillValueZero)
		fmt.Printf("csv_bom: %t\n", cfg.CSVBOM)
		fmt.Printf("export_dir: %s\n", cfg.ExportDir)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		fmt.Printf("value_bins: %d\n", cfg.ValueBins)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "columns.identifier":
			cfg.Columns.Identifier = val
		case "columns.source":
			cfg.Columns.Source = val
		case "columns.status":
			cfg.Columns.Status = val
		case "columns.value":
			cfg.Columns.Value = val
		case "columns.created":
			cfg.Columns.Created = val
		case "columns.email":
			cfg.Columns.Email = val
		case "converted_status":
			cfg.ConvertedStatus = strings.ToLower(val)
		case "unknown_label":
			cfg.UnknownLabel = strings.ToLower(val)
		case "delimiter":
			switch val {
			case ",", ";", "tab":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("unsupported delimiter: %s (use ','|';'|'tab')", val)
			}
		case "sheet_name":
			cfg.SheetName = val
		case "fill_value_zero":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("parse bool: %w", err)
			}
			cfg.FillValueZero = b
		case "csv_bom":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("parse bool: %w", err)
			}
			cfg.CSVBOM = b
		case "export_dir":
			cfg.ExportDir = val
		case "sample_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("sample_rows must be a non-negative integer")
			}
			cfg.SampleRows = n
		case "value_bins":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("value_bins must be a positive integer")
			}
			cfg.ValueBins = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
