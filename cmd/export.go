package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadscope/leadscope-cli/internal/charts"
	"github.com/leadscope/leadscope-cli/internal/export"
	"github.com/leadscope/leadscope-cli/internal/session"
)

var (
	expFormat    string
	expOut       string
	expSummary   bool
	expDashboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Load, clean, and export a dataset and its analysis report",
	Long: `Export loads and cleans a dataset, then writes the cleaned data and
analysis report without entering the interactive menu.

Examples:
  leadscope export leads.csv --format csv --out cleaned.csv
  leadscope export leads.csv --format xlsx --out report.xlsx --dashboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if expFormat != "csv" && expFormat != "xlsx" {
			return fmt.Errorf("invalid format: must be 'csv' or 'xlsx'")
		}

		sess := session.New(cfg)
		loaded, err := sess.Load(args[0])
		if err != nil {
			return err
		}
		warnTruncated(loaded)
		if _, err := sess.Clean(); err != nil {
			return err
		}
		t, err := sess.CleanedTable()
		if err != nil {
			return err
		}
		res, err := sess.Analyze()
		if err != nil {
			return err
		}

		now := time.Now()
		stamp := now.Format("20060102_150405")
		out := expOut
		if out == "" {
			out = filepath.Join(cfg.ExportDir, "cleaned_leads_"+stamp+"."+expFormat)
		}

		switch expFormat {
		case "csv":
			if err := export.WriteCSV(t, cfg, out); err != nil {
				return err
			}
		case "xlsx":
			if err := export.WriteWorkbook(t, res, cfg, out); err != nil {
				return err
			}
		}
		fmt.Printf("✓ Cleaned data exported to %s\n", out)

		if expSummary {
			summaryPath := filepath.Join(filepath.Dir(out), "lead_summary_"+stamp+".txt")
			if err := export.WriteSummary(t, res, cfg, summaryPath, now); err != nil {
				return err
			}
			fmt.Printf("✓ Summary report exported to %s\n", summaryPath)
		}
		if expDashboard {
			chartPath := filepath.Join(filepath.Dir(out), "lead_analysis_charts.xlsx")
			if err := charts.WriteDashboard(res, chartPath); err != nil {
				return err
			}
			fmt.Printf("✓ Charts saved to %s\n", chartPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "csv", "output format (csv or xlsx)")
	exportCmd.Flags().StringVarP(&expOut, "out", "o", "", "destination path (default: export_dir with a timestamped name)")
	exportCmd.Flags().BoolVar(&expSummary, "summary", true, "also write the plain-text summary report")
	exportCmd.Flags().BoolVar(&expDashboard, "dashboard", false, "also render the chart dashboard workbook")
}
