package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/leadscope/leadscope-cli/internal/analysis"
	"github.com/leadscope/leadscope-cli/internal/charts"
	"github.com/leadscope/leadscope-cli/internal/export"
	"github.com/leadscope/leadscope-cli/internal/session"
)

const defaultSamplePath = "data/sample_leads.csv"

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu for loading, cleaning, analyzing, and exporting",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuItems = []string{
	"Load file",
	"Clean data",
	"Calculate conversion rate",
	"Analyze by source",
	"Analyze by status",
	"Analyze trends (daily/weekly)",
	"Create visualizations",
	"Export report (CSV)",
	"Export report (Excel)",
	"Show data summary",
	"Exit",
}

func runMenu(cmd *cobra.Command, args []string) error {
	sess := session.New(cfg)
	fmt.Println("LeadScope: lead dataset analysis")

	for {
		prompt := promptui.Select{
			Label: "Main menu",
			Items: menuItems,
			Size:  len(menuItems),
		}
		idx, _, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return err
		}

		var actionErr error
		switch idx {
		case 0:
			actionErr = menuLoad(sess)
		case 1:
			actionErr = menuClean(sess)
		case 2:
			actionErr = withResults(sess, func(res export.Results) {
				fmt.Print(analysis.RenderConversion(res.Conversion))
			})
		case 3:
			actionErr = withResults(sess, func(res export.Results) {
				fmt.Print(analysis.RenderSourceBreakdown(res.BySource))
			})
		case 4:
			actionErr = withResults(sess, func(res export.Results) {
				fmt.Print(analysis.RenderStatusBreakdown(res.ByStatus))
			})
		case 5:
			actionErr = withResults(sess, func(res export.Results) {
				fmt.Print(analysis.RenderTrends(res.Daily, res.Weekly))
			})
		case 6:
			actionErr = menuCharts(sess)
		case 7:
			actionErr = menuExport(sess, "csv")
		case 8:
			actionErr = menuExport(sess, "xlsx")
		case 9:
			actionErr = menuSummary(sess)
		case 10:
			fmt.Println("Bye! Check your exported reports.")
			return nil
		}
		if actionErr != nil {
			// Component errors abort the action, never the session.
			fmt.Fprintf(os.Stderr, "⚠ %v\n", actionErr)
		}
	}
}

func menuLoad(sess *session.Session) error {
	prompt := promptui.Prompt{
		Label:   "File path (.csv/.tsv/.xlsx)",
		Default: defaultSamplePath,
	}
	path, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return nil
		}
		return err
	}
	t, err := sess.Load(path)
	if err != nil {
		return err
	}
	warnTruncated(t)
	fmt.Printf("✓ Loaded %d leads from %s (%d columns)\n", t.Len(), path, len(t.Schema.Columns))
	return nil
}

func menuClean(sess *session.Session) error {
	sum, err := sess.Clean()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Data cleaned: %s\n", sum)
	return nil
}

func withResults(sess *session.Session, show func(export.Results)) error {
	res, err := sess.Analyze()
	if err != nil {
		return err
	}
	show(res)
	return nil
}

func menuCharts(sess *session.Session) error {
	res, err := sess.Analyze()
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.ExportDir, "lead_analysis_charts.xlsx")
	if err := charts.WriteDashboard(res, path); err != nil {
		return err
	}
	fmt.Printf("✓ Charts saved to %s\n", path)
	return nil
}

func menuExport(sess *session.Session, format string) error {
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

	var dataPath string
	switch format {
	case "csv":
		dataPath = filepath.Join(cfg.ExportDir, "cleaned_leads_"+stamp+".csv")
		if err := export.WriteCSV(t, cfg, dataPath); err != nil {
			return err
		}
	case "xlsx":
		dataPath = filepath.Join(cfg.ExportDir, "cleaned_leads_"+stamp+".xlsx")
		if err := export.WriteWorkbook(t, res, cfg, dataPath); err != nil {
			return err
		}
	}
	fmt.Printf("✓ Cleaned data exported to %s\n", dataPath)

	summaryPath := filepath.Join(cfg.ExportDir, "lead_summary_"+stamp+".txt")
	if err := export.WriteSummary(t, res, cfg, summaryPath, now); err != nil {
		return err
	}
	fmt.Printf("✓ Summary report exported to %s\n", summaryPath)
	return nil
}

func menuSummary(sess *session.Session) error {
	if sess.Table == nil {
		return session.ErrNoData
	}
	fmt.Print(analysis.RenderTableInfo(sess.Table, cfg.SampleRows))
	return nil
}
