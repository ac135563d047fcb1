package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadscope/leadscope-cli/internal/analysis"
	"github.com/leadscope/leadscope-cli/internal/session"
)

var anaOutputPath string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Load, clean, and print the full analysis report for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := session.New(cfg)
		t, err := sess.Load(args[0])
		if err != nil {
			return err
		}
		warnTruncated(t)
		if debug {
			fmt.Fprintf(os.Stderr, "loaded %d rows, %d columns\n", t.Len(), len(t.Schema.Columns))
		}
		sum, err := sess.Clean()
		if err != nil {
			return err
		}
		if debug {
			fmt.Fprintf(os.Stderr, "cleaned: %s\n", sum)
		}

		res, err := sess.Analyze()
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString(analysis.RenderTableInfo(sess.Table, cfg.SampleRows))
		b.WriteString("\n")
		b.WriteString(analysis.RenderConversion(res.Conversion))
		b.WriteString("\n")
		b.WriteString(analysis.RenderSourceBreakdown(res.BySource))
		b.WriteString("\n")
		b.WriteString(analysis.RenderStatusBreakdown(res.ByStatus))
		b.WriteString("\n")
		b.WriteString(analysis.RenderTrends(res.Daily, res.Weekly))
		b.WriteString("\n")
		b.WriteString(analysis.RenderHistogram(res.Histogram))
		report := b.String()

		if anaOutputPath != "" {
			if err := os.WriteFile(anaOutputPath, []byte(report), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
}
