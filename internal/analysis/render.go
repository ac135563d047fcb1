package analysis

import (
	"fmt"
	"strings"

	"github.com/leadscope/leadscope-cli/internal/dataset"
)

// RenderConversion renders the overall conversion block.
func RenderConversion(c Conversion) string {
	var b strings.Builder
	b.WriteString("[CONVERSION RATE]\n")
	b.WriteString(fmt.Sprintf("Total leads: %d\n", c.Total))
	b.WriteString(fmt.Sprintf("Converted leads: %d\n", c.Converted))
	b.WriteString(fmt.Sprintf("Conversion rate: %.2f%%\n", c.Rate*100))
	return b.String()
}

// RenderSourceBreakdown renders the per-source performance block.
func RenderSourceBreakdown(bd Breakdown) string {
	var b strings.Builder
	b.WriteString("[PERFORMANCE BY SOURCE]\n")
	for _, g := range bd.Groups {
		b.WriteString(fmt.Sprintf("- %s: %d leads, %d converted (%.2f%%), total value %.2f, avg %.2f\n",
			g.Key, g.Count, g.Converted, g.Rate*100, g.Value, g.AvgValue))
	}
	if best, ok := BestGroup(bd); ok {
		b.WriteString(fmt.Sprintf("Best performing source: %s (%.2f%% conversion rate)\n", best.Key, best.Rate*100))
	}
	return b.String()
}

// RenderStatusBreakdown renders the status share block.
func RenderStatusBreakdown(bd Breakdown) string {
	var b strings.Builder
	b.WriteString("[LEADS BY STATUS]\n")
	for _, g := range bd.Groups {
		b.WriteString(fmt.Sprintf("- %s: %d (%.2f%%)\n", g.Key, g.Count, g.Share*100))
	}
	return b.String()
}

// RenderTrends renders the daily and weekly trend blocks.
func RenderTrends(daily, weekly TrendSeries) string {
	var b strings.Builder
	b.WriteString("[DAILY TRENDS]\n")
	writeTrend(&b, daily)
	b.WriteString("\n[WEEKLY TRENDS]\n")
	writeTrend(&b, weekly)
	return b.String()
}

func writeTrend(b *strings.Builder, s TrendSeries) {
	if len(s.Points) == 0 {
		b.WriteString("- no rows with a valid created date\n")
		return
	}
	for _, p := range s.Points {
		b.WriteString(fmt.Sprintf("- %s: %d leads, %d converted (%.2f%%), value %.2f\n",
			p.Key, p.Count, p.Converted, p.Rate*100, p.Value))
	}
}

// RenderHistogram renders the lead value distribution block.
func RenderHistogram(h Histogram) string {
	var b strings.Builder
	b.WriteString("[VALUE DISTRIBUTION]\n")
	if h.NonNull == 0 {
		b.WriteString("- no numeric lead values\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Non-null values: %d (min %.4g, max %.4g)\n", h.NonNull, h.Min, h.Max))
	for _, bin := range h.Bins {
		b.WriteString(fmt.Sprintf("- [%.4g, %.4g): %d\n", bin.Low, bin.High, bin.Count))
	}
	return b.String()
}

// RenderTableInfo renders the data summary block: file, shape, schema with
// missing percentages, and a short row preview.
func RenderTableInfo(t *dataset.Table, sampleRows int) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if t.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", t.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", t.Len()))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(t.Schema.Columns)))

	b.WriteString("[SCHEMA]\n")
	for j, col := range t.Schema.Columns {
		missing := 0
		for _, row := range t.Rows {
			if j < len(row) && row[j].Missing {
				missing++
			}
		}
		missPct := 0.0
		if t.Len() > 0 {
			missPct = float64(missing) * 100.0 / float64(t.Len())
		}
		b.WriteString(fmt.Sprintf("- %s: %s (missing %.1f%%)\n", col.Name, col.Kind, missPct))
	}

	if sampleRows > 0 && t.Len() > 0 {
		b.WriteString("\n[SAMPLE ROWS]\n")
		b.WriteString("| " + strings.Join(t.Schema.Names(), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(t.Schema.Columns)) + "\n")
		for _, row := range t.Preview(sampleRows) {
			for i, v := range row {
				if len(v) > 80 {
					row[i] = v[:77] + "..."
				}
				row[i] = strings.ReplaceAll(strings.ReplaceAll(row[i], "\n", " "), "|", "/")
			}
			b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
	}
	return b.String()
}
