package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leadscope/leadscope-cli/internal/analysis"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
	"github.com/leadscope/leadscope-cli/internal/utils"
)

// WriteSummary writes the plain-text analysis report to path.
func WriteSummary(t *dataset.Table, res Results, cfg *config.Global, path string, now time.Time) error {
	var b strings.Builder
	rule := strings.Repeat("=", 70) + "\n"
	thin := strings.Repeat("-", 70) + "\n"

	b.WriteString(rule)
	b.WriteString(strings.Repeat(" ", 20) + "LEAD ANALYSIS SUMMARY REPORT\n")
	b.WriteString(rule)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Report generated: %s\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Data source: %s\n\n", t.Source))

	b.WriteString("OVERVIEW:\n")
	b.WriteString(thin)
	b.WriteString(fmt.Sprintf("Total leads: %d\n", t.Len()))
	if from, to, ok := dateRange(t, cfg); ok {
		b.WriteString(fmt.Sprintf("Date range: %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02")))
	}
	totalValue, avgValue := valueTotals(t, cfg)
	b.WriteString(fmt.Sprintf("Total lead value: %.2f\n", totalValue))
	b.WriteString(fmt.Sprintf("Average lead value: %.2f\n\n", avgValue))

	c := res.Conversion
	b.WriteString(fmt.Sprintf("Conversion rate: %.2f%% (%d converted out of %d)\n\n", c.Rate*100, c.Converted, c.Total))

	b.WriteString("STATUS BREAKDOWN:\n")
	b.WriteString(thin)
	for _, g := range res.ByStatus.Groups {
		b.WriteString(fmt.Sprintf("%-20s %6d  (%.2f%%)\n", g.Key, g.Count, g.Share*100))
	}
	b.WriteString("\n")

	b.WriteString("SOURCE BREAKDOWN:\n")
	b.WriteString(thin)
	for _, g := range res.BySource.Groups {
		b.WriteString(fmt.Sprintf("%-20s %6d leads, %.2f%% conversion, value %.2f\n",
			g.Key, g.Count, g.Rate*100, g.Value))
	}
	b.WriteString("\n")

	b.WriteString("TOP SOURCES BY VALUE:\n")
	b.WriteString(thin)
	for _, g := range sourcesByValue(res.BySource) {
		b.WriteString(fmt.Sprintf("%-20s %10.2f\n", g.Key, g.Value))
	}
	b.WriteString("\n")

	b.WriteString(rule)
	b.WriteString("End of report\n")
	b.WriteString(rule)

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, []byte(b.String())); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// sourcesByValue reorders the source groups by total lead value, descending.
func sourcesByValue(bd analysis.Breakdown) []analysis.Group {
	groups := make([]analysis.Group, len(bd.Groups))
	copy(groups, bd.Groups)
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Value == groups[j].Value {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].Value > groups[j].Value
	})
	return groups
}

func dateRange(t *dataset.Table, cfg *config.Global) (from, to time.Time, ok bool) {
	idx := t.Schema.Index(cfg.Columns.Created)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		c := row[idx]
		if c.Missing || c.Time == nil {
			continue
		}
		ts := *c.Time
		if !ok {
			from, to, ok = ts, ts, true
			continue
		}
		if ts.Before(from) {
			from = ts
		}
		if ts.After(to) {
			to = ts
		}
	}
	return
}

func valueTotals(t *dataset.Table, cfg *config.Global) (total, avg float64) {
	idx := t.Schema.Index(cfg.Columns.Value)
	if idx < 0 {
		return
	}
	n := 0
	for _, row := range t.Rows {
		if c := row[idx]; !c.Missing && c.Num != nil {
			total += *c.Num
			n++
		}
	}
	if n > 0 {
		avg = total / float64(n)
	}
	return
}
