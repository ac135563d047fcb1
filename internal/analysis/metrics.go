package analysis

import (
	"sort"
	"strings"

	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

// Conversion is the overall conversion result.
type Conversion struct {
	Total     int
	Converted int
	Rate      float64 // in [0,1]; 0 for an empty table
}

// Group is one partition of a breakdown.
type Group struct {
	Key       string
	Count     int
	Converted int
	Rate      float64 // conversions / count
	Share     float64 // count / total
	Value     float64 // sum of lead values in the group
	AvgValue  float64
}

// Breakdown partitions the table by a categorical field. Groups cover every
// row exactly once; rows with a missing field land in the unknown group.
type Breakdown struct {
	Field  string
	Total  int
	Groups []Group
}

// ConversionRate counts rows whose status matches the configured converted
// value. An empty table yields a zero rate, not an error.
func ConversionRate(t *dataset.Table, cfg *config.Global) Conversion {
	c := Conversion{Total: t.Len()}
	if c.Total == 0 {
		return c
	}
	statusIdx := t.Schema.Index(cfg.Columns.Status)
	if statusIdx < 0 {
		return c
	}
	for _, row := range t.Rows {
		if isConverted(row[statusIdx], cfg) {
			c.Converted++
		}
	}
	c.Rate = float64(c.Converted) / float64(c.Total)
	return c
}

// BySource partitions by the source field with per-group count, conversions,
// rate, share, and value totals.
func BySource(t *dataset.Table, cfg *config.Global) Breakdown {
	return breakdown(t, cfg, cfg.Columns.Source)
}

// ByStatus partitions by the status field with per-group count and share.
func ByStatus(t *dataset.Table, cfg *config.Global) Breakdown {
	return breakdown(t, cfg, cfg.Columns.Status)
}

func breakdown(t *dataset.Table, cfg *config.Global, field string) Breakdown {
	b := Breakdown{Field: field, Total: t.Len()}
	fieldIdx := t.Schema.Index(field)
	if fieldIdx < 0 || b.Total == 0 {
		return b
	}
	statusIdx := t.Schema.Index(cfg.Columns.Status)
	valueIdx := t.Schema.Index(cfg.Columns.Value)

	acc := map[string]*Group{}
	for _, row := range t.Rows {
		key := groupKey(row[fieldIdx], cfg)
		g := acc[key]
		if g == nil {
			g = &Group{Key: key}
			acc[key] = g
		}
		g.Count++
		if statusIdx >= 0 && isConverted(row[statusIdx], cfg) {
			g.Converted++
		}
		if valueIdx >= 0 && row[valueIdx].Num != nil {
			g.Value += *row[valueIdx].Num
		}
	}

	for _, g := range acc {
		g.Rate = float64(g.Converted) / float64(g.Count)
		g.Share = float64(g.Count) / float64(b.Total)
		g.AvgValue = g.Value / float64(g.Count)
		b.Groups = append(b.Groups, *g)
	}
	sort.Slice(b.Groups, func(i, j int) bool {
		if b.Groups[i].Count == b.Groups[j].Count {
			return b.Groups[i].Key < b.Groups[j].Key
		}
		return b.Groups[i].Count > b.Groups[j].Count
	})
	return b
}

// BestGroup returns the group with the highest conversion rate, preferring
// larger groups on ties. ok is false for an empty breakdown.
func BestGroup(b Breakdown) (Group, bool) {
	if len(b.Groups) == 0 {
		return Group{}, false
	}
	best := b.Groups[0]
	for _, g := range b.Groups[1:] {
		if g.Rate > best.Rate || (g.Rate == best.Rate && g.Count > best.Count) {
			best = g
		}
	}
	return best, true
}

func isConverted(c dataset.Cell, cfg *config.Global) bool {
	return !c.Missing && strings.EqualFold(strings.TrimSpace(c.Raw), cfg.ConvertedStatus)
}

func groupKey(c dataset.Cell, cfg *config.Global) string {
	if c.Missing || strings.TrimSpace(c.Raw) == "" {
		return cfg.UnknownLabel
	}
	return strings.ToLower(strings.TrimSpace(c.Raw))
}
