package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

// TrendPoint is one time bucket of a trend series.
type TrendPoint struct {
	Key       string // "2006-01-02" for days, "2006-W27" for ISO weeks
	Start     time.Time
	Count     int
	Converted int
	Rate      float64
	Value     float64
}

// TrendSeries is a chronologically ordered bucket series with unique keys.
// Buckets with no rows are omitted rather than zero-filled.
type TrendSeries struct {
	Bucket string // "day" | "iso-week"
	Points []TrendPoint
}

// Trends buckets rows by day and by ISO week on the created column. Rows with
// a null created time are excluded here but still count in overall totals.
func Trends(t *dataset.Table, cfg *config.Global) (daily, weekly TrendSeries) {
	daily = TrendSeries{Bucket: "day"}
	weekly = TrendSeries{Bucket: "iso-week"}

	createdIdx := t.Schema.Index(cfg.Columns.Created)
	if createdIdx < 0 {
		return daily, weekly
	}
	statusIdx := t.Schema.Index(cfg.Columns.Status)
	valueIdx := t.Schema.Index(cfg.Columns.Value)

	days := map[string]*TrendPoint{}
	weeks := map[string]*TrendPoint{}
	for _, row := range t.Rows {
		c := row[createdIdx]
		if c.Missing || c.Time == nil {
			continue
		}
		ts := *c.Time

		dayKey := ts.Format("2006-01-02")
		dp := days[dayKey]
		if dp == nil {
			dayStart := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
			dp = &TrendPoint{Key: dayKey, Start: dayStart}
			days[dayKey] = dp
		}

		isoYear, isoWeek := ts.ISOWeek()
		weekKey := fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
		wp := weeks[weekKey]
		if wp == nil {
			wp = &TrendPoint{Key: weekKey, Start: weekStart(ts)}
			weeks[weekKey] = wp
		}

		for _, p := range []*TrendPoint{dp, wp} {
			p.Count++
			if statusIdx >= 0 && isConverted(row[statusIdx], cfg) {
				p.Converted++
			}
			if valueIdx >= 0 && row[valueIdx].Num != nil {
				p.Value += *row[valueIdx].Num
			}
		}
	}

	daily.Points = collect(days)
	weekly.Points = collect(weeks)
	return daily, weekly
}

func collect(m map[string]*TrendPoint) []TrendPoint {
	out := make([]TrendPoint, 0, len(m))
	for _, p := range m {
		if p.Count > 0 {
			p.Rate = float64(p.Converted) / float64(p.Count)
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// weekStart returns midnight of the ISO week's Monday.
func weekStart(ts time.Time) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the ISO week
	}
	return day.AddDate(0, 0, -(wd - 1))
}
