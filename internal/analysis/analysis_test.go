package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

func cleanFixture(t *testing.T, rows []string) (*dataset.Table, *config.Global) {
	t.Helper()
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "leads.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	tab, err := dataset.Load(path, cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cleaning.Clean(tab, cfg); err != nil {
		t.Fatalf("clean: %v", err)
	}
	return tab, cfg
}

var statusRows = []string{
	"lead_id,source,status,lead_value,date_added,email",
	"L-1,Website,new,1000,2025-06-02,a@example.com",
	"L-2,Website,converted,2000,2025-06-02,b@example.com",
	"L-3,Referral,Converted,3000,2025-06-08,c@example.com",
	"L-4,Referral,,500,2025-06-09,d@example.com",
}

func TestConversionRateExample(t *testing.T) {
	// Statuses [new, converted, converted, unknown] → rate 0.5.
	tab, cfg := cleanFixture(t, statusRows)
	c := ConversionRate(tab, cfg)
	if c.Total != 4 || c.Converted != 2 {
		t.Fatalf("got total=%d converted=%d", c.Total, c.Converted)
	}
	if c.Rate != 0.5 {
		t.Fatalf("rate = %v, want 0.5", c.Rate)
	}
}

func TestConversionRateEmptyTable(t *testing.T) {
	tab, cfg := cleanFixture(t, []string{"lead_id,source,status"})
	c := ConversionRate(tab, cfg)
	if c.Rate != 0 || c.Total != 0 {
		t.Fatalf("empty table: got %+v, want zero rate", c)
	}
}

func TestByStatusPartition(t *testing.T) {
	tab, cfg := cleanFixture(t, statusRows)
	bd := ByStatus(tab, cfg)

	counts := map[string]int{}
	total := 0
	shares := 0.0
	for _, g := range bd.Groups {
		counts[g.Key] = g.Count
		total += g.Count
		shares += g.Share
	}
	if total != tab.Len() {
		t.Fatalf("per-status counts sum to %d, want %d", total, tab.Len())
	}
	if shares < 0.999 || shares > 1.001 {
		t.Fatalf("shares sum to %v, want 1", shares)
	}
	want := map[string]int{"new": 1, "converted": 2, "unknown": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Fatalf("status %q = %d, want %d (all: %v)", k, counts[k], v, counts)
		}
	}
}

func TestBySourcePartitionAndRates(t *testing.T) {
	tab, cfg := cleanFixture(t, statusRows)
	bd := BySource(tab, cfg)

	total := 0
	for _, g := range bd.Groups {
		total += g.Count
		if g.Rate < 0 || g.Rate > 1 {
			t.Fatalf("group %q rate %v out of [0,1]", g.Key, g.Rate)
		}
	}
	if total != tab.Len() {
		t.Fatalf("per-source counts sum to %d, want %d", total, tab.Len())
	}

	for _, g := range bd.Groups {
		switch g.Key {
		case "website":
			if g.Count != 2 || g.Converted != 1 || g.Value != 3000 {
				t.Fatalf("website group: %+v", g)
			}
		case "referral":
			if g.Count != 2 || g.Converted != 1 || g.Value != 3500 {
				t.Fatalf("referral group: %+v", g)
			}
		default:
			t.Fatalf("unexpected group %q", g.Key)
		}
	}

	best, ok := BestGroup(bd)
	if !ok || best.Rate != 0.5 {
		t.Fatalf("best group: %+v ok=%v", best, ok)
	}
}

func TestUnknownSourceGrouping(t *testing.T) {
	tab, cfg := cleanFixture(t, []string{
		"lead_id,source,status",
		"L-1,,new",
		"L-2,web,new",
	})
	bd := BySource(tab, cfg)
	found := false
	for _, g := range bd.Groups {
		if g.Key == cfg.UnknownLabel {
			found = true
			if g.Count != 1 {
				t.Fatalf("unknown group count = %d", g.Count)
			}
		}
	}
	if !found {
		t.Fatal("rows with missing source must land in the unknown group, not vanish")
	}
}

var trendRows = []string{
	"lead_id,source,status,lead_value,date_added,email",
	"L-1,web,new,100,2025-06-02,a@example.com",
	"L-2,web,converted,200,2025-06-02,b@example.com",
	"L-3,web,new,300,2025-06-04,c@example.com",
	// gap: nothing on 2025-06-03; nothing in the week of 2025-06-09
	"L-4,web,converted,400,2025-06-17,d@example.com",
	"L-5,web,new,500,,e@example.com", // no created date
}

func TestTrendsBucketsOrderedAndGapsOmitted(t *testing.T) {
	tab, cfg := cleanFixture(t, trendRows)
	daily, weekly := Trends(tab, cfg)

	wantDays := []string{"2025-06-02", "2025-06-04", "2025-06-17"}
	if len(daily.Points) != len(wantDays) {
		t.Fatalf("daily buckets = %d, want %d (gap days are omitted)", len(daily.Points), len(wantDays))
	}
	seen := map[string]bool{}
	for i, p := range daily.Points {
		if p.Key != wantDays[i] {
			t.Fatalf("daily[%d] = %s, want %s", i, p.Key, wantDays[i])
		}
		if seen[p.Key] {
			t.Fatalf("duplicate bucket %s", p.Key)
		}
		seen[p.Key] = true
		if i > 0 && !daily.Points[i-1].Start.Before(p.Start) {
			t.Fatal("daily buckets not strictly chronological")
		}
	}

	// Rows without a created date are excluded from trends but stay in totals.
	inTrends := 0
	for _, p := range daily.Points {
		inTrends += p.Count
	}
	if inTrends != 4 {
		t.Fatalf("trend rows = %d, want 4", inTrends)
	}
	if c := ConversionRate(tab, cfg); c.Total != 5 {
		t.Fatalf("overall total = %d, want 5", c.Total)
	}

	// ISO weeks: 2025-06-02 and 2025-06-04 share week 23; 2025-06-17 is week 25.
	wantWeeks := []string{"2025-W23", "2025-W25"}
	if len(weekly.Points) != len(wantWeeks) {
		t.Fatalf("weekly buckets = %d, want %d", len(weekly.Points), len(wantWeeks))
	}
	for i, p := range weekly.Points {
		if p.Key != wantWeeks[i] {
			t.Fatalf("weekly[%d] = %s, want %s", i, p.Key, wantWeeks[i])
		}
	}
	if weekly.Points[0].Count != 3 || weekly.Points[0].Converted != 1 {
		t.Fatalf("week 23: %+v", weekly.Points[0])
	}
}

func TestValueHistogram(t *testing.T) {
	tab, cfg := cleanFixture(t, trendRows)
	h := ValueHistogram(tab, cfg, 5)
	if h.NonNull != 5 {
		t.Fatalf("non-null = %d, want 5", h.NonNull)
	}
	sum := 0
	for _, b := range h.Bins {
		sum += b.Count
	}
	if sum != h.NonNull {
		t.Fatalf("bin counts sum to %d, want %d", sum, h.NonNull)
	}
	if h.Min != 100 || h.Max != 500 {
		t.Fatalf("range [%v,%v], want [100,500]", h.Min, h.Max)
	}
}

func TestRenderBlocks(t *testing.T) {
	tab, cfg := cleanFixture(t, statusRows)
	c := ConversionRate(tab, cfg)
	if got := RenderConversion(c); !strings.Contains(got, "Conversion rate: 50.00%") {
		t.Fatalf("conversion block: %s", got)
	}
	if got := RenderSourceBreakdown(BySource(tab, cfg)); !strings.Contains(got, "Best performing source:") {
		t.Fatalf("source block: %s", got)
	}
	info := RenderTableInfo(tab, 2)
	if !strings.Contains(info, "[DATASET SUMMARY]") || !strings.Contains(info, "Rows: 4") {
		t.Fatalf("table info: %s", info)
	}
}
