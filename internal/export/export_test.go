package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

var reportRows = []string{
	"lead_id,source,status,lead_value,date_added,email",
	"L-1,Website,new,1000,2025-06-02,a@example.com",
	"L-2,Website,converted,2000,2025-06-03,foo@bar",
	"L-3,Referral,converted,5000,2025-06-08,c@example.com",
}

func cleanedFixture(t *testing.T) (*dataset.Table, *config.Global) {
	t.Helper()
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(reportRows, "\n")), 0o644))
	tab, err := dataset.Load(path, cfg)
	require.NoError(t, err)
	_, err = cleaning.Clean(tab, cfg)
	require.NoError(t, err)
	return tab, cfg
}

func TestWriteCSV(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, WriteCSV(tab, cfg, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(b)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Len(t, lines, 4, "header plus three rows")
	assert.Equal(t, "lead_id,source,status,lead_value,date_added,email", lines[0])
	// Flagged email exported with an explicit marker, value retained.
	assert.Contains(t, content, "foo@bar (invalid)")
}

func TestWriteCSVBOM(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	cfg.CSVBOM = true
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, WriteCSV(tab, cfg, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, len(b) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, b[:3])
}

func TestWriteCSVOverwrites(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	out := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, os.WriteFile(out, []byte("old content that should vanish"), 0o644))

	require.NoError(t, WriteCSV(tab, cfg, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "old content")
}

func TestWriteCSVUnwritableDest(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("file, not a dir"), 0o644))

	err := WriteCSV(tab, cfg, filepath.Join(blocked, "out.csv"))
	var ee *ExportError
	require.True(t, errors.As(err, &ee), "want ExportError, got %v", err)
}

func TestWriteWorkbookSheets(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	res := Compute(tab, cfg)
	out := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteWorkbook(tab, res, cfg, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{SheetCleaned, SheetSources, SheetStatus, SheetTrends} {
		assert.Contains(t, sheets, want)
	}

	rows, err := f.GetRows(SheetCleaned)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "lead_id", rows[0][0])

	srcRows, err := f.GetRows(SheetSources)
	require.NoError(t, err)
	require.Len(t, srcRows, 3, "header plus two sources")
}

func TestWriteSummaryContent(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	res := Compute(tab, cfg)
	out := filepath.Join(t.TempDir(), "summary.txt")
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, WriteSummary(tab, res, cfg, out, now))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "LEAD ANALYSIS SUMMARY REPORT")
	assert.Contains(t, content, "Report generated: 2025-06-20 12:00:00")
	assert.Contains(t, content, "Total leads: 3")
	assert.Contains(t, content, "Date range: 2025-06-02 to 2025-06-08")
	assert.Contains(t, content, "Conversion rate: 66.67% (2 converted out of 3)")
	assert.Contains(t, content, "STATUS BREAKDOWN:")
	assert.Contains(t, content, "SOURCE BREAKDOWN:")

	// Top-sources section orders by total value (referral 5000 > website 3000)
	// even though the count-ordered breakdown lists website first.
	idx := strings.Index(content, "TOP SOURCES BY VALUE:")
	require.GreaterOrEqual(t, idx, 0, "top sources section missing:\n%s", content)
	section := content[idx:]
	assert.Less(t, strings.Index(section, "referral"), strings.Index(section, "website"))
}

func TestComputeBundlesEverything(t *testing.T) {
	tab, cfg := cleanedFixture(t)
	res := Compute(tab, cfg)
	assert.Equal(t, 3, res.Conversion.Total)
	assert.NotEmpty(t, res.BySource.Groups)
	assert.NotEmpty(t, res.ByStatus.Groups)
	assert.NotEmpty(t, res.Daily.Points)
	assert.NotEmpty(t, res.Weekly.Points)
	assert.Equal(t, 3, res.Histogram.NonNull)
}
