package charts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
	"github.com/leadscope/leadscope-cli/internal/export"
)

func resultsFixture(t *testing.T) export.Results {
	t.Helper()
	rows := []string{
		"lead_id,source,status,lead_value,date_added,email",
		"L-1,Website,new,1000,2025-06-02,a@example.com",
		"L-2,Website,converted,2000,2025-06-03,b@example.com",
		"L-3,Referral,converted,3000,2025-06-08,c@example.com",
		"L-4,Referral,lost,400,2025-06-09,d@example.com",
	}
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644))
	tab, err := dataset.Load(path, cfg)
	require.NoError(t, err)
	_, err = cleaning.Clean(tab, cfg)
	require.NoError(t, err)
	return export.Compute(tab, cfg)
}

func TestWriteDashboard(t *testing.T) {
	res := resultsFixture(t)
	out := filepath.Join(t.TempDir(), "charts.xlsx")

	require.NoError(t, WriteDashboard(res, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetDashboard)
	assert.Contains(t, sheets, sheetData)

	// Every series was laid out on the data sheet.
	rows, err := f.GetRows(sheetData)
	require.NoError(t, err)
	flat := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) > 0 {
			flat = append(flat, r[0])
		}
	}
	joined := strings.Join(flat, "\n")
	for _, series := range []string{
		"Leads by Source",
		"Total Lead Value by Source",
		"Leads by Status",
		"Daily Lead Volume",
		"Lead Value Distribution",
	} {
		assert.Contains(t, joined, series)
	}
}

func TestWriteDashboardUnwritableDest(t *testing.T) {
	res := resultsFixture(t)
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("file, not a dir"), 0o644))

	err := WriteDashboard(res, filepath.Join(blocked, "charts.xlsx"))
	var ee *export.ExportError
	require.True(t, errors.As(err, &ee), "want ExportError, got %v", err)
}

func TestWriteDashboardEmptyResults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts.xlsx")
	err := WriteDashboard(export.Results{}, out)
	require.ErrorIs(t, err, ErrNoSeries)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for empty results")
}
