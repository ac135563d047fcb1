package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

func writeLeads(t *testing.T) string {
	t.Helper()
	rows := []string{
		"lead_id,source,status,lead_value,date_added,email",
		"L-1,Website,new,1000,2025-06-02,a@example.com",
		"L-2,Website,converted,2000,2025-06-03,b@example.com",
	}
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644))
	return path
}

func TestSessionLifecycle(t *testing.T) {
	s := New(config.Default())

	// Operations before load fail with ErrNoData.
	_, err := s.Clean()
	require.ErrorIs(t, err, ErrNoData)
	_, err = s.Analyze()
	require.ErrorIs(t, err, ErrNoData)

	_, err = s.Load(writeLeads(t))
	require.NoError(t, err)

	// Analysis before cleaning is refused.
	_, err = s.Analyze()
	require.ErrorIs(t, err, ErrNotCleaned)

	_, err = s.Clean()
	require.NoError(t, err)

	res, err := s.Analyze()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Conversion.Total)
	assert.Equal(t, 0.5, res.Conversion.Rate)

	// Results are cached until the table changes.
	res2, err := s.Analyze()
	require.NoError(t, err)
	assert.Equal(t, res, res2)
}

func TestFailedLoadKeepsSessionUsable(t *testing.T) {
	s := New(config.Default())
	path := writeLeads(t)
	_, err := s.Load(path)
	require.NoError(t, err)
	_, err = s.Clean()
	require.NoError(t, err)

	// A failing load must not clobber the current table.
	_, err = s.Load(filepath.Join(t.TempDir(), "missing.csv"))
	var le *dataset.LoadError
	require.True(t, errors.As(err, &le))

	tab, err := s.CleanedTable()
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, path, s.Path)
}

func TestReloadResetsCleanState(t *testing.T) {
	s := New(config.Default())
	_, err := s.Load(writeLeads(t))
	require.NoError(t, err)
	_, err = s.Clean()
	require.NoError(t, err)
	_, err = s.Analyze()
	require.NoError(t, err)

	_, err = s.Load(writeLeads(t))
	require.NoError(t, err)
	assert.False(t, s.Cleaned)
	assert.Nil(t, s.Results)
	_, err = s.Analyze()
	require.ErrorIs(t, err, ErrNotCleaned)
}
