// Package session holds the state one interactive run works on: the current
// table, its cleaning summary, and the most recent analysis results. State is
// passed explicitly to each operation; nothing lives at package level.
package session

import (
	"errors"

	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
	"github.com/leadscope/leadscope-cli/internal/export"
)

// ErrNoData is returned when an operation needs a loaded table.
var ErrNoData = errors.New("no data loaded; load a file first")

// ErrNotCleaned is returned when analysis or export is requested before the
// cleaning pass has run.
var ErrNotCleaned = errors.New("data not cleaned; run clean first")

// Session is the mutable state of one run.
type Session struct {
	Cfg *config.Global

	Path    string
	Table   *dataset.Table
	Cleaned bool
	Summary cleaning.Summary

	// Results caches the last full analysis over the cleaned table.
	Results *export.Results
}

// New returns an empty session bound to cfg.
func New(cfg *config.Global) *Session {
	return &Session{Cfg: cfg}
}

// Load replaces the current table with the file at path. A failed load keeps
// the previous session state so the shell stays usable.
func (s *Session) Load(path string) (*dataset.Table, error) {
	t, err := dataset.Load(path, s.Cfg)
	if err != nil {
		return nil, err
	}
	s.Path = path
	s.Table = t
	s.Cleaned = false
	s.Summary = cleaning.Summary{}
	s.Results = nil
	return t, nil
}

// Clean runs the cleaning pass over the current table.
func (s *Session) Clean() (cleaning.Summary, error) {
	if s.Table == nil {
		return cleaning.Summary{}, ErrNoData
	}
	sum, err := cleaning.Clean(s.Table, s.Cfg)
	if err != nil {
		return sum, err
	}
	s.Cleaned = true
	s.Summary = sum
	s.Results = nil
	return sum, nil
}

// Analyze computes (and caches) the full result bundle over the cleaned table.
func (s *Session) Analyze() (export.Results, error) {
	if err := s.requireCleaned(); err != nil {
		return export.Results{}, err
	}
	if s.Results == nil {
		res := export.Compute(s.Table, s.Cfg)
		s.Results = &res
	}
	return *s.Results, nil
}

func (s *Session) requireCleaned() error {
	if s.Table == nil {
		return ErrNoData
	}
	if !s.Cleaned {
		return ErrNotCleaned
	}
	return nil
}

// CleanedTable returns the table once cleaning has run.
func (s *Session) CleanedTable() (*dataset.Table, error) {
	if err := s.requireCleaned(); err != nil {
		return nil, err
	}
	return s.Table, nil
}
