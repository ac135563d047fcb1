package cleaning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

// NotProvided fills missing contact fields so exports stay readable.
const NotProvided = "not provided"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// InvalidEmailMarker renders a flagged email for flat exports, keeping the
// original value visible.
func InvalidEmailMarker(raw string) string {
	return raw + " (invalid)"
}

// Summary counts the alterations one Clean pass made. A second pass over the
// same table reports all zeros.
type Summary struct {
	FilledCategorical int // missing source/status set to the unknown label
	FilledContact     int // missing emails set to the not-provided marker
	FilledValues      int // missing values set to 0 (fill_value_zero only)
	GeneratedIDs      int // blank identifiers replaced with a generated UUID
	NormalizedText    int // cells changed by trim/lower-casing
	InvalidEmails     int // emails newly flagged as invalid
	CoercedNulls      int // non-numeric values and unparseable dates nulled
}

// Total returns the number of alterations across all categories.
func (s Summary) Total() int {
	return s.FilledCategorical + s.FilledContact + s.FilledValues +
		s.GeneratedIDs + s.NormalizedText + s.InvalidEmails + s.CoercedNulls
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"filled %d categorical, %d contact, %d values; generated %d ids; normalized %d cells; flagged %d invalid emails; nulled %d unparseable cells",
		s.FilledCategorical, s.FilledContact, s.FilledValues,
		s.GeneratedIDs, s.NormalizedText, s.InvalidEmails, s.CoercedNulls)
}

type roles struct {
	id, source, status, value, created, email int
}

func resolveRoles(t *dataset.Table, cfg *config.Global) (roles, error) {
	r := roles{
		id:      t.Schema.Index(cfg.Columns.Identifier),
		source:  t.Schema.Index(cfg.Columns.Source),
		status:  t.Schema.Index(cfg.Columns.Status),
		value:   t.Schema.Index(cfg.Columns.Value),
		created: t.Schema.Index(cfg.Columns.Created),
		email:   t.Schema.Index(cfg.Columns.Email),
	}
	if r.source < 0 {
		return r, &dataset.ValidationError{
			Column: dataset.Column{Name: cfg.Columns.Source},
			Reason: "required source column not found",
		}
	}
	if r.status < 0 {
		return r, &dataset.ValidationError{
			Column: dataset.Column{Name: cfg.Columns.Status},
			Reason: "required status column not found",
		}
	}
	return r, nil
}

// Clean normalizes the table in place and returns what changed. Malformed
// data never fails the pass: bad cells are flagged or nulled and counted.
// Clean is idempotent.
func Clean(t *dataset.Table, cfg *config.Global) (Summary, error) {
	var sum Summary
	r, err := resolveRoles(t, cfg)
	if err != nil {
		return sum, err
	}

	for i := range t.Rows {
		row := t.Rows[i]

		// Whitespace trim across all cells.
		for j := range row {
			trimmed := strings.TrimSpace(row[j].Raw)
			if trimmed != row[j].Raw {
				row[j].Raw = trimmed
				sum.NormalizedText++
			}
		}

		// Identifier: blank ids get a generated UUID so every cleaned
		// record stays addressable.
		if r.id >= 0 && row[r.id].Missing {
			row[r.id].Raw = uuid.NewString()
			row[r.id].Missing = false
			sum.GeneratedIDs++
		}

		// Categorical fields: fill missing with the unknown label, then
		// lower-case to the canonical form.
		for _, j := range []int{r.source, r.status} {
			if j < 0 {
				continue
			}
			if row[j].Missing {
				row[j].Raw = cfg.UnknownLabel
				row[j].Missing = false
				sum.FilledCategorical++
				continue
			}
			lowered := strings.ToLower(row[j].Raw)
			if lowered != row[j].Raw {
				row[j].Raw = lowered
				sum.NormalizedText++
			}
		}

		// Email: the fill marker is exempt from validation; real values that
		// fail the pattern are flagged and retained, never dropped.
		if r.email >= 0 {
			c := &row[r.email]
			switch {
			case c.Missing && c.Raw == "":
				c.Raw = NotProvided
				c.Missing = false
				sum.FilledContact++
			case !c.Missing && c.Raw != NotProvided && !c.InvalidEmail && !emailPattern.MatchString(c.Raw):
				c.InvalidEmail = true
				sum.InvalidEmails++
			}
		}

		// Value: null out non-coercible cells; optionally fill nulls with 0.
		if r.value >= 0 {
			c := &row[r.value]
			if !c.Missing && c.Num == nil {
				c.Missing = true
				sum.CoercedNulls++
			}
			if cfg.FillValueZero && c.Missing {
				c.SetNum(0)
				c.Raw = "0"
				sum.FilledValues++
			}
		}

		// Created date: unparseable dates become null, preserving the raw
		// text for export.
		if r.created >= 0 {
			c := &row[r.created]
			if !c.Missing && c.Time == nil {
				c.Missing = true
				sum.CoercedNulls++
			}
		}
	}
	return sum, nil
}
