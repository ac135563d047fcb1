package dataset

import (
	"strings"

	"github.com/leadscope/leadscope-cli/internal/config"
)

// Loader reads one on-disk format into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, cfg *config.Global) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader by filename and reads the table. Reading has no side
// effects on the file.
func Load(path string, cfg *config.Global) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, cfg)
		}
	}
	return nil, &LoadError{Path: path, Err: ErrUnsupported}
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// buildTable assembles a Table from a header and raw records, parsing each
// cell and inferring column kinds by the predominant parsed type.
func buildTable(source string, header []string, records [][]string, cfg *config.Global) *Table {
	ncol := len(header)
	cols := make([]Column, ncol)
	numCnt := make([]int, ncol)
	dtCnt := make([]int, ncol)
	txtCnt := make([]int, ncol)
	for i, h := range header {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}

	var extra []string
	if cfg != nil {
		extra = cfg.DateLayouts
	}

	rows := make([]Row, 0, len(records))
	truncated := 0
	for _, rec := range records {
		if len(rec) > ncol {
			truncated++
		}
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		row := make(Row, ncol)
		for j := 0; j < ncol; j++ {
			raw := strings.TrimSpace(rec[j])
			cell := Cell{Raw: raw}
			if raw == "" {
				cell.Missing = true
				row[j] = cell
				continue
			}
			if x, ok := parseNumeric(raw); ok {
				cell.Num = &x
				numCnt[j]++
			} else if t, ok := parseTimeMaybe(raw, extra); ok {
				cell.Time = &t
				dtCnt[j]++
			} else {
				txtCnt[j]++
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}

	for j := range cols {
		switch {
		case numCnt[j] > 0 && numCnt[j] >= dtCnt[j] && numCnt[j] >= txtCnt[j]:
			cols[j].Kind = KindNumeric
		case dtCnt[j] > 0 && dtCnt[j] >= txtCnt[j]:
			cols[j].Kind = KindDateTime
		default:
			cols[j].Kind = KindString
		}
	}

	return &Table{Source: source, Schema: Schema{Columns: cols}, Rows: rows, Truncated: truncated}
}
