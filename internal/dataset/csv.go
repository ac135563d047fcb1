package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leadscope/leadscope-cli/internal/config"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") ||
		strings.HasSuffix(name, ".txt")
}

func (csvLoader) Load(path string, cfg *config.Global) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = pickDelimiter(path, cfg)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: path, Err: errors.New("empty file, no header row")}
		}
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Path: path, Err: fmt.Errorf("read row %d: %w", len(records)+2, err)}
		}
		rowCopy := make([]string, len(rec))
		copy(rowCopy, rec)
		records = append(records, rowCopy)
	}

	return buildTable(filepath.Base(path), header, records, cfg), nil
}

// pickDelimiter honors the configured delimiter and otherwise falls back to a
// filename heuristic.
func pickDelimiter(path string, cfg *config.Global) rune {
	if cfg != nil {
		switch cfg.Delimiter {
		case ",":
			return ','
		case ";":
			return ';'
		case "tab", "\t":
			return '\t'
		}
	}
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
