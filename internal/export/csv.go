package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
	"github.com/leadscope/leadscope-cli/internal/utils"
)

// WriteCSV writes the cleaned table to path as CSV, header first. Cells
// flagged as invalid emails are exported with an explicit marker so the flag
// survives the flat format. An optional UTF-8 BOM helps Excel read the file.
func WriteCSV(t *dataset.Table, cfg *config.Global, path string) error {
	var buf bytes.Buffer
	if cfg.CSVBOM {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Schema.Names()); err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("write header: %w", err)}
	}
	emailIdx := t.Schema.Index(cfg.Columns.Email)
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = c.Raw
			if j == emailIdx && c.InvalidEmail {
				rec[j] = cleaning.InvalidEmailMarker(c.Raw)
			}
		}
		if err := w.Write(rec); err != nil {
			return &ExportError{Path: path, Err: fmt.Errorf("write row %d: %w", i+1, err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}
