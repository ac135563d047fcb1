// Package export serializes cleaned lead tables and analysis results to
// flat files: CSV, Excel workbooks, and plain-text summary reports.
// Destinations are overwritten, never merged.
package export

import "fmt"

// ExportError indicates the destination could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }
