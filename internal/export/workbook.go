package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/leadscope/leadscope-cli/internal/analysis"
	"github.com/leadscope/leadscope-cli/internal/cleaning"
	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
	"github.com/leadscope/leadscope-cli/internal/utils"
)

// Sheet names of the exported workbook.
const (
	SheetCleaned = "Cleaned Leads"
	SheetSources = "Source Analysis"
	SheetStatus  = "Status Breakdown"
	SheetTrends  = "Trends"
)

// Results bundles the analysis outputs a report export carries.
type Results struct {
	Conversion analysis.Conversion
	BySource   analysis.Breakdown
	ByStatus   analysis.Breakdown
	Daily      analysis.TrendSeries
	Weekly     analysis.TrendSeries
	Histogram  analysis.Histogram
}

// Compute runs every analysis over the table and bundles the results.
func Compute(t *dataset.Table, cfg *config.Global) Results {
	daily, weekly := analysis.Trends(t, cfg)
	return Results{
		Conversion: analysis.ConversionRate(t, cfg),
		BySource:   analysis.BySource(t, cfg),
		ByStatus:   analysis.ByStatus(t, cfg),
		Daily:      daily,
		Weekly:     weekly,
		Histogram:  analysis.ValueHistogram(t, cfg, cfg.ValueBins),
	}
}

// WriteWorkbook writes the cleaned table and analysis results to an Excel
// workbook with one sheet per concern. An existing file at path is replaced.
func WriteWorkbook(t *dataset.Table, res Results, cfg *config.Global, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCleaned); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeCleanedSheet(f, t, cfg); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeSourceSheet(f, res.BySource); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeStatusSheet(f, res.ByStatus); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeTrendsSheet(f, res.Daily, res.Weekly); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

func writeCleanedSheet(f *excelize.File, t *dataset.Table, cfg *config.Global) error {
	if err := writeRow(f, SheetCleaned, 1, toAny(t.Schema.Names())); err != nil {
		return err
	}
	emailIdx := t.Schema.Index(cfg.Columns.Email)
	for i, row := range t.Rows {
		rec := make([]any, len(row))
		for j, c := range row {
			switch {
			case j == emailIdx && c.InvalidEmail:
				rec[j] = cleaning.InvalidEmailMarker(c.Raw)
			case c.Num != nil:
				rec[j] = *c.Num
			default:
				rec[j] = c.Raw
			}
		}
		if err := writeRow(f, SheetCleaned, i+2, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeSourceSheet(f *excelize.File, bd analysis.Breakdown) error {
	if _, err := f.NewSheet(SheetSources); err != nil {
		return err
	}
	header := []any{"source", "total_leads", "conversions", "conversion_rate", "total_value", "avg_lead_value"}
	if err := writeRow(f, SheetSources, 1, header); err != nil {
		return err
	}
	for i, g := range bd.Groups {
		rec := []any{g.Key, g.Count, g.Converted, g.Rate, g.Value, g.AvgValue}
		if err := writeRow(f, SheetSources, i+2, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeStatusSheet(f *excelize.File, bd analysis.Breakdown) error {
	if _, err := f.NewSheet(SheetStatus); err != nil {
		return err
	}
	if err := writeRow(f, SheetStatus, 1, []any{"status", "count", "percentage"}); err != nil {
		return err
	}
	for i, g := range bd.Groups {
		if err := writeRow(f, SheetStatus, i+2, []any{g.Key, g.Count, g.Share}); err != nil {
			return err
		}
	}
	return nil
}

func writeTrendsSheet(f *excelize.File, daily, weekly analysis.TrendSeries) error {
	if _, err := f.NewSheet(SheetTrends); err != nil {
		return err
	}
	header := []any{"bucket", "period", "leads", "conversions", "conversion_rate", "total_value"}
	if err := writeRow(f, SheetTrends, 1, header); err != nil {
		return err
	}
	n := 2
	for _, series := range []analysis.TrendSeries{daily, weekly} {
		for _, p := range series.Points {
			rec := []any{series.Bucket, p.Key, p.Count, p.Converted, p.Rate, p.Value}
			if err := writeRow(f, SheetTrends, n, rec); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
