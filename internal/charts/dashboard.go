// Package charts renders the analysis results as charts. Rendering is a pure
// layout step over already-computed results; no new aggregation happens here.
// Charts are embedded in an Excel workbook so they open anywhere without a
// display server.
package charts

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/leadscope/leadscope-cli/internal/export"
	"github.com/leadscope/leadscope-cli/internal/utils"
)

// ErrNoSeries indicates there was nothing to chart.
var ErrNoSeries = errors.New("no data series to chart")

const (
	sheetDashboard = "Dashboard"
	sheetData      = "Data"
)

// anchor cells for up to five charts laid out two per row.
var anchors = []string{"A1", "J1", "A17", "J17", "A33"}

// dashboard accumulates chart series on the Data sheet and anchors charts on
// the Dashboard sheet.
type dashboard struct {
	f      *excelize.File
	row    int // next free row on the Data sheet
	charts int
}

// WriteDashboard renders one chart per analysis into a workbook at path:
// leads by source, status share, daily volume, value by source, and the lead
// value distribution. An existing file at path is replaced.
func WriteDashboard(res export.Results, path string) error {
	if len(res.BySource.Groups) == 0 && len(res.ByStatus.Groups) == 0 &&
		len(res.Daily.Points) == 0 && res.Histogram.NonNull == 0 {
		return ErrNoSeries
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetDashboard); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetData); err != nil {
		return err
	}

	d := &dashboard{f: f, row: 1}
	if len(res.BySource.Groups) > 0 {
		keys := make([]any, 0, len(res.BySource.Groups))
		counts := make([]any, 0, len(res.BySource.Groups))
		values := make([]any, 0, len(res.BySource.Groups))
		for _, g := range res.BySource.Groups {
			keys = append(keys, g.Key)
			counts = append(counts, g.Count)
			values = append(values, g.Value)
		}
		if err := d.add(excelize.Col, "Leads by Source", keys, counts); err != nil {
			return err
		}
		if err := d.add(excelize.Bar, "Total Lead Value by Source", keys, values); err != nil {
			return err
		}
	}
	if len(res.ByStatus.Groups) > 0 {
		keys := make([]any, 0, len(res.ByStatus.Groups))
		counts := make([]any, 0, len(res.ByStatus.Groups))
		for _, g := range res.ByStatus.Groups {
			keys = append(keys, g.Key)
			counts = append(counts, g.Count)
		}
		if err := d.add(excelize.Pie, "Leads by Status", keys, counts); err != nil {
			return err
		}
	}
	if len(res.Daily.Points) > 0 {
		keys := make([]any, 0, len(res.Daily.Points))
		counts := make([]any, 0, len(res.Daily.Points))
		for _, p := range res.Daily.Points {
			keys = append(keys, p.Key)
			counts = append(counts, p.Count)
		}
		if err := d.add(excelize.Line, "Daily Lead Volume", keys, counts); err != nil {
			return err
		}
	}
	if res.Histogram.NonNull > 0 {
		keys := make([]any, 0, len(res.Histogram.Bins))
		counts := make([]any, 0, len(res.Histogram.Bins))
		for _, bin := range res.Histogram.Bins {
			keys = append(keys, fmt.Sprintf("%.4g-%.4g", bin.Low, bin.High))
			counts = append(counts, bin.Count)
		}
		if err := d.add(excelize.Col, "Lead Value Distribution", keys, counts); err != nil {
			return err
		}
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return &export.ExportError{Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &export.ExportError{Path: path, Err: err}
	}
	return nil
}

// add lays the category/value pairs onto the Data sheet and anchors a chart
// of the given kind on the Dashboard sheet.
func (d *dashboard) add(kind excelize.ChartType, title string, keys, values []any) error {
	start := d.row
	labelCell, err := excelize.CoordinatesToCellName(1, start)
	if err != nil {
		return err
	}
	if err := d.f.SetCellValue(sheetData, labelCell, title); err != nil {
		return err
	}
	for i := range keys {
		kc, err := excelize.CoordinatesToCellName(1, start+1+i)
		if err != nil {
			return err
		}
		if err := d.f.SetCellValue(sheetData, kc, keys[i]); err != nil {
			return err
		}
		vc, err := excelize.CoordinatesToCellName(2, start+1+i)
		if err != nil {
			return err
		}
		if err := d.f.SetCellValue(sheetData, vc, values[i]); err != nil {
			return err
		}
	}
	first, last := start+1, start+len(keys)
	d.row = last + 2

	anchor := anchors[d.charts%len(anchors)]
	d.charts++
	return d.f.AddChart(sheetDashboard, anchor, &excelize.Chart{
		Type: kind,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$A$%d", sheetData, start),
			Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheetData, first, last),
			Values:     fmt.Sprintf("%s!$B$%d:$B$%d", sheetData, first, last),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}
