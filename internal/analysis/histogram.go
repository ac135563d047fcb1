package analysis

import (
	"math"

	"github.com/leadscope/leadscope-cli/internal/config"
	"github.com/leadscope/leadscope-cli/internal/dataset"
)

// HistBin is one fixed-width bin of a value histogram. High is exclusive
// except for the last bin.
type HistBin struct {
	Low, High float64
	Count     int
}

// Histogram summarizes the distribution of non-null lead values.
type Histogram struct {
	Bins    []HistBin
	NonNull int
	Min     float64
	Max     float64
}

// ValueHistogram bins the non-null values of the configured value column into
// nbins fixed-width bins. Bin counts sum to the non-null value count.
func ValueHistogram(t *dataset.Table, cfg *config.Global, nbins int) Histogram {
	var h Histogram
	if nbins <= 0 {
		nbins = 10
	}
	valueIdx := t.Schema.Index(cfg.Columns.Value)
	if valueIdx < 0 {
		return h
	}

	var vals []float64
	h.Min = math.Inf(1)
	h.Max = math.Inf(-1)
	for _, row := range t.Rows {
		c := row[valueIdx]
		if c.Missing || c.Num == nil {
			continue
		}
		v := *c.Num
		vals = append(vals, v)
		if v < h.Min {
			h.Min = v
		}
		if v > h.Max {
			h.Max = v
		}
	}
	h.NonNull = len(vals)
	if h.NonNull == 0 {
		h.Min, h.Max = 0, 0
		return h
	}

	width := (h.Max - h.Min) / float64(nbins)
	if width == 0 {
		// All values identical: a single bin carries everything.
		h.Bins = []HistBin{{Low: h.Min, High: h.Max, Count: h.NonNull}}
		return h
	}
	h.Bins = make([]HistBin, nbins)
	for i := range h.Bins {
		h.Bins[i].Low = h.Min + float64(i)*width
		h.Bins[i].High = h.Min + float64(i+1)*width
	}
	for _, v := range vals {
		i := int((v - h.Min) / width)
		if i >= nbins {
			i = nbins - 1 // max value falls in the last bin
		}
		h.Bins[i].Count++
	}
	return h
}
