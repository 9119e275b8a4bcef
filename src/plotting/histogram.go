package plotting

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/avandyck/roomeval/src/dataset"
)

// drawHistogram bins the non-null cells of one column into equal-width bins
// and renders them as a bar chart.
func drawHistogram(ds *dataset.Dataset, cfg Config) (image.Image, error) {
	if err := wantColumns(cfg, 1); err != nil {
		return nil, err
	}
	col, err := numericColumn(ds, cfg.Columns[0])
	if err != nil {
		return nil, err
	}
	vals := col.NonNull()
	if len(vals) == 0 {
		dataset.Warnf("histogram %s: no non-null values, rendering blank figure", cfg.Columns[0])
		return blank(cfg.Width, cfg.Height), nil
	}
	edges, counts := binCounts(vals, cfg.Bins)
	bars := make([]chart.Value, len(counts))
	maxCount := 0
	for i, c := range counts {
		mid := (edges[i] + edges[i+1]) / 2
		bars[i] = chart.Value{Value: float64(c), Label: formatTick(mid)}
		if c > maxCount {
			maxCount = c
		}
	}
	ylabel := cfg.YLabel
	if ylabel == "" {
		ylabel = "Frequency"
	}
	bc := chart.BarChart{
		Title:      cfg.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		Width:      cfg.Width,
		Height:     cfg.Height,
		BarWidth:   barWidthFor(cfg.Width, len(bars)),
		YAxis: chart.YAxis{
			Name: ylabel,
			// Fixed range keeps go-chart from failing on a degenerate
			// single-count distribution.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram %s: %w", cfg.Columns[0], err)
	}
	return png.Decode(&buf)
}

// binCounts partitions vals into n equal-width bins over [min, max] and
// returns the n+1 bin edges plus the per-bin counts. The max value lands in
// the last bin.
func binCounts(vals []float64, n int) ([]float64, []int) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		// all values equal: one bin holds everything
		return []float64{lo, lo + 1}, []int{len(vals)}
	}
	width := (hi - lo) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	counts := make([]int, n)
	for _, v := range vals {
		idx := int(math.Floor((v - lo) / width))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return edges, counts
}

func barWidthFor(chartWidth, bars int) int {
	if bars == 0 {
		return 20
	}
	w := (chartWidth - 120) / bars
	if w < 8 {
		w = 8
	}
	if w > 80 {
		w = 80
	}
	return w
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
