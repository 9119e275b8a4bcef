package plotting

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/avandyck/roomeval/src/dataset"
)

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// drawScatter plots the rows where both selected columns are non-null. Rows
// with a null on either side are excluded from the point set, not an error.
func drawScatter(ds *dataset.Dataset, cfg Config) (image.Image, error) {
	if err := wantColumns(cfg, 2); err != nil {
		return nil, err
	}
	xcol, err := numericColumn(ds, cfg.Columns[0])
	if err != nil {
		return nil, err
	}
	ycol, err := numericColumn(ds, cfg.Columns[1])
	if err != nil {
		return nil, err
	}
	var xs, ys []float64
	for i := 0; i < ds.Rows(); i++ {
		if xcol.Valid[i] && ycol.Valid[i] {
			xs = append(xs, xcol.Values[i])
			ys = append(ys, ycol.Values[i])
		}
	}
	if len(xs) == 0 {
		dataset.Warnf("scatter %s vs %s: no rows with both values present, rendering blank figure", cfg.Columns[0], cfg.Columns[1])
		return blank(cfg.Width, cfg.Height), nil
	}

	series := []chart.Series{}
	if cfg.IdentityLine {
		lo := minVal(xs)
		if m := minVal(ys); m < lo {
			lo = m
		}
		hi := maxVal(xs)
		if m := maxVal(ys); m > hi {
			hi = m
		}
		lo, hi = lo*0.9, hi*1.1
		series = append(series, chart.ContinuousSeries{
			Name:    "y = x",
			XValues: []float64{lo, hi},
			YValues: []float64{lo, hi},
			Style: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}
	st := pointStyle(chart.ColorBlue)
	if len(xs) == 1 {
		// Pad to at least two X values for go-chart
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
		st.DotWidth = 6
	}
	series = append(series, chart.ContinuousSeries{Name: cfg.Columns[1], XValues: xs, YValues: ys, Style: st})

	xlabel := cfg.XLabel
	if xlabel == "" {
		xlabel = cfg.Columns[0]
	}
	ylabel := cfg.YLabel
	if ylabel == "" {
		ylabel = cfg.Columns[1]
	}
	ch := chart.Chart{
		Title:      cfg.Title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		Width:      cfg.Width,
		Height:     cfg.Height,
		XAxis:      chart.XAxis{Name: xlabel},
		YAxis:      chart.YAxis{Name: ylabel},
		Series:     series,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter %s vs %s: %w", cfg.Columns[0], cfg.Columns[1], err)
	}
	return png.Decode(&buf)
}

func minVal(a []float64) float64 {
	m := a[0]
	for _, v := range a[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxVal(a []float64) float64 {
	m := a[0]
	for _, v := range a[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
