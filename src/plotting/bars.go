package plotting

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/avandyck/roomeval/src/dataset"
)

// drawBars renders the top-N (or bottom-N) rows by one metric column, one bar
// per row, labeled by cfg.LabelColumn when set. Rows with a null metric are
// skipped before ranking.
func drawBars(ds *dataset.Dataset, cfg Config) (image.Image, error) {
	if err := wantColumns(cfg, 1); err != nil {
		return nil, err
	}
	col, err := numericColumn(ds, cfg.Columns[0])
	if err != nil {
		return nil, err
	}
	var labels *dataset.LabelColumn
	if cfg.LabelColumn != "" {
		lc, ok := ds.Label(cfg.LabelColumn)
		if !ok {
			if kind, exists := ds.Kind(cfg.LabelColumn); exists {
				return nil, fmt.Errorf("%w: label column %q is a %s column", ErrConfig, cfg.LabelColumn, kind)
			}
			return nil, fmt.Errorf("%w: label column %q not in dataset", ErrConfig, cfg.LabelColumn)
		}
		labels = lc
	}

	type ranked struct {
		row int
		val float64
	}
	var rows []ranked
	for i := 0; i < ds.Rows(); i++ {
		if col.Valid[i] {
			rows = append(rows, ranked{row: i, val: col.Values[i]})
		}
	}
	if len(rows) == 0 {
		dataset.Warnf("bars %s: no non-null values, rendering blank figure", cfg.Columns[0])
		return blank(cfg.Width, cfg.Height), nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if cfg.Ascending {
			return rows[i].val < rows[j].val
		}
		return rows[i].val > rows[j].val
	})
	if len(rows) > cfg.TopN {
		rows = rows[:cfg.TopN]
	}

	bars := make([]chart.Value, len(rows))
	minV, maxV := 0.0, 0.0
	for i, r := range rows {
		label := fmt.Sprintf("#%d", r.row)
		if labels != nil && labels.Valid[r.row] {
			label = labels.Values[r.row]
		}
		bars[i] = chart.Value{Value: r.val, Label: label}
		if r.val > maxV {
			maxV = r.val
		}
		if r.val < minV {
			minV = r.val
		}
	}
	if maxV <= minV {
		maxV = minV + 1
	}
	ylabel := cfg.YLabel
	if ylabel == "" {
		ylabel = cfg.Columns[0]
	}
	bc := chart.BarChart{
		Title:      cfg.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		Width:      cfg.Width,
		Height:     cfg.Height,
		BarWidth:   barWidthFor(cfg.Width, len(bars)),
		YAxis: chart.YAxis{
			Name:  ylabel,
			Range: &chart.ContinuousRange{Min: minV * 1.1, Max: maxV * 1.1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bars %s: %w", cfg.Columns[0], err)
	}
	return png.Decode(&buf)
}
