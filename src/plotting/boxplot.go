package plotting

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/avandyck/roomeval/src/dataset"
)

var (
	boxFill    = color.RGBA{R: 176, G: 196, B: 222, A: 255}
	boxBorder  = color.RGBA{R: 70, G: 90, B: 120, A: 255}
	gridColor  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	axisColor  = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	medianLine = color.RGBA{R: 180, G: 40, B: 40, A: 255}
)

// boxStats holds the five-number summary of one column plus its outliers.
// Whiskers extend to the most extreme values within 1.5 IQR of the box.
type boxStats struct {
	q1, median, q3       float64
	whiskerLo, whiskerHi float64
	outliers             []float64
}

func computeBoxStats(vals []float64) boxStats {
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	bs := boxStats{
		q1:     quantileSorted(cp, 25),
		median: quantileSorted(cp, 50),
		q3:     quantileSorted(cp, 75),
	}
	iqr := bs.q3 - bs.q1
	loLimit := bs.q1 - 1.5*iqr
	hiLimit := bs.q3 + 1.5*iqr
	bs.whiskerLo, bs.whiskerHi = bs.q1, bs.q3
	first := true
	for _, v := range cp {
		if v < loLimit || v > hiLimit {
			bs.outliers = append(bs.outliers, v)
			continue
		}
		if first {
			bs.whiskerLo = v
			first = false
		}
		bs.whiskerHi = v
	}
	return bs
}

// quantileSorted is the nearest-rank percentile over already sorted input.
func quantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// drawBoxplot renders one box-and-whisker per selected column onto an RGBA
// raster. go-chart has no boxplot primitive, so this draws directly and
// labels the axes with the basicfont face.
func drawBoxplot(ds *dataset.Dataset, cfg Config) (image.Image, error) {
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("%w: boxplot needs at least one column", ErrConfig)
	}
	cols := make([][]float64, len(cfg.Columns))
	var all []float64
	for i, name := range cfg.Columns {
		c, err := numericColumn(ds, name)
		if err != nil {
			return nil, err
		}
		cols[i] = c.NonNull()
		all = append(all, cols[i]...)
	}
	if len(all) == 0 {
		dataset.Warnf("boxplot %v: no non-null values, rendering blank figure", cfg.Columns)
		return blank(cfg.Width, cfg.Height), nil
	}

	w, h := cfg.Width, cfg.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	const (
		marginLeft   = 70
		marginRight  = 20
		marginTop    = 50
		marginBottom = 50
	)
	plotLeft, plotRight := marginLeft, w-marginRight
	plotTop, plotBottom := marginTop, h-marginBottom

	axisMin, axisMax := minVal(all), maxVal(all)
	if axisMax == axisMin {
		axisMin, axisMax = axisMin-1, axisMax+1
	}
	pad := (axisMax - axisMin) * 0.05
	axisMin -= pad
	axisMax += pad
	toY := func(v float64) int {
		frac := (v - axisMin) / (axisMax - axisMin)
		return plotBottom - int(frac*float64(plotBottom-plotTop))
	}

	// grid lines and tick labels
	step := niceStep((axisMax - axisMin) / 6)
	for v := math.Ceil(axisMin/step) * step; v <= axisMax; v += step {
		y := toY(v)
		fillRect(img, plotLeft, y, plotRight, y, gridColor)
		label := formatTick(v)
		drawLabel(img, plotLeft-8-textWidth(label), y+4, label)
	}
	// axes
	fillRect(img, plotLeft, plotTop, plotLeft, plotBottom, axisColor)
	fillRect(img, plotLeft, plotBottom, plotRight, plotBottom, axisColor)

	slot := float64(plotRight-plotLeft) / float64(len(cols))
	for i, vals := range cols {
		cx := plotLeft + int((float64(i)+0.5)*slot)
		name := cfg.Columns[i]
		drawLabel(img, cx-textWidth(name)/2, plotBottom+18, name)
		if len(vals) == 0 {
			continue
		}
		bs := computeBoxStats(vals)
		half := int(slot * 0.3)
		if half > 50 {
			half = 50
		}
		if half < 6 {
			half = 6
		}
		yQ1, yQ3 := toY(bs.q1), toY(bs.q3)
		yMed := toY(bs.median)
		yLo, yHi := toY(bs.whiskerLo), toY(bs.whiskerHi)
		// whisker stem and caps
		fillRect(img, cx, yHi, cx, yQ3, axisColor)
		fillRect(img, cx, yQ1, cx, yLo, axisColor)
		fillRect(img, cx-half/2, yHi, cx+half/2, yHi, axisColor)
		fillRect(img, cx-half/2, yLo, cx+half/2, yLo, axisColor)
		// box
		fillRect(img, cx-half, yQ3, cx+half, yQ1, boxFill)
		strokeRect(img, cx-half, yQ3, cx+half, yQ1, boxBorder)
		// median
		fillRect(img, cx-half, yMed, cx+half, yMed, medianLine)
		// outliers
		for _, v := range bs.outliers {
			y := toY(v)
			fillRect(img, cx-1, y-1, cx+1, y+1, boxBorder)
		}
	}

	drawLabel(img, w/2-textWidth(cfg.Title)/2, marginTop/2+4, cfg.Title)
	if cfg.YLabel != "" {
		drawLabel(img, 8, plotTop-8, cfg.YLabel)
	}
	return img, nil
}

// niceStep rounds a raw tick interval up to a 1/2/2.5/5 multiple of a power
// of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// fillRect fills the inclusive pixel rectangle; a zero-width or zero-height
// rectangle renders as a 1px line.
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), image.NewUniform(c), image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	fillRect(img, x0, y0, x1, y0, c)
	fillRect(img, x0, y1, x1, y1, c)
	fillRect(img, x0, y0, x0, y1, c)
	fillRect(img, x1, y0, x1, y1, c)
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(axisColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(text)
}

func textWidth(text string) int {
	dr := &font.Drawer{Face: basicfont.Face7x13}
	return dr.MeasureString(text).Ceil()
}
