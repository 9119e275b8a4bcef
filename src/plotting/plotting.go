// Package plotting renders dataset columns as PNG figures (histogram,
// boxplot, scatter, top/bottom bar charts) under an output directory. Every
// call builds and owns its own chart value; there is no shared figure state,
// so re-rendering identical inputs overwrites the same file with equivalent
// content.
package plotting

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/avandyck/roomeval/src/dataset"
)

// ErrConfig marks an unrecognized plot kind or a column selection the dataset
// cannot satisfy.
var ErrConfig = errors.New("invalid plot config")

// Kind selects the visualization type.
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindBoxplot   Kind = "boxplot"
	KindScatter   Kind = "scatter"
	KindBars      Kind = "bars"
)

const (
	defaultWidth  = 1000
	defaultHeight = 600
	defaultBins   = 10
	defaultTopN   = 10
)

// Config describes one plot.
type Config struct {
	Kind    Kind
	Columns []string // histogram/bars: 1; scatter: 2 (x, y); boxplot: 1+
	Title   string   // derived from kind+columns when empty
	XLabel  string
	YLabel  string

	Bins int // histogram bin count (default 10)

	TopN        int    // bars: number of rows to keep (default 10)
	Ascending   bool   // bars: true keeps the smallest values
	LabelColumn string // bars: label column naming each row

	IdentityLine bool // scatter: draw a dashed y=x reference line

	Width  int // default 1000
	Height int // default 600

	OutDir   string
	FileName string // derived from the title when empty
}

// Render draws the configured figure and writes exactly one PNG under
// cfg.OutDir (created if absent). It returns the written path. Configuration
// problems fail with ErrConfig before anything is written.
func Render(ds *dataset.Dataset, cfg Config) (string, error) {
	cfg = withDefaults(cfg)
	img, err := drawFigure(ds, cfg)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode %s: %w", cfg.FileName, err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	outPath := filepath.Join(cfg.OutDir, cfg.FileName)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	dataset.Debugf("wrote %s (%d bytes)", outPath, buf.Len())
	return outPath, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Bins <= 0 {
		cfg.Bins = defaultBins
	}
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "plots"
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle(cfg)
	}
	if cfg.FileName == "" {
		cfg.FileName = DeriveFileName(cfg.Title)
	}
	return cfg
}

func defaultTitle(cfg Config) string {
	switch cfg.Kind {
	case KindHistogram:
		return "Histogram for " + strings.Join(cfg.Columns, ", ")
	case KindBoxplot:
		return "Boxplots for " + strings.Join(cfg.Columns, ", ")
	case KindScatter:
		if len(cfg.Columns) == 2 {
			return fmt.Sprintf("Scatter plot %s vs %s", cfg.Columns[0], cfg.Columns[1])
		}
		return "Scatter plot"
	case KindBars:
		order := "best"
		if !cfg.Ascending {
			order = "worst"
		}
		return fmt.Sprintf("Top %d %s results for %s", cfg.TopN, order, strings.Join(cfg.Columns, ", "))
	default:
		return string(cfg.Kind)
	}
}

// DeriveFileName turns a plot title into its output filename: spaces become
// underscores and a .png extension is appended.
func DeriveFileName(title string) string {
	return strings.ReplaceAll(title, " ", "_") + ".png"
}

func drawFigure(ds *dataset.Dataset, cfg Config) (image.Image, error) {
	switch cfg.Kind {
	case KindHistogram:
		return drawHistogram(ds, cfg)
	case KindBoxplot:
		return drawBoxplot(ds, cfg)
	case KindScatter:
		return drawScatter(ds, cfg)
	case KindBars:
		return drawBars(ds, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown plot kind %q", ErrConfig, cfg.Kind)
	}
}

// numericColumn resolves one column for plotting; absence or a label column is
// a configuration error.
func numericColumn(ds *dataset.Dataset, name string) (*dataset.NumericColumn, error) {
	col, ok := ds.Numeric(name)
	if !ok {
		if kind, exists := ds.Kind(name); exists {
			return nil, fmt.Errorf("%w: column %q is a %s column, numeric required", ErrConfig, name, kind)
		}
		return nil, fmt.Errorf("%w: column %q not in dataset", ErrConfig, name)
	}
	return col, nil
}

func wantColumns(cfg Config, n int) error {
	if len(cfg.Columns) != n {
		return fmt.Errorf("%w: %s needs %d column(s), got %d", ErrConfig, cfg.Kind, n, len(cfg.Columns))
	}
	return nil
}

// blank returns a white image used when a selection has no plottable points.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
