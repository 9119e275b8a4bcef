package plotting

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avandyck/roomeval/src/dataset"
)

// fixture builds a small room-eval style dataset with a null cell in
// rb_corners and one in mean.
func fixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New(6)
	addNum := func(name string, vals []float64, valid []bool) {
		t.Helper()
		if valid == nil {
			valid = make([]bool, len(vals))
			for i := range valid {
				valid[i] = true
			}
		}
		if err := ds.AddNumeric(name, &dataset.NumericColumn{Values: vals, Valid: valid}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	addNum("gt_corners", []float64{4, 4, 6, 8, 4, 10}, nil)
	addNum("rb_corners", []float64{4, 3, 6, 0, 5, 10}, []bool{true, true, true, false, true, true})
	addNum("mean", []float64{8.5, 12.0, 0, 3.2, 40.1, 7.7}, []bool{true, true, false, true, true, true})
	names := &dataset.LabelColumn{
		Values: []string{"r1", "r2", "r3", "r4", "r5", "r6"},
		Valid:  []bool{true, true, true, true, true, true},
	}
	if err := ds.AddLabel("name", names); err != nil {
		t.Fatalf("add name: %v", err)
	}
	return ds
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(b) < 8 || !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("%s is not a PNG (%d bytes)", path, len(b))
	}
}

func TestRenderHistogram(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	path, err := Render(ds, Config{Kind: KindHistogram, Columns: []string{"mean"}, OutDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != "Histogram_for_mean.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	assertPNG(t, path)
}

func TestRenderScatterSkipsNulls(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	// rb_corners has a null row; the point is excluded, the render succeeds
	path, err := Render(ds, Config{Kind: KindScatter, Columns: []string{"gt_corners", "rb_corners"}, IdentityLine: true, OutDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPNG(t, path)
}

func TestRenderBoxplot(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	path, err := Render(ds, Config{Kind: KindBoxplot, Columns: []string{"mean", "gt_corners"}, YLabel: "Degrees", OutDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPNG(t, path)
}

func TestRenderBars(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	path, err := Render(ds, Config{Kind: KindBars, Columns: []string{"mean"}, TopN: 3, Ascending: true, LabelColumn: "name", OutDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != "Top_3_best_results_for_mean.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	assertPNG(t, path)
}

func TestRenderUnknownKind(t *testing.T) {
	ds := fixture(t)
	out := filepath.Join(t.TempDir(), "plots")
	_, err := Render(ds, Config{Kind: "pie", Columns: []string{"mean"}, OutDir: out})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	// nothing written: the output directory must not even exist
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output dir was created on config error")
	}
}

func TestRenderMissingColumn(t *testing.T) {
	ds := fixture(t)
	out := filepath.Join(t.TempDir(), "plots")
	_, err := Render(ds, Config{Kind: KindHistogram, Columns: []string{"nope"}, OutDir: out})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output dir was created on config error")
	}
}

func TestRenderLabelColumnRejected(t *testing.T) {
	ds := fixture(t)
	_, err := Render(ds, Config{Kind: KindHistogram, Columns: []string{"name"}, OutDir: t.TempDir()})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for label column, got %v", err)
	}
}

func TestRenderWrongArity(t *testing.T) {
	ds := fixture(t)
	_, err := Render(ds, Config{Kind: KindScatter, Columns: []string{"mean"}, OutDir: t.TempDir()})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for single scatter column, got %v", err)
	}
}

func TestRenderCreatesNestedOutDir(t *testing.T) {
	ds := fixture(t)
	out := filepath.Join(t.TempDir(), "a", "b", "plots")
	path, err := Render(ds, Config{Kind: KindHistogram, Columns: []string{"mean"}, OutDir: out})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPNG(t, path)
}

func TestRenderIdempotent(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	cfg := Config{Kind: KindBoxplot, Columns: []string{"mean"}, OutDir: out}
	p1, err := Render(ds, cfg)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b1, err := os.ReadFile(p1)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	p2, err := Render(ds, cfg)
	if err != nil {
		t.Fatalf("second render over existing file: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("paths differ: %s vs %s", p1, p2)
	}
	b2, err := os.ReadFile(p2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatalf("re-render produced different bytes (%d vs %d)", len(b1), len(b2))
	}
}

func TestRenderAllNullColumn(t *testing.T) {
	ds := dataset.New(2)
	if err := ds.AddNumeric("v", &dataset.NumericColumn{Values: []float64{0, 0}, Valid: []bool{false, false}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	path, err := Render(ds, Config{Kind: KindHistogram, Columns: []string{"v"}, OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("render all-null column: %v", err)
	}
	assertPNG(t, path)
}

func TestDeriveFileName(t *testing.T) {
	if got := DeriveFileName("Scatter plot gt_corners vs rb_corners"); got != "Scatter_plot_gt_corners_vs_rb_corners.png" {
		t.Fatalf("DeriveFileName = %s", got)
	}
}

func TestRenderSuiteContinueOnError(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	s := Suite{
		OutDir:          out,
		ContinueOnError: true,
		Plots: []Config{
			{Kind: KindHistogram, Columns: []string{"mean"}},
			{Kind: KindHistogram, Columns: []string{"missing"}},
			{Kind: KindBoxplot, Columns: []string{"gt_corners"}},
		},
	}
	paths, err := RenderSuite(ds, s)
	if err != nil {
		t.Fatalf("suite: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 written plots, got %d (%v)", len(paths), paths)
	}
}

func TestRenderSuiteFailFast(t *testing.T) {
	ds := fixture(t)
	s := Suite{
		OutDir: t.TempDir(),
		Plots: []Config{
			{Kind: KindHistogram, Columns: []string{"missing"}},
			{Kind: KindHistogram, Columns: []string{"mean"}},
		},
	}
	paths, err := RenderSuite(ds, s)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no written plots, got %v", paths)
	}
}
