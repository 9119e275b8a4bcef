// roomeval entrypoint.
//
// Pipeline: load a JSON evaluation export (file path or URL), derive
// deviation columns for the configured predicted/ground-truth pairs, print
// per-column statistics, then render the plot suite as PNG files under the
// output directory.
//
// Design notes:
//   - The plot suite comes from a YAML config (-config) or the built-in
//     room-corner default; -out-dir and -pairs override the config.
//   - Errors propagate straight to stderr with a non-zero exit; there is no
//     retry. A null cell is data, not an error: the deriver emits null
//     deviations and the renderer skips the row.
//   - Dependency direction: main -> config -> plotting/deviation -> dataset.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avandyck/roomeval/src/config"
	"github.com/avandyck/roomeval/src/dataset"
	"github.com/avandyck/roomeval/src/deviation"
	"github.com/avandyck/roomeval/src/plotting"
)

func main() {
	input := flag.String("input", "deviation_units.json", "Path or http(s) URL of the JSON evaluation export")
	outDir := flag.String("out-dir", "", "Output directory for plots (overrides config; default from config, usually ./plots)")
	cfgPath := flag.String("config", "", "Optional YAML report config; built-in room-corner suite when empty")
	pairsFlag := flag.String("pairs", "", "Deviation pairs as pred:gt[,pred:gt...] (overrides config pairs)")
	absFlag := flag.Bool("abs", false, "Also derive absolute deviation columns")
	statsOnly := flag.Bool("stats-only", false, "Print column statistics and skip plot rendering")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	dataset.SetLogLevel(*logLevel)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	pairs := cfg.DerivePairs()
	if *pairsFlag != "" {
		parsed, err := parsePairs(*pairsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse -pairs: %v\n", err)
			os.Exit(1)
		}
		pairs = parsed
	}

	start := time.Now()
	ds, err := dataset.Load(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *input, err)
		os.Exit(1)
	}
	fmt.Printf("[load] %s: %d rows, %d columns\n", *input, ds.Rows(), len(ds.Columns()))

	table, err := deviation.Derive(ds, pairs, deviation.Options{Abs: *absFlag || cfg.AbsDeviation})
	if err != nil {
		fmt.Fprintf(os.Stderr, "derive deviations: %v\n", err)
		os.Exit(1)
	}

	for _, col := range table.Columns() {
		if kind, _ := table.Kind(col); kind != dataset.KindNumeric {
			continue
		}
		s, err := deviation.Summarize(table, col)
		if err != nil {
			fmt.Fprintf(os.Stderr, "summarize %s: %v\n", col, err)
			os.Exit(1)
		}
		fmt.Printf("[stats] %-28s n=%-4d mean=%8.2f median=%8.2f min=%8.2f max=%8.2f p25=%8.2f p75=%8.2f stddev=%7.2f\n",
			s.Column, s.Count, s.Mean, s.Median, s.Min, s.Max, s.P25, s.P75, s.StdDev)
	}

	if *statsOnly {
		return
	}
	paths, err := plotting.RenderSuite(table, cfg.Suite())
	if err != nil {
		fmt.Fprintf(os.Stderr, "render plots: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Printf("[plot] wrote %s\n", p)
	}
	fmt.Printf("[plot] %d plots under %s in %s\n", len(paths), cfg.OutDir, time.Since(start).Round(time.Millisecond))
}

// parsePairs parses the -pairs shorthand: comma-separated pred:gt entries.
func parsePairs(s string) ([]deviation.Pair, error) {
	var out []deviation.Pair
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pg := strings.SplitN(part, ":", 2)
		if len(pg) != 2 || pg[0] == "" || pg[1] == "" {
			return nil, fmt.Errorf("bad pair %q, want pred:gt", part)
		}
		out = append(out, deviation.Pair{Predicted: pg[0], GroundTruth: pg[1]})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pairs in %q", s)
	}
	return out, nil
}
