// evalstats prints per-column statistics for a JSON evaluation export without
// rendering any plots. Useful for a quick look at a new export.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/avandyck/roomeval/src/dataset"
	"github.com/avandyck/roomeval/src/deviation"
)

func main() {
	var file string
	flag.StringVar(&file, "input", "deviation_units.json", "Path or http(s) URL of the JSON evaluation export")
	flag.Parse()

	ds, err := dataset.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rows: %d\n", ds.Rows())
	fmt.Printf("Columns: %d\n", len(ds.Columns()))
	for _, col := range ds.Columns() {
		kind, _ := ds.Kind(col)
		if kind != dataset.KindNumeric {
			fmt.Printf("%-24s %s\n", col, kind)
			continue
		}
		s, err := deviation.Summarize(ds, col)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-24s n=%-4d mean=%.2f median=%.2f min=%.2f max=%.2f\n", col, s.Count, s.Mean, s.Median, s.Min, s.Max)
	}
}
