package deviation

import (
	"math"
	"sort"

	"github.com/avandyck/roomeval/src/dataset"
)

// Stats summarizes the non-null cells of one numeric column.
type Stats struct {
	Column string
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
	StdDev float64
}

// Summarize computes Stats for the named numeric column. Null cells are
// excluded from every aggregate. Fails with ErrSchema when the column is
// absent or not numeric.
func Summarize(ds *dataset.Dataset, col string) (Stats, error) {
	nc, err := numericColumn(ds, col)
	if err != nil {
		return Stats{}, err
	}
	vals := nc.NonNull()
	s := Stats{Column: col, Count: len(vals)}
	if len(vals) == 0 {
		return s, nil
	}
	s.Mean = mean(vals)
	s.Median = percentile(vals, 50)
	s.Min = minVal(vals)
	s.Max = maxVal(vals)
	s.P25 = percentile(vals, 25)
	s.P75 = percentile(vals, 75)
	s.StdDev = stddev(vals, s.Mean)
	return s, nil
}

func mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range a {
		s += v
	}
	return s / float64(len(a))
}

func minVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// percentile uses the nearest-rank method over a sorted copy of a.
func percentile(a []float64, p float64) float64 {
	if len(a) == 0 {
		return 0
	}
	cp := append([]float64(nil), a...)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[len(cp)-1]
	}
	idx := int(math.Ceil(p/100*float64(len(cp)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cp) {
		idx = len(cp) - 1
	}
	return cp[idx]
}

// stddev is the population standard deviation.
func stddev(a []float64, m float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var ss float64
	for _, v := range a {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(a)))
}
