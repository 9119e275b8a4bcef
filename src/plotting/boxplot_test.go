package plotting

import (
	"reflect"
	"testing"
)

func TestComputeBoxStats(t *testing.T) {
	bs := computeBoxStats([]float64{1, 2, 3, 4, 5, 100})
	if bs.q1 != 2 || bs.median != 3 || bs.q3 != 5 {
		t.Fatalf("quartiles = %v %v %v, want 2 3 5", bs.q1, bs.median, bs.q3)
	}
	// 100 is beyond q3 + 1.5*IQR = 9.5
	if !reflect.DeepEqual(bs.outliers, []float64{100}) {
		t.Fatalf("outliers = %v, want [100]", bs.outliers)
	}
	if bs.whiskerLo != 1 || bs.whiskerHi != 5 {
		t.Fatalf("whiskers = %v..%v, want 1..5", bs.whiskerLo, bs.whiskerHi)
	}
}

func TestComputeBoxStatsNoOutliers(t *testing.T) {
	bs := computeBoxStats([]float64{10, 20, 30})
	if len(bs.outliers) != 0 {
		t.Fatalf("unexpected outliers %v", bs.outliers)
	}
	if bs.whiskerLo != 10 || bs.whiskerHi != 30 {
		t.Fatalf("whiskers = %v..%v", bs.whiskerLo, bs.whiskerHi)
	}
}

func TestNiceStep(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.7, 1},
		{1.3, 2},
		{2.2, 2.5},
		{3.0, 5},
		{7.0, 10},
		{13, 20},
	}
	for _, tc := range cases {
		if got := niceStep(tc.in); got != tc.want {
			t.Fatalf("niceStep(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
