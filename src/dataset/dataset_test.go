package dataset

import "testing"

func TestAddColumnRules(t *testing.T) {
	ds := New(2)
	col := &NumericColumn{Values: []float64{1, 2}, Valid: []bool{true, true}}
	if err := ds.AddNumeric("a", col); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ds.AddNumeric("a", col); err == nil {
		t.Fatalf("expected duplicate column error")
	}
	short := &NumericColumn{Values: []float64{1}, Valid: []bool{true}}
	if err := ds.AddNumeric("b", short); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if err := ds.AddLabel("a", &LabelColumn{Values: []string{"x", "y"}, Valid: []bool{true, true}}); err == nil {
		t.Fatalf("expected cross-kind duplicate error")
	}
}

func TestCloneIsolation(t *testing.T) {
	ds := New(1)
	if err := ds.AddNumeric("a", &NumericColumn{Values: []float64{1}, Valid: []bool{true}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cp := ds.Clone()
	if err := cp.AddNumeric("b", &NumericColumn{Values: []float64{2}, Valid: []bool{true}}); err != nil {
		t.Fatalf("add to clone: %v", err)
	}
	if len(ds.Columns()) != 1 {
		t.Fatalf("original grew a column: %v", ds.Columns())
	}
	if len(cp.Columns()) != 2 {
		t.Fatalf("clone columns = %v", cp.Columns())
	}
	// shared column data is visible through both
	if c, ok := cp.Numeric("a"); !ok || c.Values[0] != 1 {
		t.Fatalf("clone lost column a")
	}
}

func TestNonNull(t *testing.T) {
	c := &NumericColumn{Values: []float64{1, 0, 3}, Valid: []bool{true, false, true}}
	got := c.NonNull()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("NonNull = %v", got)
	}
}
