// Package deviation derives model-vs-ground-truth deviation columns from a
// loaded dataset and computes descriptive statistics over numeric columns.
package deviation

import (
	"errors"
	"fmt"
	"math"

	"github.com/avandyck/roomeval/src/dataset"
)

// ErrSchema marks a referenced column that is absent or not numeric.
var ErrSchema = errors.New("unknown column")

// Pair names a predicted column and its ground-truth counterpart.
type Pair struct {
	Predicted   string
	GroundTruth string
}

// ColumnName is the name of the derived signed-deviation column.
func (p Pair) ColumnName() string { return p.Predicted + "_minus_" + p.GroundTruth }

// AbsColumnName is the name of the derived absolute-deviation column.
func (p Pair) AbsColumnName() string { return "abs_" + p.ColumnName() }

// Options controls derivation.
type Options struct {
	// Abs additionally emits |predicted - ground_truth| per pair.
	Abs bool
}

// Derive returns a copy of ds extended with one deviation column per pair
// (deviation = predicted - ground_truth). A row where either operand is null
// yields a null deviation; rows are never dropped. Referencing an absent or
// non-numeric column fails with ErrSchema.
func Derive(ds *dataset.Dataset, pairs []Pair, opts Options) (*dataset.Dataset, error) {
	out := ds.Clone()
	for _, p := range pairs {
		pred, err := numericColumn(ds, p.Predicted)
		if err != nil {
			return nil, err
		}
		gt, err := numericColumn(ds, p.GroundTruth)
		if err != nil {
			return nil, err
		}
		n := ds.Rows()
		col := &dataset.NumericColumn{Values: make([]float64, n), Valid: make([]bool, n)}
		for i := 0; i < n; i++ {
			if pred.Valid[i] && gt.Valid[i] {
				col.Values[i] = pred.Values[i] - gt.Values[i]
				col.Valid[i] = true
			}
		}
		if err := out.AddNumeric(p.ColumnName(), col); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		if opts.Abs {
			abs := &dataset.NumericColumn{Values: make([]float64, n), Valid: make([]bool, n)}
			for i := 0; i < n; i++ {
				if col.Valid[i] {
					abs.Values[i] = math.Abs(col.Values[i])
					abs.Valid[i] = true
				}
			}
			if err := out.AddNumeric(p.AbsColumnName(), abs); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSchema, err)
			}
		}
	}
	return out, nil
}

func numericColumn(ds *dataset.Dataset, name string) (*dataset.NumericColumn, error) {
	col, ok := ds.Numeric(name)
	if !ok {
		if kind, exists := ds.Kind(name); exists {
			return nil, fmt.Errorf("%w: %s is a %s column, numeric required", ErrSchema, name, kind)
		}
		return nil, fmt.Errorf("%w: %s", ErrSchema, name)
	}
	return col, nil
}
