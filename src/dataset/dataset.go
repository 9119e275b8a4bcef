package dataset

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound marks a missing input file (or a 404 for URL inputs).
	ErrNotFound = errors.New("input not found")
	// ErrParse marks invalid JSON or a document shape we do not accept.
	ErrParse = errors.New("parse error")
)

// ColumnKind distinguishes the two cell types a loaded column can hold.
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindLabel
)

func (k ColumnKind) String() string {
	if k == KindLabel {
		return "label"
	}
	return "numeric"
}

// NumericColumn holds float64 cells with an explicit validity mask.
// A cell with Valid[i]==false is null; Values[i] is meaningless then.
type NumericColumn struct {
	Values []float64
	Valid  []bool
}

// Append adds one cell to the column.
func (c *NumericColumn) Append(v float64, valid bool) {
	c.Values = append(c.Values, v)
	c.Valid = append(c.Valid, valid)
}

// NonNull returns the valid cells in row order.
func (c *NumericColumn) NonNull() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// LabelColumn holds string cells with an explicit validity mask.
type LabelColumn struct {
	Values []string
	Valid  []bool
}

// Append adds one cell to the column.
func (c *LabelColumn) Append(v string, valid bool) {
	c.Values = append(c.Values, v)
	c.Valid = append(c.Valid, valid)
}

// Dataset is a column-oriented table over a fixed number of rows. Columns are
// typed once at load time; every column spans all rows and missing cells carry
// an explicit null marker. A Dataset is treated as immutable once handed to a
// consumer; derivation makes a Clone and adds columns to the copy.
type Dataset struct {
	rows    int
	order   []string
	numeric map[string]*NumericColumn
	labels  map[string]*LabelColumn
}

// New returns an empty Dataset with the given row count.
func New(rows int) *Dataset {
	return &Dataset{
		rows:    rows,
		numeric: map[string]*NumericColumn{},
		labels:  map[string]*LabelColumn{},
	}
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the column names in their stable order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.order...)
}

// Kind reports the kind of a named column and whether it exists.
func (d *Dataset) Kind(name string) (ColumnKind, bool) {
	if _, ok := d.numeric[name]; ok {
		return KindNumeric, true
	}
	if _, ok := d.labels[name]; ok {
		return KindLabel, true
	}
	return 0, false
}

// Numeric returns the named numeric column, or ok=false if it is absent or a
// label column.
func (d *Dataset) Numeric(name string) (*NumericColumn, bool) {
	c, ok := d.numeric[name]
	return c, ok
}

// Label returns the named label column, or ok=false if it is absent or numeric.
func (d *Dataset) Label(name string) (*LabelColumn, bool) {
	c, ok := d.labels[name]
	return c, ok
}

// AddNumeric attaches a numeric column. The column must span all rows and the
// name must be free.
func (d *Dataset) AddNumeric(name string, c *NumericColumn) error {
	if _, exists := d.Kind(name); exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(c.Values) != d.rows || len(c.Valid) != d.rows {
		return fmt.Errorf("column %q has %d cells, dataset has %d rows", name, len(c.Values), d.rows)
	}
	d.numeric[name] = c
	d.order = append(d.order, name)
	return nil
}

// AddLabel attaches a label column under the same rules as AddNumeric.
func (d *Dataset) AddLabel(name string, c *LabelColumn) error {
	if _, exists := d.Kind(name); exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(c.Values) != d.rows || len(c.Valid) != d.rows {
		return fmt.Errorf("column %q has %d cells, dataset has %d rows", name, len(c.Values), d.rows)
	}
	d.labels[name] = c
	d.order = append(d.order, name)
	return nil
}

// Clone returns a Dataset sharing the column data but owning its own column
// registry, so derived columns can be added without touching the original.
func (d *Dataset) Clone() *Dataset {
	out := New(d.rows)
	out.order = append(out.order, d.order...)
	for k, v := range d.numeric {
		out.numeric[k] = v
	}
	for k, v := range d.labels {
		out.labels[k] = v
	}
	return out
}

// sortColumns fixes the column order to sorted names. The loader calls this
// once so output is deterministic regardless of JSON map iteration order.
func (d *Dataset) sortColumns() {
	sort.Strings(d.order)
}
