package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load reads a JSON evaluation export and builds a Dataset. The path may be a
// filesystem path or an http(s) URL. Accepted document shapes are an array of
// objects (one object per sample) or a single object of equal-length parallel
// arrays (one array per column).
func Load(path string) (*Dataset, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return loadURL(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	Debugf("read %d bytes from %s", len(b), path)
	return Parse(b)
}

func loadURL(url string) (*Dataset, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	Debugf("fetched %d bytes from %s", len(b), url)
	return Parse(b)
}

// Parse builds a Dataset from raw JSON bytes. Numbers are decoded with
// json.Number so integer cells survive unchanged through float64 conversion.
func Parse(b []byte) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	switch v := root.(type) {
	case []interface{}:
		return fromRows(v)
	case map[string]interface{}:
		return fromColumns(v)
	default:
		return nil, fmt.Errorf("%w: expected array of objects or object of arrays, got %T", ErrParse, root)
	}
}

// fromRows handles the array-of-objects shape. The column set is the union of
// keys across rows; rows missing a key get nulls. Column order is sorted so
// output is stable across runs.
func fromRows(rows []interface{}) (*Dataset, error) {
	objs := make([]map[string]interface{}, len(rows))
	union := map[string]struct{}{}
	for i, r := range rows {
		obj, ok := r.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not an object (got %T)", ErrParse, i, r)
		}
		objs[i] = obj
		for k := range obj {
			union[k] = struct{}{}
		}
	}
	ds := New(len(rows))
	for name := range union {
		cells := make([]interface{}, len(objs))
		for i, obj := range objs {
			cells[i] = obj[name] // nil when the row lacks the key
		}
		if err := addColumn(ds, name, cells); err != nil {
			return nil, err
		}
	}
	ds.sortColumns()
	return ds, nil
}

// fromColumns handles the object-of-parallel-arrays shape.
func fromColumns(cols map[string]interface{}) (*Dataset, error) {
	rows := -1
	arrays := map[string][]interface{}{}
	for name, v := range cols {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: column %q is not an array (got %T)", ErrParse, name, v)
		}
		if rows == -1 {
			rows = len(arr)
		} else if len(arr) != rows {
			return nil, fmt.Errorf("%w: column %q has %d cells, expected %d", ErrParse, name, len(arr), rows)
		}
		arrays[name] = arr
	}
	if rows == -1 {
		rows = 0
	}
	ds := New(rows)
	for name, arr := range arrays {
		if err := addColumn(ds, name, arr); err != nil {
			return nil, err
		}
	}
	ds.sortColumns()
	return ds, nil
}

// addColumn types the cells and attaches the resulting column. Nulls carry no
// type information; a column of only nulls defaults to numeric. Mixing numbers
// and strings, or any non-scalar cell, is a shape violation.
func addColumn(ds *Dataset, name string, cells []interface{}) error {
	sawNumber, sawString := false, false
	for _, c := range cells {
		switch c.(type) {
		case nil:
		case json.Number:
			sawNumber = true
		case string:
			sawString = true
		default:
			return fmt.Errorf("%w: column %q has unsupported cell type %T", ErrParse, name, c)
		}
	}
	if sawNumber && sawString {
		return fmt.Errorf("%w: column %q mixes numeric and string values", ErrParse, name)
	}
	if sawString {
		col := &LabelColumn{}
		for _, c := range cells {
			if s, ok := c.(string); ok {
				col.Append(s, true)
			} else {
				col.Append("", false)
			}
		}
		if err := ds.AddLabel(name, col); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil
	}
	col := &NumericColumn{}
	for _, c := range cells {
		n, ok := c.(json.Number)
		if !ok {
			col.Append(0, false)
			continue
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("%w: column %q: %v", ErrParse, name, err)
		}
		col.Append(f, true)
	}
	if err := ds.AddNumeric(name, col); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
