// Package frame provides labeled two-dimensional and one-dimensional numeric
// data on top of gonum matrices.
//
// A Frame pairs a *mat.Dense with a row index and column labels, a Series pairs
// a *mat.VecDense with a row index and an optional name. Both are immutable from
// the outside: accessors return copies of the labels while Values exposes the
// underlying storage without copying so that estimators can consume it directly.
package frame

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// Labeled is implemented by values carrying a row index.
type Labeled interface {
	// Index returns a copy of the row labels.
	Index() []string
	// Len returns the number of rows.
	Len() int
}

// Frame is a matrix with one label per row and one label per column.
type Frame struct {
	index   []string
	columns []string
	values  *mat.Dense
}

// DefaultLabels returns "0".."n-1".
func DefaultLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// New creates a Frame over values. A nil index or nil columns default to
// positional labels. The values are not copied.
func New(values *mat.Dense, index, columns []string) (*Frame, error) {
	if values == nil || values.IsEmpty() {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.New")
	}
	r, c := values.Dims()
	if index == nil {
		index = DefaultLabels(r)
	}
	if columns == nil {
		columns = DefaultLabels(c)
	}
	if len(index) != r {
		return nil, errors.NewDimensionError("frame.New", r, len(index), 0)
	}
	if len(columns) != c {
		return nil, errors.NewDimensionError("frame.New", c, len(columns), 1)
	}
	return &Frame{
		index:   append([]string(nil), index...),
		columns: append([]string(nil), columns...),
		values:  values,
	}, nil
}

// FromRows builds a Frame from row-major data.
func FromRows(rows [][]float64, index, columns []string) (*Frame, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.FromRows")
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.NewValueError("frame.FromRows",
				fmt.Sprintf("row %d has %d values, want %d", i, len(row), c))
		}
		data = append(data, row...)
	}
	return New(mat.NewDense(len(rows), c, data), index, columns)
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(values *mat.Dense, index, columns []string) *Frame {
	f, err := New(values, index, columns)
	if err != nil {
		panic(err)
	}
	return f
}

// Index returns a copy of the row labels.
func (f *Frame) Index() []string { return append([]string(nil), f.index...) }

// Columns returns a copy of the column labels.
func (f *Frame) Columns() []string { return append([]string(nil), f.columns...) }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (int, int) { return f.values.Dims() }

// Values returns the underlying matrix without copying.
func (f *Frame) Values() *mat.Dense { return f.values }

// At returns the value at row i, column j.
func (f *Frame) At(i, j int) float64 { return f.values.At(i, j) }

// ColumnPosition returns the position of the named column or -1.
func (f *Frame) ColumnPosition(name string) int {
	for j, c := range f.columns {
		if c == name {
			return j
		}
	}
	return -1
}

// Col returns the named column as a Series sharing the row index.
func (f *Frame) Col(name string) (*Series, error) {
	j := f.ColumnPosition(name)
	if j < 0 {
		return nil, errors.NewAttributeError("Frame", name)
	}
	v := mat.VecDenseCopyOf(f.values.ColView(j))
	return &Series{index: f.Index(), values: v, name: name}, nil
}

// Select returns a new Frame holding the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.Select")
	}
	r, _ := f.Dims()
	out := mat.NewDense(r, len(names), nil)
	for k, name := range names {
		j := f.ColumnPosition(name)
		if j < 0 {
			return nil, errors.NewAttributeError("Frame", name)
		}
		out.SetCol(k, mat.Col(nil, j, f.values))
	}
	return New(out, f.index, names)
}

// Drop returns a new Frame without the named columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if f.ColumnPosition(name) < 0 {
			return nil, errors.NewAttributeError("Frame", name)
		}
		drop[name] = true
	}
	keep := make([]string, 0, len(f.columns))
	for _, c := range f.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return f.Select(keep...)
}

// WithColumns returns a Frame sharing the values of f with new column labels.
func (f *Frame) WithColumns(columns []string) (*Frame, error) {
	return New(f.values, f.index, columns)
}

// WithIndex returns a Frame sharing the values of f with a new row index.
func (f *Frame) WithIndex(index []string) (*Frame, error) {
	return New(f.values, index, f.columns)
}

// Equal reports whether f and other carry the same labels and values.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return equalLabels(f.index, other.index) &&
		equalLabels(f.columns, other.columns) &&
		mat.Equal(f.values, other.values)
}

// String renders f as a table with the index in the first column.
func (f *Frame) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	header := make([]any, 0, len(f.columns)+1)
	header = append(header, "")
	for _, c := range f.columns {
		header = append(header, c)
	}
	table.Header(header...)

	r, c := f.Dims()
	for i := 0; i < r; i++ {
		row := make([]string, 0, c+1)
		row = append(row, f.index[i])
		for j := 0; j < c; j++ {
			row = append(row, strconv.FormatFloat(f.values.At(i, j), 'g', -1, 64))
		}
		_ = table.Append(row)
	}
	_ = table.Render()
	return buf.String()
}

func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
