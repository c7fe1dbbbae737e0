package frame

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// Series is a vector with one label per element and an optional name.
type Series struct {
	index  []string
	values *mat.VecDense
	name   string
}

// NewSeries creates a Series over values. A nil index defaults to positional
// labels. The values are not copied.
func NewSeries(values *mat.VecDense, index []string) (*Series, error) {
	if values == nil || values.IsEmpty() {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.NewSeries")
	}
	n := values.Len()
	if index == nil {
		index = DefaultLabels(n)
	}
	if len(index) != n {
		return nil, errors.NewDimensionError("frame.NewSeries", n, len(index), 0)
	}
	return &Series{index: append([]string(nil), index...), values: values}, nil
}

// SeriesFromSlice copies data into a new Series.
func SeriesFromSlice(data []float64, index []string) (*Series, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.SeriesFromSlice")
	}
	return NewSeries(mat.NewVecDense(len(data), append([]float64(nil), data...)), index)
}

// MustSeries is like SeriesFromSlice but panics on error.
func MustSeries(data []float64, index []string) *Series {
	s, err := SeriesFromSlice(data, index)
	if err != nil {
		panic(err)
	}
	return s
}

// Named returns a Series sharing the values of s with the given name.
func (s *Series) Named(name string) *Series {
	return &Series{index: s.index, values: s.values, name: name}
}

// Name returns the series name, empty when unnamed.
func (s *Series) Name() string { return s.name }

// Index returns a copy of the row labels.
func (s *Series) Index() []string { return append([]string(nil), s.index...) }

// Len returns the number of elements.
func (s *Series) Len() int { return len(s.index) }

// Values returns the underlying vector without copying.
func (s *Series) Values() *mat.VecDense { return s.values }

// At returns the i-th value.
func (s *Series) At(i int) float64 { return s.values.AtVec(i) }

// Equal reports whether s and other carry the same labels, name and values.
func (s *Series) Equal(other *Series) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name &&
		equalLabels(s.index, other.index) &&
		mat.Equal(s.values, other.values)
}

func (s *Series) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	if s.name != "" {
		table.Header("", s.name)
	}
	for i, label := range s.index {
		_ = table.Append([]string{label, strconv.FormatFloat(s.values.AtVec(i), 'g', -1, 64)})
	}
	_ = table.Render()
	if s.name != "" {
		fmt.Fprintf(&buf, "Name: %s\n", s.name)
	}
	return buf.String()
}
