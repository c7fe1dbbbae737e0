package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestNew_DefaultLabels(t *testing.T) {
	f, err := New(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1"}, f.Index())
	assert.Equal(t, []string{"0", "1", "2"}, f.Columns())
	assert.Equal(t, 2, f.Len())
}

func TestNew_LabelLengthMismatch(t *testing.T) {
	values := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	tests := []struct {
		name    string
		index   []string
		columns []string
		axis    int
	}{
		{"index", []string{"a"}, nil, 0},
		{"columns", nil, []string{"x", "y", "z"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(values, tt.index, tt.columns)
			var dimErr *errors.DimensionError
			require.True(t, errors.As(err, &dimErr))
			assert.Equal(t, tt.axis, dimErr.Axis)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = FromRows(nil, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestFrame_LabelsAreCopies(t *testing.T) {
	index := []string{"r1", "r2"}
	f, err := FromRows([][]float64{{1}, {2}}, index, []string{"a"})
	require.NoError(t, err)

	index[0] = "mutated"
	got := f.Index()
	got[1] = "mutated"

	assert.Equal(t, []string{"r1", "r2"}, f.Index())
}

func TestFrame_ValuesShareStorage(t *testing.T) {
	values := mat.NewDense(1, 2, []float64{1, 2})
	f := MustNew(values, nil, []string{"a", "b"})

	assert.Same(t, values, f.Values())
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}}, nil, nil)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func TestFrame_SelectAndCol(t *testing.T) {
	f, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}}, []string{"x", "y"}, []string{"a", "b", "c"})
	require.NoError(t, err)

	sel, err := f.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sel.Columns())
	assert.Equal(t, []string{"x", "y"}, sel.Index())
	assert.Equal(t, 6.0, sel.At(1, 0))
	assert.Equal(t, 4.0, sel.At(1, 1))

	col, err := f.Col("b")
	require.NoError(t, err)
	assert.Equal(t, "b", col.Name())
	assert.Equal(t, []float64{2, 5}, col.Values().RawVector().Data)

	_, err = f.Select("missing")
	var attrErr *errors.AttributeError
	assert.True(t, errors.As(err, &attrErr))
}

func TestFrame_WithColumnsSharesValues(t *testing.T) {
	f := MustNew(mat.NewDense(1, 2, []float64{1, 2}), []string{"r"}, []string{"a", "b"})

	renamed, err := f.WithColumns([]string{"p", "q"})
	require.NoError(t, err)
	assert.Same(t, f.Values(), renamed.Values())
	assert.Equal(t, []string{"p", "q"}, renamed.Columns())
	assert.Equal(t, []string{"a", "b"}, f.Columns())

	_, err = f.WithColumns([]string{"only"})
	assert.Error(t, err)
}

func TestFrame_Equal(t *testing.T) {
	a := MustNew(mat.NewDense(1, 2, []float64{1, 2}), nil, []string{"a", "b"})
	b := MustNew(mat.NewDense(1, 2, []float64{1, 2}), nil, []string{"a", "b"})
	c := MustNew(mat.NewDense(1, 2, []float64{1, 2}), nil, []string{"a", "c"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestFrame_String(t *testing.T) {
	f := MustNew(mat.NewDense(1, 2, []float64{1.5, 2}), []string{"r0"}, []string{"a", "b"})
	s := f.String()

	assert.Contains(t, s, "r0")
	assert.Contains(t, s, "1.5")
	// header cells may be upper-cased by the renderer
	assert.Contains(t, strings.ToLower(s), "b")
}

func TestSeries(t *testing.T) {
	s, err := SeriesFromSlice([]float64{1, 2, 3}, []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2.0, s.At(1))
	assert.Equal(t, "", s.Name())

	named := s.Named("target")
	assert.Equal(t, "target", named.Name())
	assert.Same(t, s.Values(), named.Values())
	assert.False(t, s.Equal(named))
	assert.Contains(t, named.String(), "Name: target")

	_, err = NewSeries(mat.NewVecDense(2, nil), []string{"only"})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = SeriesFromSlice(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestLabeledImplementations(t *testing.T) {
	var _ Labeled = (*Frame)(nil)
	var _ Labeled = (*Series)(nil)
}
