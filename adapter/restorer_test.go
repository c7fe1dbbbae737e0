package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestColumnRestorer_Idempotent(t *testing.T) {
	var r ColumnRestorer
	est := newPicker()
	inputs := []string{"c0", "c1", "c2"}
	f := frame.MustNew(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), nil, nil)

	once, err := r.Restore(f, inputs, est)
	require.NoError(t, err)
	twice, err := r.Restore(once, inputs, est)
	require.NoError(t, err)

	assert.Equal(t, []string{"c0", "c2"}, once.Columns())
	assert.True(t, once.Equal(twice))
}

func TestColumnRestorer_Errors(t *testing.T) {
	var r ColumnRestorer

	_, err := r.Restore(frame.MustNew(mat.NewDense(2, 3, nil), nil, nil), []string{"c0", "c1", "c2"}, newPicker())
	var shapeErr *errors.ShapeMismatchError
	assert.True(t, errors.As(err, &shapeErr), "width differs from the mask")

	_, err = r.Columns("Transform", []string{"c0", "c1"}, &picker{Mask: []int{0, 5}})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "mask index out of range")

	_, err = r.Columns("Transform", []string{"c0"}, newDoubler())
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))

	assert.True(t, r.Applies("FitTransform"))
	assert.False(t, r.Applies("Predict"))
}

func TestRehydrate(t *testing.T) {
	ctx := CallContext{Index: []string{"a", "b"}, Columns: []string{"x", "y"}}

	res, err := Rehydrate("Predict", ctx, mat.NewVecDense(2, []float64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.(*frame.Series).Index())

	res, err = Rehydrate("Predict", ctx, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.(*frame.Series).At(1))

	res, err = Rehydrate("Transform", ctx, mat.NewDense(2, 2, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, res.(*frame.Frame).Columns())

	res, err = Rehydrate("Score", ctx, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res)

	res, err = Rehydrate("Transform", ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, res)

	_, err = Rehydrate("Transform", ctx, mat.NewDense(3, 2, nil))
	var shapeErr *errors.ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, []int{2, 2}, shapeErr.Expected)
	assert.Equal(t, []int{3, 2}, shapeErr.Got)
}

func TestToRaw_ZeroCopy(t *testing.T) {
	f := sampleFrame()
	assert.Same(t, f.Values(), ToRaw(f))
	assert.Nil(t, ToRaw(nil))
	assert.Nil(t, ToRawVector(nil))

	s := frame.MustSeries([]float64{1, 2, 3}, nil)
	d := seriesAsDense(s)
	d.Set(0, 0, 42)
	assert.Equal(t, 42.0, s.At(0), "n×1 view shares storage")
}

func TestCaptureContext_Copies(t *testing.T) {
	f := sampleFrame()
	ctx := CaptureContext(f)
	ctx.Columns[0] = "changed"
	assert.Equal(t, []string{"c0", "c1"}, f.Columns())
	assert.Empty(t, CaptureContext(nil).Index)
}
