package linear_model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/adapter"
	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

var (
	_ model.SupervisedFitter = (*LinearRegression)(nil)
	_ model.Regressor        = (*LinearRegression)(nil)
	_ model.Estimator        = (*LinearRegression)(nil)
)

// y = 1 + 2*x0 - 3*x1
func linearData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		2, 1,
		3, 2,
	})
	y := mat.NewVecDense(5, []float64{1, 3, -2, 2, 1})
	return X, y
}

func TestLinearRegression_FitPredict(t *testing.T) {
	X, y := linearData()
	lr := NewLinearRegression()

	require.NoError(t, lr.Fit(X, y))
	assert.True(t, lr.IsFitted())
	assert.InDelta(t, 1.0, lr.Intercept(), 1e-9)
	assert.InDeltaSlice(t, []float64{2, -3}, lr.Coef(), 1e-9)

	pred, err := lr.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 5, pred.Len())
	for i := 0; i < 5; i++ {
		assert.InDelta(t, y.AtVec(i), pred.AtVec(i), 1e-9)
	}

	score, err := lr.Score(X, mat.NewDense(5, 1, y.RawVector().Data))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestLinearRegression_NoIntercept(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{2, 4, 6})

	lr := NewLinearRegression(WithLRFitIntercept(false))
	require.NoError(t, lr.Fit(X, y))
	assert.Zero(t, lr.Intercept())
	assert.InDeltaSlice(t, []float64{2}, lr.Coef(), 1e-9)
}

func TestLinearRegression_Errors(t *testing.T) {
	lr := NewLinearRegression()

	_, err := lr.Predict(mat.NewDense(1, 2, nil))
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	err = lr.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewVecDense(2, []float64{1, 2}))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 0, dimErr.Axis)

	err = lr.Fit(mat.NewDense(3, 1, []float64{1, math.NaN(), 3}), mat.NewVecDense(3, []float64{1, 2, 3}))
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "non-finite input")

	X, y := linearData()
	require.NoError(t, lr.Fit(X, y))
	_, err = lr.Predict(mat.NewDense(1, 3, nil))
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)
}

func TestLinearRegression_Params(t *testing.T) {
	lr := NewLinearRegression()
	X, y := linearData()
	require.NoError(t, lr.Fit(X, y))

	require.NoError(t, lr.SetParams(map[string]interface{}{"fit_intercept": false, "positive": true}))
	assert.False(t, lr.IsFitted(), "SetParams resets the fitted state")
	assert.Equal(t, map[string]interface{}{
		"fit_intercept": false,
		"copy_X":        true,
		"positive":      true,
	}, lr.GetParams(false))

	err := lr.SetParams(map[string]interface{}{"n_jobs": 2})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestRegister(t *testing.T) {
	reg := adapter.NewRegistry()
	restored, err := Register(reg)
	require.NoError(t, err)
	assert.Empty(t, restored)
	assert.Equal(t, []string{"LinearRegression"}, reg.Kinds())

	kind, ok := reg.KindOf(NewLinearRegression())
	assert.True(t, ok)
	assert.Equal(t, "LinearRegression", kind)
}
