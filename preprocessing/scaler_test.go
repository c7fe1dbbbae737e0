package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

var (
	_ model.UnsupervisedFitter = (*StandardScaler)(nil)
	_ model.Transformer        = (*StandardScaler)(nil)
	_ model.FitTransformer     = (*StandardScaler)(nil)
	_ model.InverseTransformer = (*StandardScaler)(nil)
	_ model.Estimator          = (*StandardScaler)(nil)
	_ model.Transformer        = (*MinMaxScaler)(nil)
	_ model.Estimator          = (*MinMaxScaler)(nil)
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})
	s := NewStandardScalerDefault()

	out, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 10}, s.Mean, 1e-12)
	// constant column keeps scale 1
	assert.Equal(t, 1.0, s.Scale[1])

	col := mat.Col(nil, 0, out)
	assert.InDelta(t, 0.0, col[0]+col[1]+col[2]+col[3], 1e-12)
	assert.InDelta(t, -1.3416407864998738, col[0], 1e-12)
	assert.Equal(t, 0.0, out.At(2, 1))
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, -1, 2, 0, 6, 4})
	s := NewStandardScalerDefault()

	scaled, err := s.FitTransform(X)
	require.NoError(t, err)
	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScaler_WithoutMean(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})
	s := NewStandardScaler(false, false)

	out, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(X, out))
}

func TestStandardScaler_Errors(t *testing.T) {
	s := NewStandardScalerDefault()

	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestScalers_RejectNonFinite(t *testing.T) {
	tests := []struct {
		name string
		X    *mat.Dense
	}{
		{"NaN", mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})},
		{"+Inf", mat.NewDense(2, 2, []float64{1, 2, math.Inf(1), 4})},
		{"-Inf", mat.NewDense(2, 2, []float64{math.Inf(-1), 2, 3, 4})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valErr *errors.ValueError

			s := NewStandardScalerDefault()
			assert.True(t, errors.As(s.Fit(tt.X), &valErr))
			assert.False(t, s.IsFitted())

			m := NewMinMaxScalerDefault()
			assert.True(t, errors.As(m.Fit(tt.X), &valErr))
			assert.False(t, m.IsFitted())
		})
	}
}

func TestStandardScaler_PopulationStd(t *testing.T) {
	s := NewStandardScalerDefault()
	require.NoError(t, s.Fit(mat.NewDense(4, 1, []float64{2, 4, 4, 6})))
	assert.InDelta(t, math.Sqrt(2), s.Scale[0], 1e-12)

	single := NewStandardScalerDefault()
	require.NoError(t, single.Fit(mat.NewDense(1, 2, []float64{3, 5})))
	assert.Equal(t, []float64{1, 1}, single.Scale)
}

func TestStandardScaler_Params(t *testing.T) {
	s := NewStandardScalerDefault()
	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{1, 2})))

	require.NoError(t, s.SetParams(map[string]interface{}{"with_mean": false}))
	assert.Equal(t, map[string]interface{}{"with_mean": false, "with_std": true}, s.GetParams(true))
	assert.False(t, s.IsFitted())

	err := s.SetParams(map[string]interface{}{"copy": true})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	err = s.SetParams(map[string]interface{}{"with_std": "yes"})
	assert.True(t, errors.As(err, &valErr))
}

func TestMinMaxScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 5,
		5, 5,
		10, 5,
	})
	m := NewMinMaxScaler([2]float64{-1, 1})

	out, err := m.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, 0, 1}, mat.Col(nil, 0, out))
	assert.Equal(t, []float64{-1, -1, -1}, mat.Col(nil, 1, out))

	back, err := m.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestMinMaxScaler_InvalidRange(t *testing.T) {
	m := NewMinMaxScaler([2]float64{1, 0})
	err := m.Fit(mat.NewDense(1, 1, []float64{1}))
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestMinMaxScaler_ParamsFromJSONShapes(t *testing.T) {
	m := NewMinMaxScalerDefault()

	require.NoError(t, m.SetParams(map[string]interface{}{
		"feature_range": []interface{}{-2.0, 2.0},
	}))
	assert.Equal(t, [2]float64{-2, 2}, m.FeatureRange)
	assert.Equal(t, []float64{-2, 2}, m.GetParams(false)["feature_range"])

	err := m.SetParams(map[string]interface{}{"feature_range": []float64{1}})
	assert.Error(t, err)
}

func TestScaler_String(t *testing.T) {
	s := NewStandardScalerDefault()
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true)", s.String())
	require.NoError(t, s.Fit(mat.NewDense(2, 3, nil)))
	assert.Contains(t, s.String(), "n_features=3")

	m := NewMinMaxScalerDefault()
	assert.Equal(t, "MinMaxScaler(feature_range=[0.0, 1.0])", m.String())
}
