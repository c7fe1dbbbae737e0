// Package feature_selection provides column-selecting estimators. Each one
// reports the retained columns through GetSupport, so an adapter.Registry can
// restore the input column labels on their output (see Register).
package feature_selection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/core/parallel"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// VarianceThreshold は分散が閾値以下の特徴量を除外する
type VarianceThreshold struct {
	state *model.StateManager

	// Threshold より大きい分散を持つ列だけが残る
	Threshold float64

	variances []float64
	support   []int
}

// NewVarianceThreshold は新しいVarianceThresholdを作成する
//
// 使用例:
//
//	vt := feature_selection.NewVarianceThreshold(0.0)
//	XSel, err := vt.FitTransform(X)
func NewVarianceThreshold(threshold float64) *VarianceThreshold {
	return &VarianceThreshold{
		state:     model.NewStateManager(),
		Threshold: threshold,
	}
}

// Fit は各列の母分散を計算し、残す列を決定する
func (v *VarianceThreshold) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "VarianceThreshold.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("VarianceThreshold.Fit", "empty data", errors.ErrEmptyData)
	}
	if v.Threshold < 0 {
		return errors.NewValidationError("threshold", "must be non-negative", v.Threshold)
	}
	if err := errors.CheckMatrix("VarianceThreshold.Fit", X); err != nil {
		return err
	}

	variances := parallel.MapColumns(X, func(_ int, col []float64) float64 {
		return stat.PopVariance(col, nil)
	})

	var support []int
	for j, variance := range variances {
		if variance > v.Threshold {
			support = append(support, j)
		}
	}
	if len(support) == 0 {
		return errors.NewValueError("VarianceThreshold.Fit",
			fmt.Sprintf("no feature in X meets the variance threshold %.5f", v.Threshold))
	}

	v.variances = variances
	v.support = support
	v.state.SetDimensions(c, r)
	v.state.SetFitted()
	return nil
}

// Transform は選択された列だけを返す
func (v *VarianceThreshold) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := v.state.RequireFitted("VarianceThreshold", "Transform"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := v.state.RequireFeatures("VarianceThreshold.Transform", c); err != nil {
		return nil, err
	}
	return selectColumns(X, v.support), nil
}

// FitTransform は学習と変換を続けて行う
func (v *VarianceThreshold) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := v.Fit(X); err != nil {
		return nil, err
	}
	return v.Transform(X)
}

// GetSupport は残す列の位置を昇順で返す
func (v *VarianceThreshold) GetSupport() ([]int, error) {
	if err := v.state.RequireFitted("VarianceThreshold", "GetSupport"); err != nil {
		return nil, err
	}
	return append([]int(nil), v.support...), nil
}

// Variances は学習時に計算した各列の分散を返す
func (v *VarianceThreshold) Variances() []float64 {
	return append([]float64(nil), v.variances...)
}

// IsFitted はモデルが学習済みかどうかを返す
func (v *VarianceThreshold) IsFitted() bool { return v.state.IsFitted() }

// GetParams returns {"threshold"}.
func (v *VarianceThreshold) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{"threshold": v.Threshold}
}

// SetParams updates the threshold and resets the fitted state.
func (v *VarianceThreshold) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		if key != "threshold" {
			return errors.NewValidationError(key, "unknown parameter for VarianceThreshold", value)
		}
		threshold, err := model.ParamFloat(key, value)
		if err != nil {
			return err
		}
		v.Threshold = threshold
	}
	v.state.Reset()
	v.variances, v.support = nil, nil
	return nil
}

func (v *VarianceThreshold) String() string {
	return fmt.Sprintf("VarianceThreshold(threshold=%g)", v.Threshold)
}

// selectColumns copies the columns of X listed in support, in order.
func selectColumns(X mat.Matrix, support []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(support), nil)
	for k, j := range support {
		out.SetCol(k, mat.Col(nil, j, X))
	}
	return out
}
