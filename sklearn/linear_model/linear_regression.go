// Package linear_model provides ordinary least squares regression.
package linear_model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/metrics"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// LinearRegression is a linear regression model using ordinary least squares.
// Fit follows the (X, y) convention, Predict and Score are driven by X.
type LinearRegression struct {
	state *model.StateManager

	// Hyperparameters
	fitIntercept bool
	copyX        bool
	positive     bool

	// Learned parameters
	coef      []float64
	intercept float64
}

// LinearRegressionOption は設定オプション
type LinearRegressionOption func(*LinearRegression)

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(options ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
		copyX:        true,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// WithLRFitIntercept は切片の学習有無を設定
func WithLRFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithCopyX はデータコピーの有無を設定
func WithCopyX(copy bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.copyX = copy
	}
}

// WithPositive は係数の正制約を設定
func WithPositive(positive bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.positive = positive
	}
}

// Fit はモデルを訓練データで学習する。y は n×1 行列またはベクトル。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, yCols, 1)
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", X); err != nil {
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", y); err != nil {
		return err
	}

	XWork := X
	if lr.copyX {
		XWork = mat.DenseCopyOf(X)
	}

	// [1 | X] で切片列を先頭に置く
	XFit := XWork
	offset := 0
	if lr.fitIntercept {
		offset = 1
		withIntercept := mat.NewDense(rows, cols+1, nil)
		withIntercept.Apply(func(i, j int, _ float64) float64 {
			if j == 0 {
				return 1.0
			}
			return XWork.At(i, j-1)
		}, withIntercept)
		XFit = withIntercept
	}

	// 正規方程式より数値的に安定なQR分解を使用
	var qr mat.QR
	qr.Factorize(XFit)

	coefficients := mat.NewDense(cols+offset, 1, nil)
	if err := qr.SolveTo(coefficients, false, y); err != nil {
		return errors.Wrap(err, "failed to solve linear system")
	}

	lr.intercept = 0
	if lr.fitIntercept {
		lr.intercept = coefficients.At(0, 0)
	}
	lr.coef = make([]float64, cols)
	for i := range lr.coef {
		lr.coef[i] = coefficients.At(i+offset, 0)
	}

	if lr.positive {
		for i := range lr.coef {
			if lr.coef[i] < 0 {
				lr.coef[i] = 0
			}
		}
		if lr.intercept < 0 {
			lr.intercept = 0
		}
	}

	lr.state.SetDimensions(cols, rows)
	lr.state.SetFitted()
	return nil
}

// Predict は入力データに対する予測をベクトルで返す
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Vector, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if err := lr.state.RequireFeatures("LinearRegression.Predict", cols); err != nil {
		return nil, err
	}

	predictions := mat.NewVecDense(rows, nil)
	predictions.MulVec(X, mat.NewVecDense(cols, lr.coef))
	for i := 0; i < rows; i++ {
		predictions.SetVec(i, predictions.AtVec(i)+lr.intercept)
	}
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	yTrue, err := metrics.Column("LinearRegression.Score", y)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, predictions)
}

// Coef は学習された重み係数のコピーを返す
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef))
	copy(coef, lr.coef)
	return coef
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// IsFitted returns whether the model has been fitted
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams returns the model's hyperparameters
func (lr *LinearRegression) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"copy_X":        lr.copyX,
		"positive":      lr.positive,
	}
}

// SetParams sets the model's hyperparameters and resets the fitted state.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		var err error
		switch key {
		case "fit_intercept":
			lr.fitIntercept, err = model.ParamBool(key, value)
		case "copy_X":
			lr.copyX, err = model.ParamBool(key, value)
		case "positive":
			lr.positive, err = model.ParamBool(key, value)
		default:
			err = errors.NewValidationError(key, "unknown parameter for LinearRegression", value)
		}
		if err != nil {
			return err
		}
	}
	lr.state.Reset()
	return nil
}

// String returns the string representation of the model
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t, copy_X=%t, positive=%t)",
			lr.fitIntercept, lr.copyX, lr.positive)
	}
	nFeatures, _ := lr.state.GetDimensions()
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, fitted=true)",
		lr.fitIntercept, nFeatures)
}
