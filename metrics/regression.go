// Package metrics は推定器の Score が使う回帰指標を提供する。
//
// すべての関数は mat.Vector を受け取るため、*mat.VecDense も
// frame.Series の生値もそのまま渡せる。n×1 の行列は Column で変換する。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Column は n×1 行列または mat.Vector をベクトルとして取り出す。
func Column(op string, y mat.Matrix) (mat.Vector, error) {
	if v, ok := y.(mat.Vector); ok {
		return v, nil
	}
	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewValueError(op, "target must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, y)), nil
}

// pair は長さを検証し、両ベクトルの値をスライスで返す
func pair(op string, yTrue, yPred mat.Vector) ([]float64, []float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	t := make([]float64, n)
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		t[i] = yTrue.AtVec(i)
		p[i] = yPred.AtVec(i)
	}
	return t, p, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := range t {
		diff := t[i] - p[i]
		sum += diff * diff
	}
	return sum / float64(len(t)), nil
}

// MSEMatrix は行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}

	t, err := Column("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := Column("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE は平方根平均二乗誤差を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := range t {
		sum += math.Abs(t[i] - p[i])
	}
	return sum / float64(len(t)), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrue の分散が 0 の場合はエラーを返す。
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	mean := stat.Mean(t, nil)
	var tss, rss float64
	for i := range t {
		tss += (t[i] - mean) * (t[i] - mean)
		rss += (t[i] - p[i]) * (t[i] - p[i])
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// ExplainedVarianceScore は説明分散スコア 1 - Var(yTrue - yPred) / Var(yTrue) を計算する
func ExplainedVarianceScore(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	diff := make([]float64, len(t))
	for i := range t {
		diff[i] = t[i] - p[i]
	}
	_, varTrue := stat.PopMeanVariance(t, nil)
	_, varDiff := stat.PopMeanVariance(diff, nil)

	if varTrue == 0 {
		return 0, errors.NewValueError("ExplainedVarianceScore", "no variance in yTrue")
	}
	return 1 - varDiff/varTrue, nil
}
