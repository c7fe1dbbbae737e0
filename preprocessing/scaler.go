// Package preprocessing provides column-wise scalers.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/core/parallel"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// StandardScaler はscikit-learn互換の標準化スケーラー
// データを平均0、標準偏差1に変換する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "StandardScaler.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix("StandardScaler.Fit", X); err != nil {
		return err
	}

	s.Mean = make([]float64, c)
	if s.WithMean {
		s.Mean = parallel.MapColumns(X, func(_ int, col []float64) float64 {
			return stat.Mean(col, nil)
		})
	}

	s.Scale = parallel.MapColumns(X, func(j int, col []float64) float64 {
		if !s.WithStd {
			return 1.0
		}
		std := stat.PopStdDev(col, nil)
		// 標準偏差が0に近い場合は1に設定（ゼロ除算を避ける）
		if std < 1e-8 {
			return 1.0
		}
		return std
	})

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := s.state.RequireFeatures("StandardScaler.Transform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := s.state.RequireFeatures("StandardScaler.InverseTransform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return result, nil
}

// IsFitted はモデルが学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool { return s.state.IsFitted() }

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// SetParams はスケーラーのパラメータを設定する。学習状態はリセットされる
func (s *StandardScaler) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		var err error
		switch key {
		case "with_mean":
			s.WithMean, err = model.ParamBool(key, value)
		case "with_std":
			s.WithStd, err = model.ParamBool(key, value)
		default:
			err = errors.NewValidationError(key, "unknown parameter for StandardScaler", value)
		}
		if err != nil {
			return err
		}
	}
	s.state.Reset()
	return nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, nFeatures)
}

// MinMaxScaler はscikit-learn互換のMin-Maxスケーラー
// データを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	state *model.StateManager

	// Scale は各特徴量のスケール (max - min)
	Scale []float64

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	XScaled, err := scaler.FitTransform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "MinMaxScaler.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if m.FeatureRange[0] >= m.FeatureRange[1] {
		return errors.NewValidationError("feature_range", "minimum must be smaller than maximum", m.FeatureRange)
	}
	if err := errors.CheckMatrix("MinMaxScaler.Fit", X); err != nil {
		return err
	}

	m.DataMin = parallel.MapColumns(X, func(_ int, col []float64) float64 { return floatsMin(col) })
	m.DataMax = parallel.MapColumns(X, func(_ int, col []float64) float64 { return floatsMax(col) })
	m.Scale = make([]float64, c)
	for j := range m.Scale {
		dataRange := m.DataMax[j] - m.DataMin[j]
		if math.Abs(dataRange) < 1e-8 {
			// 定数特徴量の場合、スケールを1に設定
			dataRange = 1.0
		}
		m.Scale[j] = dataRange
	}

	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := m.state.RequireFeatures("MinMaxScaler.Transform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*featureRange + m.FeatureRange[0]
	}, X)
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := m.state.RequireFeatures("MinMaxScaler.InverseTransform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v-m.FeatureRange[0])/featureRange*m.Scale[j] + m.DataMin[j]
	}, X)
	return result, nil
}

// IsFitted はモデルが学習済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool { return m.state.IsFitted() }

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"feature_range": []float64{m.FeatureRange[0], m.FeatureRange[1]},
	}
}

// SetParams はスケーラーのパラメータを設定する。学習状態はリセットされる
func (m *MinMaxScaler) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "feature_range":
			fr, err := floatPair(key, value)
			if err != nil {
				return err
			}
			m.FeatureRange = fr
		default:
			return errors.NewValidationError(key, "unknown parameter for MinMaxScaler", value)
		}
	}
	m.state.Reset()
	return nil
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.state.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	nFeatures, _ := m.state.GetDimensions()
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], nFeatures)
}

func colsOf(X mat.Matrix) int {
	_, c := X.Dims()
	return c
}

func floatsMin(col []float64) float64 {
	out := col[0]
	for _, v := range col[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

func floatsMax(col []float64) float64 {
	out := col[0]
	for _, v := range col[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

// floatPair accepts [2]float64, []float64 and the []interface{} produced by
// JSON decoding.
func floatPair(name string, v interface{}) ([2]float64, error) {
	var out [2]float64
	switch x := v.(type) {
	case [2]float64:
		return x, nil
	case []float64:
		if len(x) != 2 {
			return out, errors.NewValidationError(name, "must have two values", v)
		}
		return [2]float64{x[0], x[1]}, nil
	case []interface{}:
		if len(x) != 2 {
			return out, errors.NewValidationError(name, "must have two values", v)
		}
		for i := range x {
			f, err := model.ParamFloat(name, x[i])
			if err != nil {
				return out, err
			}
			out[i] = f
		}
		return out, nil
	default:
		return out, errors.NewValidationError(name, fmt.Sprintf("unsupported type %T", v), v)
	}
}
