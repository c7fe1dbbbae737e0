// Package model provides the capability interfaces implemented by estimators,
// fitted-state bookkeeping and parameter persistence helpers.
//
// Capabilities are declared by implementing the small interfaces below. The
// adapter resolves them with type assertions, so an estimator never has to
// register methods by name.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// SupervisedFitter は教師あり学習のインターフェース
type SupervisedFitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// UnsupervisedFitter は教師なしで学習する変換器のインターフェース
type UnsupervisedFitter interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// FitTransformer はFitとTransformを同時に実行する
type FitTransformer interface {
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// SupervisedFitTransformer は目的変数を使って学習・変換する (SelectKBestなど)
type SupervisedFitTransformer interface {
	FitTransform(X, y mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer は変換を逆方向に適用する
type InverseTransformer interface {
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う。結果はサンプルごとに1つの値を持つ
	Predict(X mat.Matrix) (mat.Vector, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// SupportQuerier is implemented by column-selecting estimators.
type SupportQuerier interface {
	// GetSupport returns the positions of the retained input columns, in
	// output order.
	GetSupport() ([]int, error)
}

// ParamGetter is the interface for models that expose their hyperparameters.
type ParamGetter interface {
	GetParams(deep bool) map[string]interface{}
}

// ParamSetter is the interface for models that allow parameter modification.
type ParamSetter interface {
	SetParams(params map[string]interface{}) error
}

// Estimator is the minimum surface needed for persistence round trips.
type Estimator interface {
	ParamGetter
	ParamSetter
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	SupervisedFitter
	Predictor
	Scorer
}

// Selector combines interfaces for column-selecting transformers.
type Selector interface {
	Transformer
	SupportQuerier
}
