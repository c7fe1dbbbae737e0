package feature_selection

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/core/parallel"
	"github.com/YuminosukeSato/framelearn/metrics"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// SelectKBest は単変量 F 検定 (f_regression) のスコア上位 k 列を残す
type SelectKBest struct {
	state *model.StateManager

	// K は残す列数
	K int

	scores  []float64
	pvalues []float64
	support []int
}

// NewSelectKBest は新しいSelectKBestを作成する
//
// 使用例:
//
//	skb := feature_selection.NewSelectKBest(2)
//	XSel, err := skb.FitTransform(X, y)
func NewSelectKBest(k int) *SelectKBest {
	return &SelectKBest{
		state: model.NewStateManager(),
		K:     k,
	}
}

// Fit は各列と y の相関から F 値を計算し、上位 K 列を選ぶ。
// y は n×1 行列またはベクトル。
func (s *SelectKBest) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "SelectKBest.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SelectKBest.Fit", "empty data", errors.ErrEmptyData)
	}
	if s.K < 1 || s.K > c {
		return errors.NewValidationError("k", fmt.Sprintf("must be in [1, %d]", c), s.K)
	}
	if err := errors.CheckMatrix("SelectKBest.Fit", X); err != nil {
		return err
	}
	target, err := metrics.Column("SelectKBest.Fit", y)
	if err != nil {
		return err
	}
	if err := errors.CheckMatrix("SelectKBest.Fit", target); err != nil {
		return err
	}
	if target.Len() != r {
		return errors.NewDimensionError("SelectKBest.Fit", r, target.Len(), 0)
	}
	if r < 3 {
		return errors.NewValueError("SelectKBest.Fit", "f_regression needs at least 3 samples")
	}

	yv := mat.Col(nil, 0, target)
	dof := float64(r - 2)
	scores := parallel.MapColumns(X, func(_ int, col []float64) float64 {
		return fScore(col, yv, dof)
	})

	fdist := distuv.F{D1: 1, D2: dof}
	pvalues := make([]float64, c)
	for j, f := range scores {
		// 完全相関の列は Survival(+Inf) が NaN になるので 0 に固定
		if math.IsInf(f, 1) {
			continue
		}
		pvalues[j] = fdist.Survival(f)
	}

	s.scores = scores
	s.pvalues = pvalues
	s.support = topK(scores, s.K)
	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// fScore は F = r²/(1-r²)·(n-2)。定数列は 0。
func fScore(x, y []float64, dof float64) float64 {
	corr := stat.Correlation(x, y, nil)
	if math.IsNaN(corr) {
		return 0
	}
	r2 := corr * corr
	if r2 >= 1 {
		return math.Inf(1)
	}
	return r2 / (1 - r2) * dof
}

// topK returns the indices of the k highest scores in ascending column order.
// Ties keep the lower column.
func topK(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	support := append([]int(nil), order[:k]...)
	sort.Ints(support)
	return support
}

// Transform は選択された列だけを返す
func (s *SelectKBest) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("SelectKBest", "Transform"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if err := s.state.RequireFeatures("SelectKBest.Transform", c); err != nil {
		return nil, err
	}
	return selectColumns(X, s.support), nil
}

// FitTransform は学習と変換を続けて行う
func (s *SelectKBest) FitTransform(X, y mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X, y); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetSupport は残す列の位置を昇順で返す
func (s *SelectKBest) GetSupport() ([]int, error) {
	if err := s.state.RequireFitted("SelectKBest", "GetSupport"); err != nil {
		return nil, err
	}
	return append([]int(nil), s.support...), nil
}

// Scores は各列の F 値を返す
func (s *SelectKBest) Scores() []float64 {
	return append([]float64(nil), s.scores...)
}

// PValues は各列の F 検定の p 値を返す
func (s *SelectKBest) PValues() []float64 {
	return append([]float64(nil), s.pvalues...)
}

// IsFitted はモデルが学習済みかどうかを返す
func (s *SelectKBest) IsFitted() bool { return s.state.IsFitted() }

// GetParams returns {"k"}.
func (s *SelectKBest) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{"k": s.K}
}

// SetParams updates k and resets the fitted state. JSON-decoded numbers are
// accepted when they are integral.
func (s *SelectKBest) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		if key != "k" {
			return errors.NewValidationError(key, "unknown parameter for SelectKBest", value)
		}
		k, err := model.ParamInt(key, value)
		if err != nil {
			return err
		}
		s.K = k
	}
	s.state.Reset()
	s.scores, s.pvalues, s.support = nil, nil, nil
	return nil
}

func (s *SelectKBest) String() string {
	return fmt.Sprintf("SelectKBest(k=%d)", s.K)
}
