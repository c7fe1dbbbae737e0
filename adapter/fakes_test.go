package adapter

import (
	stderrors "errors"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/core/model"
)

// doubler is an X-convention transformer that doubles every value.
type doubler struct {
	Factor float64
	fits   int
}

func newDoubler() *doubler { return &doubler{Factor: 2} }

func (d *doubler) Fit(X mat.Matrix) error {
	d.fits++
	return nil
}

func (d *doubler) Transform(X mat.Matrix) (mat.Matrix, error) {
	var out mat.Dense
	out.Scale(d.Factor, X)
	return &out, nil
}

func (d *doubler) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{"factor": d.Factor}
}

func (d *doubler) SetParams(params map[string]interface{}) error {
	if v, ok := params["factor"]; ok {
		f, err := model.ParamFloat("factor", v)
		if err != nil {
			return err
		}
		d.Factor = f
	}
	return nil
}

// picker is an XY-convention column selector with a fixed mask.
type picker struct {
	Mask []int
	K    int
	yLen int
}

func newPicker() *picker { return &picker{Mask: []int{0, 2}, K: 2} }

func (p *picker) Fit(X, y mat.Matrix) error {
	if y != nil {
		p.yLen, _ = y.Dims()
	}
	return nil
}

func (p *picker) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(p.Mask), nil)
	for k, j := range p.Mask {
		out.SetCol(k, mat.Col(nil, j, X))
	}
	return out, nil
}

func (p *picker) FitTransform(X, y mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X, y); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

func (p *picker) GetSupport() ([]int, error) {
	return append([]int(nil), p.Mask...), nil
}

func (p *picker) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{"k": p.K}
}

func (p *picker) SetParams(params map[string]interface{}) error {
	if v, ok := params["k"]; ok {
		k, err := model.ParamInt("k", v)
		if err != nil {
			return err
		}
		p.K = k
	}
	return nil
}

// scaled wraps a doubler and exposes the child's factor as a nested
// parameter when asked for deep parameters.
type scaled struct {
	Shift float64
	Child *doubler
}

func newScaled() *scaled { return &scaled{Child: newDoubler()} }

func (s *scaled) Fit(X mat.Matrix) error { return s.Child.Fit(X) }

func (s *scaled) Transform(X mat.Matrix) (mat.Matrix, error) {
	out, err := s.Child.Transform(X)
	if err != nil {
		return nil, err
	}
	var shifted mat.Dense
	shifted.Apply(func(_, _ int, v float64) float64 { return v + s.Shift }, out)
	return &shifted, nil
}

func (s *scaled) GetParams(deep bool) map[string]interface{} {
	params := map[string]interface{}{"shift": s.Shift}
	if deep {
		for k, v := range s.Child.GetParams(true) {
			params["child__"+k] = v
		}
	}
	return params
}

func (s *scaled) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "shift":
			f, err := model.ParamFloat(k, v)
			if err != nil {
				return err
			}
			s.Shift = f
		case "child__factor":
			if err := s.Child.SetParams(map[string]interface{}{"factor": v}); err != nil {
				return err
			}
		}
	}
	return nil
}

// rowSum predicts the sum of each row.
type rowSum struct{}

func (rowSum) Fit(X, y mat.Matrix) error { return nil }

func (rowSum) Predict(X mat.Matrix) (mat.Vector, error) {
	r, c := X.Dims()
	out := mat.NewVecDense(r, nil)
	out.MulVec(X, onesVec(c))
	return out, nil
}

func onesVec(n int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, 1)
	}
	return v
}

var errBoom = stderrors.New("boom")

// oddball exercises every classification rule.
type oddball struct {
	Label string
	child *doubler
}

func (o *oddball) Apply(v interface{}) error { return nil }

func (o *oddball) Sum(xs ...float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

func (o *oddball) Weighted(X mat.Matrix, w ...float64) (mat.Matrix, error) { return X, nil }

func (o *oddball) Child() *doubler { return o.child }

func (o *oddball) Name() string { return o.Label }

func (o *oddball) Self() *oddball { return o }

func (o *oddball) Reset() error { return nil }

func (o *oddball) Fail(X mat.Matrix) error { return errBoom }

func (o *oddball) Native(X *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	return X, nil
}

// Column returns y, received as an n×1 matrix.
func (o *oddball) Column(X *mat.Dense, y *mat.Dense) (mat.Vector, error) {
	r, _ := y.Dims()
	return mat.NewVecDense(r, mat.Col(nil, 0, y)), nil
}

func (o *oddball) Narrow(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	return mat.NewDense(r, 1, nil), nil
}

func (o *oddball) Short(X mat.Matrix) ([]float64, error) { return []float64{1}, nil }

func (o *oddball) Pair(X mat.Matrix) (mat.Vector, float64, error) {
	r, _ := X.Dims()
	return mat.NewVecDense(r, nil), 1.5, nil
}

type depth struct{ Depth int }

// embedded promotes Depth through a pointer that may be nil.
type embedded struct {
	*depth
	doubler
}
