package adapter

import (
	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// Fit fits the estimator on X, and on y when the estimator is supervised.
// y is ignored by XConvention fits. The returned proxy is p.
func (p *Proxy) Fit(X *frame.Frame, y *frame.Series, args ...any) (*Proxy, error) {
	if len(args) == 0 && X != nil {
		if f, ok := p.est.(model.SupervisedFitter); ok && y != nil {
			return p.fluent("Fit")(p.run("Fit", X, func() (any, error) {
				return p.est, f.Fit(ToRaw(X), ToRawVector(y))
			}))
		}
		if f, ok := p.est.(model.UnsupervisedFitter); ok {
			return p.fluent("Fit")(p.run("Fit", X, func() (any, error) {
				return p.est, f.Fit(ToRaw(X))
			}))
		}
	}
	return p.fluent("Fit")(p.Call("Fit", p.withTarget("Fit", X, y, args)...))
}

// Transform transforms X.
func (p *Proxy) Transform(X *frame.Frame) (*frame.Frame, error) {
	if t, ok := p.est.(model.Transformer); ok && X != nil {
		return asFrame("Transform")(p.run("Transform", X, func() (any, error) {
			return t.Transform(ToRaw(X))
		}))
	}
	return asFrame("Transform")(p.Call("Transform", X))
}

// FitTransform fits on X (and y when supervised) and transforms X. Estimators
// without a FitTransform method are fitted then transformed.
func (p *Proxy) FitTransform(X *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	if X != nil {
		if ft, ok := p.est.(model.SupervisedFitTransformer); ok && y != nil {
			return asFrame("FitTransform")(p.run("FitTransform", X, func() (any, error) {
				return ft.FitTransform(ToRaw(X), ToRawVector(y))
			}))
		}
		if ft, ok := p.est.(model.FitTransformer); ok {
			return asFrame("FitTransform")(p.run("FitTransform", X, func() (any, error) {
				return ft.FitTransform(ToRaw(X))
			}))
		}
	}
	if !p.table.Has("FitTransform") {
		if _, err := p.Fit(X, y); err != nil {
			return nil, err
		}
		return p.Transform(X)
	}
	return asFrame("FitTransform")(p.Call("FitTransform", p.withTarget("FitTransform", X, y, nil)...))
}

// InverseTransform maps X back to the original feature space.
func (p *Proxy) InverseTransform(X *frame.Frame) (*frame.Frame, error) {
	if t, ok := p.est.(model.InverseTransformer); ok && X != nil {
		return asFrame("InverseTransform")(p.run("InverseTransform", X, func() (any, error) {
			return t.InverseTransform(ToRaw(X))
		}))
	}
	return asFrame("InverseTransform")(p.Call("InverseTransform", X))
}

// Predict predicts one value per row of X. The result is a *frame.Series for
// vector predictions and a *frame.Frame for matrix predictions.
func (p *Proxy) Predict(X *frame.Frame) (frame.Labeled, error) {
	var (
		res any
		err error
	)
	if pr, ok := p.est.(model.Predictor); ok && X != nil {
		res, err = p.run("Predict", X, func() (any, error) {
			return pr.Predict(ToRaw(X))
		})
	} else {
		res, err = p.Call("Predict", X)
	}
	if err != nil {
		return nil, err
	}
	labeled, ok := res.(frame.Labeled)
	if !ok {
		return nil, errors.NewResultTypeError("Predict", "frame.Labeled", typeName(res))
	}
	return labeled, nil
}

// Score returns the estimator's score of X against y.
func (p *Proxy) Score(X *frame.Frame, y *frame.Series) (float64, error) {
	var (
		res any
		err error
	)
	if s, ok := p.est.(model.Scorer); ok && X != nil && y != nil {
		res, err = p.run("Score", X, func() (any, error) {
			return s.Score(ToRaw(X), ToRawVector(y))
		})
	} else {
		res, err = p.Call("Score", X, y)
	}
	if err != nil {
		return 0, err
	}
	score, ok := res.(float64)
	if !ok {
		return 0, errors.NewResultTypeError("Score", "float64", typeName(res))
	}
	return score, nil
}

// GetSupport returns the current support mask of a column-selecting estimator.
func (p *Proxy) GetSupport() ([]int, error) {
	if q, ok := p.est.(model.SupportQuerier); ok {
		return q.GetSupport()
	}
	res, err := p.Call("GetSupport")
	if err != nil {
		return nil, err
	}
	mask, ok := res.([]int)
	if !ok {
		return nil, errors.NewResultTypeError("GetSupport", "[]int", typeName(res))
	}
	return mask, nil
}

// GetParams delegates to the estimator. It returns nil when the estimator has
// no parameters.
func (p *Proxy) GetParams(deep bool) map[string]interface{} {
	if g, ok := p.est.(model.ParamGetter); ok {
		return g.GetParams(deep)
	}
	return nil
}

// SetParams delegates to the estimator.
func (p *Proxy) SetParams(params map[string]interface{}) error {
	s, ok := p.est.(model.ParamSetter)
	if !ok {
		return errors.NewAttributeError(p.table.Owner(), "SetParams")
	}
	return s.SetParams(params)
}

func (p *Proxy) withTarget(op string, X *frame.Frame, y *frame.Series, rest []any) []any {
	args := []any{X}
	if p.table.Convention(op) == XYConvention {
		args = append(args, y)
	}
	return append(args, rest...)
}

func (p *Proxy) fluent(op string) func(any, error) (*Proxy, error) {
	return func(res any, err error) (*Proxy, error) {
		if err != nil {
			return nil, err
		}
		q, ok := res.(*Proxy)
		if !ok {
			return nil, errors.NewResultTypeError(op, "*adapter.Proxy", typeName(res))
		}
		return q, nil
	}
}

func asFrame(op string) func(any, error) (*frame.Frame, error) {
	return func(res any, err error) (*frame.Frame, error) {
		if err != nil {
			return nil, err
		}
		f, ok := res.(*frame.Frame)
		if !ok {
			return nil, errors.NewResultTypeError(op, "*frame.Frame", typeName(res))
		}
		return f, nil
	}
}
