package adapter

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// CallContext carries the labels of the X argument of one call.
type CallContext struct {
	Index   []string
	Columns []string
}

// CaptureContext copies the labels of X. A nil frame yields an empty context.
func CaptureContext(X *frame.Frame) CallContext {
	if X == nil {
		return CallContext{}
	}
	return CallContext{Index: X.Index(), Columns: X.Columns()}
}

// Rehydrate labels a raw result with ctx.
//
// Vectors and []float64 become a *frame.Series over ctx.Index, matrices become
// a *frame.Frame over ctx.Index and ctx.Columns. A result whose length or
// dimensions disagree with ctx yields a *errors.ShapeMismatchError. Any other
// value, including already labeled results, is returned unchanged.
func Rehydrate(op string, ctx CallContext, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *frame.Frame, *frame.Series:
		return v, nil
	case mat.Vector:
		return rehydrateVector(op, ctx, v)
	case []float64:
		return rehydrateVector(op, ctx, mat.NewVecDense(len(v), v))
	case mat.Matrix:
		return rehydrateMatrix(op, ctx, v)
	default:
		return raw, nil
	}
}

func rehydrateVector(op string, ctx CallContext, v mat.Vector) (any, error) {
	if isNil(v) {
		return nil, nil
	}
	if v.Len() != len(ctx.Index) {
		return nil, errors.NewShapeMismatchError(op, []int{len(ctx.Index)}, []int{v.Len()})
	}
	vd, ok := v.(*mat.VecDense)
	if !ok {
		vd = mat.VecDenseCopyOf(v)
	}
	return frame.NewSeries(vd, ctx.Index)
}

func rehydrateMatrix(op string, ctx CallContext, m mat.Matrix) (any, error) {
	if isNil(m) {
		return nil, nil
	}
	r, c := m.Dims()
	if r != len(ctx.Index) || c != len(ctx.Columns) {
		return nil, errors.NewShapeMismatchError(op, []int{len(ctx.Index), len(ctx.Columns)}, []int{r, c})
	}
	d, ok := m.(*mat.Dense)
	if !ok {
		d = mat.DenseCopyOf(m)
	}
	return frame.New(d, ctx.Index, ctx.Columns)
}
