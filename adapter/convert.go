package adapter

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// ToRaw returns the values of f without copying. A nil frame yields nil.
func ToRaw(f *frame.Frame) *mat.Dense {
	if f == nil {
		return nil
	}
	return f.Values()
}

// ToRawVector returns the values of s without copying. A nil series yields nil.
func ToRawVector(s *frame.Series) *mat.VecDense {
	if s == nil {
		return nil
	}
	return s.Values()
}

// seriesAsDense views a series as an n×1 matrix, sharing storage when the
// vector is contiguous.
func seriesAsDense(s *frame.Series) *mat.Dense {
	v := s.Values()
	raw := v.RawVector()
	if raw.Inc == 1 {
		return mat.NewDense(v.Len(), 1, raw.Data[:v.Len()])
	}
	out := mat.NewDense(v.Len(), 1, nil)
	out.SetCol(0, mat.Col(nil, 0, v))
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// convertLabeled converts a labeled argument to the declared parameter type.
// Labeled values pass through when the parameter declares the labeled type.
func convertLabeled(op string, pos int, arg any, want reflect.Type) (reflect.Value, error) {
	if isNil(arg) {
		if !nillable(want) {
			return reflect.Value{}, errors.NewArgumentError(op, pos, want.String(), "nil")
		}
		return reflect.Zero(want), nil
	}
	switch v := arg.(type) {
	case *frame.Frame:
		switch {
		case frameType.AssignableTo(want):
			return reflect.ValueOf(v), nil
		case denseType.AssignableTo(want):
			return reflect.ValueOf(v.Values()), nil
		}
	case *frame.Series:
		switch {
		case seriesType.AssignableTo(want):
			return reflect.ValueOf(v), nil
		case vecDenseType.AssignableTo(want):
			return reflect.ValueOf(v.Values()), nil
		case want == denseType:
			return reflect.ValueOf(seriesAsDense(v)), nil
		}
	}
	return assignArg(op, pos, arg, want)
}

// assignArg passes a non-labeled argument through when it fits the parameter.
func assignArg(op string, pos int, arg any, want reflect.Type) (reflect.Value, error) {
	if isNil(arg) {
		if !nillable(want) {
			return reflect.Value{}, errors.NewArgumentError(op, pos, want.String(), "nil")
		}
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(arg)
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, errors.NewArgumentError(op, pos, want.String(), rv.Type().String())
	}
	return rv, nil
}

// buildArgs prepares reflect arguments for method according to conv.
// Only X (and y for XYConvention) are converted, the rest are checked for
// assignability and passed unchanged.
func buildArgs(op string, method reflect.Value, conv Convention, args []any) ([]reflect.Value, error) {
	mt := method.Type()
	nIn := mt.NumIn()
	variadic := mt.IsVariadic()

	if conv == XYConvention && len(args) == 1 {
		args = append(args, nil)
	}
	fixed := nIn
	if variadic {
		fixed = nIn - 1
	}
	if len(args) < fixed || (!variadic && len(args) > nIn) {
		want := fmt.Sprintf("%d", nIn)
		if variadic {
			want = fmt.Sprintf("at least %d", fixed)
		}
		return nil, errors.NewArgumentError(op, -1, want, fmt.Sprintf("%d", len(args)))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := paramType(mt, i)
		var (
			v   reflect.Value
			err error
		)
		switch {
		case i == 0 && conv != Unclassified:
			v, err = convertLabeled(op, i, arg, want)
		case i == 1 && conv == XYConvention:
			v, err = convertLabeled(op, i, arg, want)
		default:
			v, err = assignArg(op, i, arg, want)
		}
		if err != nil {
			return nil, err
		}
		in[i] = v
	}
	return in, nil
}

func paramType(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}
