package model

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// ParamInt はハイパーパラメータの値をintに変換する。
// JSONから復元した値はfloat64になるため、整数値のfloat64も受け付ける。
func ParamInt(name string, v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, errors.NewValidationError(name, "must be an integer", v)
		}
		return int(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, errors.NewValidationError(name, "must be an integer", v)
		}
		return int(n), nil
	default:
		return 0, errors.NewValidationError(name, fmt.Sprintf("unsupported type %T", v), v)
	}
}

// ParamFloat はハイパーパラメータの値をfloat64に変換する。
func ParamFloat(name string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, errors.NewValidationError(name, "must be a number", v)
		}
		return f, nil
	default:
		return 0, errors.NewValidationError(name, fmt.Sprintf("unsupported type %T", v), v)
	}
}

// ParamBool はハイパーパラメータの値をboolに変換する。
func ParamBool(name string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.NewValidationError(name, fmt.Sprintf("unsupported type %T", v), v)
	}
	return b, nil
}
