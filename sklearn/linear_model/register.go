package linear_model

import "github.com/YuminosukeSato/framelearn/adapter"

// Register adds the linear models to r under their type names.
func Register(r *adapter.Registry) ([]string, error) {
	return r.RegisterCompatibleTypes("linear_model", map[string]adapter.Factory{
		"LinearRegression": func() any { return NewLinearRegression() },
	})
}
