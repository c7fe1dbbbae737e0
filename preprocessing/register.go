package preprocessing

import "github.com/YuminosukeSato/framelearn/adapter"

// Register adds the scalers to r. None of them select columns, so no kind
// receives column restoration.
func Register(r *adapter.Registry) ([]string, error) {
	return r.RegisterCompatibleTypes("preprocessing", map[string]adapter.Factory{
		"StandardScaler": func() any { return NewStandardScalerDefault() },
		"MinMaxScaler":   func() any { return NewMinMaxScalerDefault() },
	})
}
