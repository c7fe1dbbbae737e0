package feature_selection

import "github.com/YuminosukeSato/framelearn/adapter"

// Register adds the selectors to r and opts every one of them in to column
// restoration. Only proxies built by r are affected.
//
//	reg := adapter.NewRegistry()
//	restored, err := feature_selection.Register(reg)
//	p := reg.Adapt(feature_selection.NewSelectKBest(2))
func Register(r *adapter.Registry) ([]string, error) {
	return r.RegisterCompatibleTypes("feature_selection", map[string]adapter.Factory{
		"SelectKBest":       func() any { return NewSelectKBest(10) },
		"VarianceThreshold": func() any { return NewVarianceThreshold(0) },
	})
}
