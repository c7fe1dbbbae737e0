// Package framelearn adapts matrix-based estimators to labeled data frames.
//
// Estimators in framelearn (and any third-party estimator following the same
// method shapes) work on gonum matrices. The adapter package wraps such an
// estimator so that its methods accept *frame.Frame and *frame.Series and
// return results carrying the row index and column labels of the input.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/framelearn/adapter"
//	    "github.com/YuminosukeSato/framelearn/core/frame"
//	    "github.com/YuminosukeSato/framelearn/preprocessing"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := frame.MustNew(mat.NewDense(3, 2, []float64{1, 10, 2, 20, 3, 30}),
//	        []string{"mon", "tue", "wed"}, []string{"price", "volume"})
//
//	    scaler := adapter.Adapt(preprocessing.NewStandardScalerDefault())
//	    out, err := scaler.FitTransform(X, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out) // index mon..wed, columns price and volume
//	}
//
// # Packages
//
//   - adapter: method classification, the Proxy wrapper, the kind Registry and snapshots
//   - core/frame: labeled Frame and Series, CSV reading and writing
//   - core/model: estimator interfaces, parameter helpers, state and persistence
//   - preprocessing: StandardScaler, MinMaxScaler
//   - sklearn/feature_selection: VarianceThreshold, SelectKBest
//   - sklearn/linear_model: LinearRegression
//   - metrics: regression metrics
//   - pkg/errors, pkg/log: typed errors and structured logging
//   - pkg/report: score charts
//   - cmd/framelearn: command line interface
//
// # Column Restoration
//
// Column-selecting estimators (those with GetSupport) can opt in to column
// restoration, either per proxy with adapter.WithColumnRestoration or per kind
// through adapter.Registry. Transform and FitTransform results then carry the
// names of the selected input columns instead of positional labels.
package framelearn
