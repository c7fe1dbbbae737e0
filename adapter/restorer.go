package adapter

import (
	"fmt"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// restoredOps are the transform-style operations relabeled by a ColumnRestorer.
var restoredOps = map[string]bool{
	"Transform":    true,
	"FitTransform": true,
}

// ColumnRestorer relabels the results of column-selecting estimators with the
// input columns picked by their support mask. The mask is queried on every
// call and nothing is retained between calls.
type ColumnRestorer struct{}

// Applies reports whether op results are relabeled.
func (ColumnRestorer) Applies(op string) bool { return restoredOps[op] }

// Columns returns inputColumns at the positions of est's current support
// mask, in mask order.
func (ColumnRestorer) Columns(op string, inputColumns []string, est any) ([]string, error) {
	q, ok := est.(model.SupportQuerier)
	if !ok {
		return nil, errors.NewValidationError("estimator", "does not expose a support mask", typeName(est))
	}
	mask, err := q.GetSupport()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(mask))
	for i, j := range mask {
		if j < 0 || j >= len(inputColumns) {
			return nil, errors.NewValueError(op,
				fmt.Sprintf("support index %d out of range for %d input columns", j, len(inputColumns)))
		}
		out[i] = inputColumns[j]
	}
	return out, nil
}

// Restore relabels f with the columns selected from inputColumns by est.
// Restoring an already restored frame yields the same labels.
func (r ColumnRestorer) Restore(f *frame.Frame, inputColumns []string, est any) (*frame.Frame, error) {
	cols, err := r.Columns("Transform", inputColumns, est)
	if err != nil {
		return nil, err
	}
	rows, c := f.Dims()
	if c != len(cols) {
		return nil, errors.NewShapeMismatchError("Transform", []int{rows, len(cols)}, []int{rows, c})
	}
	return f.WithColumns(cols)
}
