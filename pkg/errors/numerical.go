package errors

import (
	"fmt"
	"math"
)

// CheckFinite returns a ValueError if any of values is NaN or Inf.
func CheckFinite(operation string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, fmt.Sprintf("non-finite value %g at position %d", v, i))
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for NaN or Inf.
func CheckMatrix(operation string, matrix interface{ Dims() (int, int); At(int, int) float64 }) error {
	rows, cols := matrix.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValueError(operation, fmt.Sprintf("non-finite value %g at (%d, %d)", v, i, j))
			}
		}
	}
	return nil
}
