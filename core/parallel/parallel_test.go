package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestParallelize_CoversAllItems(t *testing.T) {
	const n = 1000
	seen := make([]int32, n)

	Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, v := range seen {
		assert.Equalf(t, int32(1), v, "item %d", i)
	}
}

func TestParallelize_Zero(t *testing.T) {
	called := false
	Parallelize(0, func(int, int) { called = true })
	assert.False(t, called)
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(5, 10, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 5, end)
	})
	assert.Equal(t, int32(1), calls)
}

func TestMapColumns(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	sums := MapColumns(X, func(_ int, col []float64) float64 {
		return col[0] + col[1]
	})

	assert.Equal(t, []float64{5, 7, 9}, sums)
}

func TestMapColumns_Wide(t *testing.T) {
	const cols = DefaultThreshold * 3
	X := mat.NewDense(2, cols, nil)
	for j := 0; j < cols; j++ {
		X.Set(1, j, float64(j))
	}

	got := MapColumns(X, func(_ int, col []float64) float64 { return col[1] })

	for j := 0; j < cols; j++ {
		assert.Equal(t, float64(j), got[j])
	}
}
