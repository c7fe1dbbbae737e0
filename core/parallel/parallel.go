// Package parallel runs per-column computations across CPU cores.
package parallel

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// DefaultThreshold is the column count below which MapColumns stays sequential.
const DefaultThreshold = 64

// Parallelize divides items into contiguous ranges according to the number of
// CPU cores and executes fn for each range (start, end) concurrently.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items <= threshold.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// MapColumns applies fn to every column of X and returns one value per column.
// fn receives a private copy of the column.
func MapColumns(X mat.Matrix, fn func(j int, col []float64) float64) []float64 {
	r, c := X.Dims()
	out := make([]float64, c)
	ParallelizeWithThreshold(c, DefaultThreshold, func(start, end int) {
		col := make([]float64, r)
		for j := start; j < end; j++ {
			mat.Col(col, j, X)
			out[j] = fn(j, col)
		}
	})
	return out
}
