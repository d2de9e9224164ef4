package remap

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Below this many pixels the goroutine overhead outweighs the work.
const minParallelPixels = 1 << 14

// parallelRows calls fn over contiguous row ranges covering [0, rows) and
// returns once every range is done. Ranges never overlap.
func parallelRows(rows, cols int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), rows)
	if workers <= 1 || rows*cols < minParallelPixels {
		fn(0, rows)
		return
	}

	chunk := (rows + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunk {
		start := start
		end := min(start+chunk, rows)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
