// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the item count up to which work stays on the calling
// goroutine.
const DefaultThreshold = 1000

// Ranges divides [0, items) into one contiguous chunk per CPU core and runs
// fn on every chunk concurrently. It returns the first error reported by any
// chunk after all of them have finished.
func Ranges(items int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}
	workers := min(runtime.NumCPU(), items)
	chunk := (items + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		g.Go(func() error { return fn(start, end) })
	}
	return g.Wait()
}

// RangesWithThreshold calls fn(0, items) directly when items does not exceed
// threshold and behaves like Ranges otherwise.
func RangesWithThreshold(items, threshold int, fn func(start, end int) error) error {
	if items <= threshold {
		if items <= 0 {
			return nil
		}
		return fn(0, items)
	}
	return Ranges(items, fn)
}
