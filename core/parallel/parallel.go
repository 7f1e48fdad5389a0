// Package parallel provides CPU-parallel range helpers.
//
// The explanation pipeline is data-parallel across the inputs of a chunk:
// each input's working tensors are exclusively owned while it is processed,
// so ranges of inputs can be handed to workers without locking.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end)
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	// Get the number of available CPU cores
	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	// Start workers equal to the number of CPU cores
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		// Skip if there's no range to handle
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	// Wait for all workers to finish processing
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		// Sequential processing when below threshold
		fn(0, items)
		return
	}

	// Parallel processing when above threshold
	Parallelize(items, fn)
}

// ParallelizeWithError runs fn over worker ranges like Parallelize and
// returns the first error reported by any range. All ranges run to
// completion even when one fails; the failure then aborts the caller.
func ParallelizeWithError(items int, fn func(start, end int) error) error {
	if items == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	Parallelize(items, func(start, end int) {
		if err := fn(start, end); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	})
	return firstErr
}
