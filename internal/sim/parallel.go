package sim

import "sync"

// minChunk keeps small loops on the calling goroutine.
const minChunk = 64

// ParallelFor splits [0, n) into contiguous chunks, one per worker, and calls
// fn(start, end) for each. fn must only write state owned by its range.
func ParallelFor(workers, n int, fn func(start, end int)) {
	if workers <= 1 || n < 2*minChunk {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	if chunkSize < minChunk {
		chunkSize = minChunk
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
