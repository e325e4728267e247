package utils

import (
	"os"
	"runtime"
	"strconv"

	"github.com/exascience/pargo/parallel"
)

// WorkersEnv overrides the default worker count when set to a positive integer
const WorkersEnv = "FASPOISSON_WORKERS"

// Workers resolves a configured worker count. Zero selects the environment
// override or the number of CPUs; anything below zero runs serially.
func Workers(configured int) int {
	if configured > 0 {
		return configured
	}
	if configured < 0 {
		return 1
	}
	if nw := os.Getenv(WorkersEnv); nw != "" {
		if n, err := strconv.Atoi(nw); err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// ParallelRange runs f over [0, n) split into at most workers batches.
// Batches run concurrently and ParallelRange returns once all of them have
// finished, so writes made by f are visible to the caller.
func ParallelRange(n, workers int, f func(low, high int)) {
	if n <= 0 {
		return
	}
	// Small ranges are not worth the goroutine overhead
	if workers <= 1 || n == 1 {
		f(0, n)
		return
	}
	if workers > n {
		workers = n
	}
	parallel.Range(0, n, workers, f)
}
