package workers

import (
	"os"
	"runtime"
	"strconv"
)

// overrideEnv names the environment variable that forces a worker count.
const overrideEnv = "GIF_SHRINK_WORKERS"

// Count returns the number of workers for the given per-CPU multiplier.
// It respects container CPU limits via GOMAXPROCS (Go 1.19+).
//
// The limit parameter caps the worker count; use 0 for no limit.
//
// Can be overridden with the GIF_SHRINK_WORKERS environment variable.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(overrideEnv); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns the worker count for CPU-bound encoder work (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}
