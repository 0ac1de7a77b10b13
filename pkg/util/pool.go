package util

import "runtime"

// GetOptimalPoolSize returns the shared pool size for CPU-bound work:
// min(max(NumCPU*2, 4), 32).
//
// The same value sizes both the parser pools and the analysis worker pool.
// They must agree, or workers block waiting for parsers.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// the CPU-derived default. Used by tests and tuning flags.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
