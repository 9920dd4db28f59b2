package images

import (
	"crypto/md5"
	"fmt"
	"runtime"
	"sync"
)

// ComputeChecksum generates a deterministic checksum for a buffer to verify
// idempotency between runs.
//
// Arguments:
// - buf: The buffer to compute a checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	checksum := images.ComputeChecksum(frame)
//	fmt.Printf("Frame checksum: %s\n", checksum)
//
// ```
func ComputeChecksum(buf *Buffer) string {
	if buf == nil || len(buf.Pix) == 0 {
		return "empty"
	}

	hash := md5.New()
	hash.Write(buf.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// Clamp restricts a value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Parallel splits dataSize units of work across one goroutine per CPU and
// blocks until all partitions finish. Small workloads run serially since
// goroutine overhead would dominate.
//
// Arguments:
// - dataSize: Total number of work units.
// - fn: Worker invoked with the half-open range [partStart, partEnd).
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
