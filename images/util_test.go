package images

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeChecksum(t *testing.T) {
	a := makeGradient(t, 6, 6)
	b := makeGradient(t, 6, 6)

	assert.Equal(t, ComputeChecksum(a), ComputeChecksum(b), "identical buffers share a checksum")

	b.Pix[0] ^= 0xFF
	assert.NotEqual(t, ComputeChecksum(a), ComputeChecksum(b), "a single sample change must alter the checksum")

	assert.Equal(t, "empty", ComputeChecksum(nil), "nil buffer reports empty")
	assert.Equal(t, "empty", ComputeChecksum(New(0, 0)), "zero-size buffer reports empty")
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{name: "below range", value: -3, min: 0, max: 255, want: 0},
		{name: "above range", value: 300, min: 0, max: 255, want: 255},
		{name: "inside range", value: 127.5, min: 0, max: 255, want: 127.5},
		{name: "at lower bound", value: 0, min: 0, max: 255, want: 0},
		{name: "at upper bound", value: 255, min: 0, max: 255, want: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.value, tt.min, tt.max))
		})
	}
}

func TestParallelCoversEveryUnitOnce(t *testing.T) {
	const size = 10_000
	var hits [size]int32

	Parallel(size, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("unit %d processed %d times, want exactly once", i, h)
		}
	}
}

func TestParallelSmallWorkloadRunsSerially(t *testing.T) {
	var calls int32
	Parallel(3, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start, "serial fallback covers the whole range")
		assert.Equal(t, 3, end, "serial fallback covers the whole range")
	})
	assert.Equal(t, int32(1), calls, "small workloads use a single invocation")
}

func TestParallelZeroSize(t *testing.T) {
	ran := false
	Parallel(0, func(start, end int) {
		ran = true
		assert.Equal(t, 0, end, "zero-size range")
	})
	assert.True(t, ran, "worker still invoked once for empty input")
}
