package benchmark

import (
	"math"
	"time"

	"github.com/nvr-ai/go-inpaint/images"
)

// PerformanceMetrics captures the outcome of one benchmark scenario.
type PerformanceMetrics struct {
	Scenario            Scenario       `json:"scenario"`
	Timestamp           time.Time      `json:"timestamp"`
	TotalDuration       time.Duration  `json:"total_duration"`
	AverageFillDuration time.Duration  `json:"average_fill_duration"`
	MegapixelsPerSecond float64        `json:"megapixels_per_second"`
	MemoryStats         MemoryMetrics  `json:"memory_stats"`
	CPUStats            CPUMetrics     `json:"cpu_stats"`
	Quality             QualityMetrics `json:"quality"`
	ErrorRate           float64        `json:"error_rate"`
}

// MemoryMetrics captures memory usage statistics
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
	HeapAllocBytes  uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes    uint64 `json:"heap_sys_bytes"`
}

// CPUMetrics captures CPU statistics
type CPUMetrics struct {
	NumCPU int `json:"num_cpu"`
}

// QualityMetrics scores filled pixels against the pre-hole original.
// Benchmark holes are synthetic, so ground truth is always available.
type QualityMetrics struct {
	MSE          float64 `json:"mse"`
	PSNR         float64 `json:"psnr"`
	FilledPixels int     `json:"filled_pixels"`
}

// FilledRegionQuality computes MSE and PSNR of result against truth
// over the pixels holes marks as masked. Only RGB channels count.
// A perfect reconstruction reports the PSNR cap; an empty hole set
// reports zeroes.
//
// Arguments:
// - result: The filled frame.
// - truth: The original frame before the hole was cut.
// - holes: The mask as it was before the fill consumed it.
//
// Returns:
// - QualityMetrics: MSE, PSNR and the number of scored pixels.
func FilledRegionQuality(result, truth, holes *images.Buffer) QualityMetrics {
	var sum float64
	cells := 0
	for y := 0; y < truth.Height; y++ {
		for x := 0; x < truth.Width; x++ {
			pi := truth.PixOffset(x, y)
			if holes.Pix[pi+3] == 0 {
				continue
			}
			for c := 0; c < 3; c++ {
				d := float64(result.Pix[pi+c]) - float64(truth.Pix[pi+c])
				sum += d * d
			}
			cells++
		}
	}
	if cells == 0 {
		return QualityMetrics{}
	}

	mse := sum / float64(cells*3)
	return QualityMetrics{
		MSE:          mse,
		PSNR:         psnr(mse),
		FilledPixels: cells,
	}
}

// psnrCap bounds reported PSNR. Infinity does not survive JSON
// encoding, so a perfect reconstruction reports the cap instead.
const psnrCap = 99.0

// psnr converts a mean squared error to peak signal-to-noise ratio in
// decibels against the 8-bit peak.
func psnr(mse float64) float64 {
	if mse <= 0 {
		return psnrCap
	}
	return math.Min(10*math.Log10(255*255/mse), psnrCap)
}
