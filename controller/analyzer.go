// Package controller - Hole structure analysis for fill routing.
package controller

import (
	"fmt"
	"image"

	"github.com/nvr-ai/go-inpaint/images"
)

// HoleAnalyzer is an interface for measuring hole structure in masks
//
// Implementations should analyze the spatial layout of the masked region
// to determine how demanding a fill will be before an engine is chosen.
type HoleAnalyzer interface {
	AnalyzeHoles(mask *images.Buffer) (HoleMetrics, error)
}

// HoleMetrics provides detailed analysis of hole count and distribution
//
// This structure describes the connected hole regions of one mask: how
// many there are, how much of the frame they cover, and where they sit.
type HoleMetrics struct {
	// TotalHoles is the number of connected hole regions counted
	TotalHoles int `json:"total_holes"`

	// MaskedPixels is the total pixels across counted regions
	MaskedPixels int `json:"masked_pixels"`

	// HoleFraction is counted pixels over frame pixels
	HoleFraction float64 `json:"hole_fraction"`

	// LargestHoleFraction is the largest single region over frame pixels
	LargestHoleFraction float64 `json:"largest_hole_fraction"`

	// AverageHoleSize is the mean counted region size in pixels
	AverageHoleSize float64 `json:"average_hole_size"`

	// BoundingRegion contains every counted hole pixel
	BoundingRegion image.Rectangle `json:"bounding_region"`
}

// StandardHoleAnalyzer labels 4-connected hole regions with a flood fill
//
// Diagonal contact does not join regions, so a dashed scratch counts as
// many holes while a solid blotch counts as one. Regions smaller than
// MinHoleArea are dropped from every metric; speck noise from a sloppy
// mask should not drive routing.
type StandardHoleAnalyzer struct {
	// MinHoleArea is the minimum region size in pixels to be counted
	MinHoleArea int `json:"min_hole_area"`
}

// NewStandardHoleAnalyzer creates an analyzer that counts every region.
//
// Returns:
//   - *StandardHoleAnalyzer: The initialized analyzer.
//
// @example
// analyzer := NewStandardHoleAnalyzer()
// metrics, err := analyzer.AnalyzeHoles(mask)
func NewStandardHoleAnalyzer() *StandardHoleAnalyzer {
	return &StandardHoleAnalyzer{MinHoleArea: 1}
}

// AnalyzeHoles measures the connected hole regions of the mask.
//
// Arguments:
//   - mask: The mask to analyze. A pixel is a hole when its alpha is non-zero.
//
// Returns:
//   - HoleMetrics: The structure of the counted regions.
//   - error: An error if the mask is missing or has no area.
func (sha *StandardHoleAnalyzer) AnalyzeHoles(mask *images.Buffer) (HoleMetrics, error) {
	if mask == nil {
		return HoleMetrics{}, fmt.Errorf("mask is required")
	}
	w, h := mask.Width, mask.Height
	if w <= 0 || h <= 0 {
		return HoleMetrics{}, fmt.Errorf("mask has no area: %dx%d", w, h)
	}

	var metrics HoleMetrics
	visited := make([]bool, w*h)
	var stack []image.Point
	largest := 0
	bounded := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || mask.AlphaAt(x, y) == 0 {
				continue
			}

			size := 0
			region := image.Rect(x, y, x+1, y+1)
			visited[y*w+x] = true
			stack = append(stack[:0], image.Pt(x, y))
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				region = region.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for _, n := range [4]image.Point{
					{p.X - 1, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y - 1}, {p.X, p.Y + 1},
				} {
					if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
						continue
					}
					if visited[n.Y*w+n.X] || mask.AlphaAt(n.X, n.Y) == 0 {
						continue
					}
					visited[n.Y*w+n.X] = true
					stack = append(stack, n)
				}
			}

			if size < sha.MinHoleArea {
				continue
			}
			metrics.TotalHoles++
			metrics.MaskedPixels += size
			if size > largest {
				largest = size
			}
			if bounded {
				metrics.BoundingRegion = metrics.BoundingRegion.Union(region)
			} else {
				metrics.BoundingRegion = region
				bounded = true
			}
		}
	}

	frame := float64(w * h)
	metrics.HoleFraction = float64(metrics.MaskedPixels) / frame
	metrics.LargestHoleFraction = float64(largest) / frame
	if metrics.TotalHoles > 0 {
		metrics.AverageHoleSize = float64(metrics.MaskedPixels) / float64(metrics.TotalHoles)
	}
	return metrics, nil
}
