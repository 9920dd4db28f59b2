package benchmark

import (
	"image"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/images"
)

// MaskPattern identifies a synthetic hole shape.
type MaskPattern string

const (
	// PatternCenteredBox masks one solid rectangle in the frame center.
	PatternCenteredBox MaskPattern = "centered-box"
	// PatternRandomStrokes masks brush-like wandering lines.
	PatternRandomStrokes MaskPattern = "random-strokes"
	// PatternScatteredBlobs masks small disks spread over the frame.
	PatternScatteredBlobs MaskPattern = "scattered-blobs"
)

// MaskPatterns lists every generator.
var MaskPatterns = []MaskPattern{
	PatternCenteredBox,
	PatternRandomStrokes,
	PatternScatteredBlobs,
}

// GenerateMask builds a width×height mask with roughly the requested
// coverage fraction masked. The random patterns draw every position
// from rng, so the same seed reproduces the same holes.
//
// Arguments:
// - pattern: The hole shape to generate.
// - width, height: Mask dimensions in pixels.
// - coverage: Target masked fraction in (0, 1].
// - rng: Source for the random patterns. The centered box ignores it.
//
// Returns:
// - *images.Buffer: The generated mask.
// - error: Error for unknown patterns or unusable parameters.
func GenerateMask(pattern MaskPattern, width, height int, coverage float64, rng *rand.Rand) (*images.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("mask dimensions must be positive, got %dx%d", width, height)
	}
	if coverage <= 0 || coverage > 1 {
		return nil, errors.Errorf("coverage must be in (0, 1], got %v", coverage)
	}

	mask := images.New(width, height)
	switch pattern {
	case PatternCenteredBox:
		boxMask(mask, coverage)
	case PatternRandomStrokes, PatternScatteredBlobs:
		if rng == nil {
			return nil, errors.Errorf("pattern %s needs a random source", pattern)
		}
		if pattern == PatternRandomStrokes {
			strokeMask(mask, coverage, rng)
		} else {
			blobMask(mask, coverage, rng)
		}
	default:
		return nil, errors.Errorf("unknown mask pattern: %s", pattern)
	}
	return mask, nil
}

// boxMask masks one centered rectangle whose area approximates the
// target coverage, leaving a border so every fill method has context
// on all sides.
func boxMask(mask *images.Buffer, coverage float64) {
	side := math.Sqrt(coverage)
	bw := int(float64(mask.Width)*side + 0.5)
	bh := int(float64(mask.Height)*side + 0.5)
	bw = max(min(bw, mask.Width-2), 1)
	bh = max(min(bh, mask.Height-2), 1)

	x0 := (mask.Width - bw) / 2
	y0 := (mask.Height - bh) / 2
	images.SetMaskRect(mask, image.Rect(x0, y0, x0+bw, y0+bh))
}

// strokeMask wanders drunk brush strokes until the target pixel count
// is reached. Strokes overlap, so the count is approached rather than
// hit exactly.
func strokeMask(mask *images.Buffer, coverage float64, rng *rand.Rand) {
	target := targetPixels(mask, coverage)
	length := max(min(mask.Width, mask.Height)/2, 4)

	for attempts := 0; images.CountMasked(mask) < target && attempts < 64; attempts++ {
		x := rng.Intn(mask.Width)
		y := rng.Intn(mask.Height)
		for step := 0; step < length; step++ {
			stampDisk(mask, x, y, 1)
			x += rng.Intn(3) - 1
			y += rng.Intn(3) - 1
			if x < 0 || x >= mask.Width || y < 0 || y >= mask.Height {
				break
			}
		}
	}
}

// blobMask scatters filled disks until the target pixel count is
// reached.
func blobMask(mask *images.Buffer, coverage float64, rng *rand.Rand) {
	target := targetPixels(mask, coverage)
	maxRadius := max(min(mask.Width, mask.Height)/8, 1)

	for attempts := 0; images.CountMasked(mask) < target && attempts < 256; attempts++ {
		stampDisk(mask, rng.Intn(mask.Width), rng.Intn(mask.Height), 1+rng.Intn(maxRadius))
	}
}

func targetPixels(mask *images.Buffer, coverage float64) int {
	return max(int(coverage*float64(mask.Width*mask.Height)+0.5), 1)
}

// stampDisk masks every pixel within radius of (cx, cy), clipped to
// the frame.
func stampDisk(mask *images.Buffer, cx, cy, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !mask.In(x, y) {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				mask.Pix[mask.PixOffset(x, y)+3] = 255
			}
		}
	}
}
