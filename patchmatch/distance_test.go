package patchmatch

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-inpaint/images"
)

func newTestEngine(t testing.TB, img *images.Buffer, half int) *engine {
	t.Helper()

	return &engine{
		img:  img,
		reg:  analyzeMask(images.New(img.Width, img.Height)),
		nnf:  newField(img.Width, img.Height),
		half: half,
		rng:  rand.New(rand.NewSource(1)),
	}
}

func TestPatchDistIdenticalWindowsIsZero(t *testing.T) {
	img := makeSolid(t, 7, 7, red)
	e := newTestEngine(t, img, 1)

	assert.Zero(t, e.patchDist(3, 3, 3, 3), "a window compared with itself has zero distance")
	assert.Zero(t, e.patchDist(1, 1, 5, 5), "identical content at both centers has zero distance")
}

func TestPatchDistSinglePixelWindow(t *testing.T) {
	img := images.New(2, 1)
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 13, G: 24, B: 35, A: 255})
	e := newTestEngine(t, img, 0)

	// One comparable cell: 3² + 4² + 5² = 50.
	assert.InDelta(t, 50.0, e.patchDist(0, 0, 1, 0), 1e-9)
}

func TestPatchDistIgnoresAlpha(t *testing.T) {
	img := images.New(2, 1)
	img.SetRGBA(0, 0, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 50, G: 50, B: 50, A: 0})
	e := newTestEngine(t, img, 0)

	assert.Zero(t, e.patchDist(0, 0, 1, 0), "alpha differences never contribute to the distance")
}

func TestPatchDistAveragesOverComparableCellsOnly(t *testing.T) {
	// 3×3 image, windows at the corner (0,0) and center (1,1) with half=1:
	// only the four offsets keeping the corner window in bounds compare.
	img := images.New(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(10 * (y*3 + x)), A: 255})
		}
	}
	e := newTestEngine(t, img, 1)

	// Offsets (0,0),(1,0),(0,1),(1,1): pairs (p0,p4),(p1,p5),(p3,p7),(p4,p8),
	// each with a red delta of 40 → (4 · 1600) / 4.
	assert.InDelta(t, 1600.0, e.patchDist(0, 0, 1, 1), 1e-9)
}

func TestPatchDistSymmetricWhenFullyInBounds(t *testing.T) {
	img := makeNoise(t, rand.New(rand.NewSource(31)), 9, 9)
	e := newTestEngine(t, img, 1)

	assert.InDelta(t, e.patchDist(2, 2, 6, 6), e.patchDist(6, 6, 2, 2), 1e-9,
		"with both windows fully inside the image the metric is symmetric")
}

func TestPatchDistDegenerateWindowIsInfinite(t *testing.T) {
	img := makeSolid(t, 4, 4, red)
	e := newTestEngine(t, img, 1)

	d := e.patchDist(1, 1, -10, -10)
	require.True(t, math.IsInf(d, 1), "zero comparable cells must score +Inf, got %v", d)

	_, ok := e.consider(1, 1, -10, -10, math.Inf(1))
	assert.False(t, ok, "an out-of-bounds candidate can never be selected")
}
