package benchmark

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-inpaint/images"
)

func TestFilledRegionQuality(t *testing.T) {
	truth := images.New(4, 1)
	for x := 0; x < 4; x++ {
		truth.SetRGBA(x, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	}
	result := truth.Clone()

	holes := images.New(4, 1)
	holes.Pix[0*images.BytesPerPixel+3] = 255
	holes.Pix[1*images.BytesPerPixel+3] = 255

	// One masked pixel off by 10 in the red channel, the other exact.
	// Unmasked pixels are wildly wrong and must not count.
	result.SetRGBA(0, 0, color.RGBA{R: 110, G: 100, B: 100, A: 255})
	result.SetRGBA(3, 0, color.RGBA{A: 255})

	quality := FilledRegionQuality(result, truth, holes)

	require.Equal(t, 2, quality.FilledPixels)
	assert.InDelta(t, 100.0/6.0, quality.MSE, 1e-9, "two masked pixels share six channel samples")
	assert.InDelta(t, 10*math.Log10(255*255/(100.0/6.0)), quality.PSNR, 1e-9)
}

func TestFilledRegionQualityPerfectFill(t *testing.T) {
	truth := images.New(3, 3)
	result := truth.Clone()
	holes := images.New(3, 3)
	images.SetMaskRect(holes, truth.Bounds())

	quality := FilledRegionQuality(result, truth, holes)

	assert.Zero(t, quality.MSE)
	assert.Equal(t, psnrCap, quality.PSNR, "perfect fills report the cap, not infinity")
	assert.Equal(t, 9, quality.FilledPixels)
}

func TestFilledRegionQualityEmptyHoles(t *testing.T) {
	truth := images.New(2, 2)
	quality := FilledRegionQuality(truth.Clone(), truth, images.New(2, 2))

	assert.Zero(t, quality.MSE)
	assert.Zero(t, quality.PSNR)
	assert.Zero(t, quality.FilledPixels)
}
