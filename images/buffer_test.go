package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeGradient builds a w×h buffer with a deterministic per-pixel pattern.
func makeGradient(t testing.TB, w, h int) *Buffer {
	t.Helper()

	buf := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8((x + y) * 3),
				A: 255,
			})
		}
	}
	return buf
}

func TestNewAllocatesZeroedPixels(t *testing.T) {
	buf := New(4, 3)

	assert.Equal(t, 4, buf.Width, "width should match")
	assert.Equal(t, 3, buf.Height, "height should match")
	require.Len(t, buf.Pix, 4*3*BytesPerPixel, "backing slice should hold 4 samples per pixel")
	for i, v := range buf.Pix {
		require.Zero(t, v, "sample %d should start zeroed", i)
	}
}

func TestFromImageRGBAFastPath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 40})
	img.SetRGBA(2, 1, color.RGBA{R: 50, G: 60, B: 70, A: 80})

	buf := FromImage(img)

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 40}, buf.RGBAAt(0, 0), "top-left pixel should survive the copy")
	assert.Equal(t, color.RGBA{R: 50, G: 60, B: 70, A: 80}, buf.RGBAAt(2, 1), "bottom-right pixel should survive the copy")
}

func TestFromImageSubRectangle(t *testing.T) {
	// A view not anchored at (0,0) must still copy the right pixels.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 2, color.RGBA{R: 99, G: 0, B: 0, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 4, 4)).(*image.RGBA)

	buf := FromImage(sub)

	require.Equal(t, 3, buf.Width, "sub-view width")
	require.Equal(t, 3, buf.Height, "sub-view height")
	assert.Equal(t, uint8(99), buf.Pix[buf.PixOffset(1, 1)], "pixel (2,2) of the parent should land at (1,1)")
}

func TestFromImageGenericPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	buf := FromImage(img)

	got := buf.RGBAAt(1, 0)
	assert.Equal(t, uint8(200), got.R, "red channel should convert exactly at full alpha")
	assert.Equal(t, uint8(255), got.A, "alpha channel should convert exactly")
}

func TestToImageSharesBacking(t *testing.T) {
	buf := makeGradient(t, 5, 5)

	img := buf.ToImage()
	img.SetRGBA(3, 3, color.RGBA{R: 1, G: 2, B: 3, A: 4})

	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, buf.RGBAAt(3, 3),
		"writes through the image view should be visible in the buffer")
}

func TestCloneIsDeep(t *testing.T) {
	buf := makeGradient(t, 4, 4)

	clone := buf.Clone()
	clone.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	assert.NotEqual(t, buf.RGBAAt(0, 0), clone.RGBAAt(0, 0), "mutating the clone must not touch the original")
	assert.Equal(t, buf.Width, clone.Width, "clone keeps dimensions")
	assert.Equal(t, buf.Height, clone.Height, "clone keeps dimensions")
}

func TestOutOfBoundsAccess(t *testing.T) {
	buf := makeGradient(t, 3, 3)

	assert.Equal(t, color.RGBA{}, buf.RGBAAt(-1, 0), "negative x reads zero")
	assert.Equal(t, color.RGBA{}, buf.RGBAAt(0, 3), "overflowing y reads zero")
	assert.Zero(t, buf.AlphaAt(3, 0), "out-of-bounds alpha is zero")

	before := append([]uint8(nil), buf.Pix...)
	buf.SetRGBA(-1, -1, color.RGBA{R: 255})
	buf.SetRGBA(3, 3, color.RGBA{R: 255})
	assert.Equal(t, before, buf.Pix, "out-of-bounds writes are dropped")
}

func TestBufferImplementsImage(t *testing.T) {
	var _ image.Image = (*Buffer)(nil)

	buf := makeGradient(t, 2, 2)
	assert.Equal(t, image.Rect(0, 0, 2, 2), buf.Bounds(), "bounds anchored at origin")
	assert.Equal(t, color.RGBAModel, buf.ColorModel(), "RGBA color model")

	r, g, b, a := buf.At(1, 1).RGBA()
	want := buf.RGBAAt(1, 1)
	assert.Equal(t, uint32(want.R)*0x101, r, "At should agree with RGBAAt")
	assert.Equal(t, uint32(want.G)*0x101, g, "At should agree with RGBAAt")
	assert.Equal(t, uint32(want.B)*0x101, b, "At should agree with RGBAAt")
	assert.Equal(t, uint32(want.A)*0x101, a, "At should agree with RGBAAt")
}
