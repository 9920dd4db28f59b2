// Package images - Raw RGBA pixel buffers and mask helpers shared by every
// fill path.
package images

import (
	"image"
	"image/color"
)

// BytesPerPixel is the number of 8-bit samples per pixel (R, G, B, A).
const BytesPerPixel = 4

// Buffer is a width×height grid of 8-bit RGBA samples in row-major order.
//
// Sample i of pixel (x, y) lives at Pix[(y*Width+x)*4+i], the same layout as
// image.RGBA with a stride of 4*Width. Buffers are plain data: the caller
// owns the backing slice, and fill paths mutate it in place.
type Buffer struct {
	// Width is the number of pixels per row.
	Width int
	// Height is the number of rows.
	Height int
	// Pix holds the samples, 4 bytes per pixel.
	Pix []uint8
}

// New allocates a zeroed buffer of the given dimensions.
//
// Arguments:
// - width: Buffer width in pixels.
// - height: Buffer height in pixels.
//
// Returns:
// - A buffer whose samples are all zero (transparent black).
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// FromImage copies any image.Image into a new Buffer.
//
// *image.RGBA inputs are copied row by row; other color models go through
// the generic At() path with 16→8 bit truncation.
//
// Arguments:
// - img: The source image.
//
// Returns:
// - A freshly allocated buffer with the image's pixels.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := New(w, h)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			srcRow := rgba.Pix[(y+bounds.Min.Y-rgba.Rect.Min.Y)*rgba.Stride:]
			srcRow = srcRow[(bounds.Min.X-rgba.Rect.Min.X)*BytesPerPixel:]
			copy(buf.Pix[y*w*BytesPerPixel:(y+1)*w*BytesPerPixel], srcRow[:w*BytesPerPixel])
		}
		return buf
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := buf.PixOffset(x, y)
			buf.Pix[i] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			buf.Pix[i+3] = uint8(a >> 8)
		}
	}
	return buf
}

// ToImage wraps the buffer in an *image.RGBA sharing the same backing
// slice. Writes through either view are visible in both.
func (b *Buffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// PixOffset returns the index of the first sample of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// RGBAAt returns the pixel at (x, y). Out-of-bounds coordinates return the
// zero color.
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	if !b.In(x, y) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// SetRGBA writes the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (b *Buffer) SetRGBA(x, y int, c color.RGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// AlphaAt returns the alpha sample at (x, y), or 0 for out-of-bounds
// coordinates.
func (b *Buffer) AlphaAt(x, y int) uint8 {
	if !b.In(x, y) {
		return 0
	}
	return b.Pix[b.PixOffset(x, y)+3]
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}
