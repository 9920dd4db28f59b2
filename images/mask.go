package images

import "image"

// Masks are ordinary Buffers: a pixel is masked iff its alpha sample is
// non-zero. The helpers below only ever read or write the alpha channel.

// MaskedAt reports whether pixel (x, y) of the mask is masked.
// Out-of-bounds coordinates are never masked.
func MaskedAt(mask *Buffer, x, y int) bool {
	return mask.AlphaAt(x, y) != 0
}

// CountMasked returns the number of masked pixels.
func CountMasked(mask *Buffer) int {
	count := 0
	for i := 3; i < len(mask.Pix); i += BytesPerPixel {
		if mask.Pix[i] != 0 {
			count++
		}
	}
	return count
}

// HoleFraction returns the masked share of the mask's area in [0, 1].
// An empty mask buffer yields 0.
func HoleFraction(mask *Buffer) float64 {
	area := mask.Width * mask.Height
	if area == 0 {
		return 0
	}
	return float64(CountMasked(mask)) / float64(area)
}

// MaskBounds returns the tight bounding rectangle of all masked pixels, or
// the zero rectangle when nothing is masked.
//
// Arguments:
// - mask: The mask buffer to scan.
//
// Returns:
// - An image.Rectangle covering every masked pixel.
func MaskBounds(mask *Buffer) image.Rectangle {
	minX, minY := mask.Width, mask.Height
	maxX, maxY := -1, -1
	for y := 0; y < mask.Height; y++ {
		row := mask.Pix[y*mask.Width*BytesPerPixel:]
		for x := 0; x < mask.Width; x++ {
			if row[x*BytesPerPixel+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// SetMaskRect marks every pixel inside r (clipped to the mask bounds) as
// masked by setting its alpha to 255.
func SetMaskRect(mask *Buffer, r image.Rectangle) {
	r = r.Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			mask.Pix[mask.PixOffset(x, y)+3] = 255
		}
	}
}

// MaskFromLuminance builds a mask from a grayscale-style image: pixels at or
// above the threshold luminance become masked (alpha 255), everything else
// stays unmasked. Useful for the common white-on-black mask file convention
// where the file itself is fully opaque.
//
// Arguments:
// - img: The mask image, typically white strokes on black.
// - threshold: Minimum luminance (0–255) for a pixel to count as masked.
//
// Returns:
// - A new mask buffer of identical dimensions.
func MaskFromLuminance(img *Buffer, threshold uint8) *Buffer {
	mask := New(img.Width, img.Height)
	for i := 0; i < len(img.Pix); i += BytesPerPixel {
		// Rec. 601 integer luma.
		luma := (299*int(img.Pix[i]) + 587*int(img.Pix[i+1]) + 114*int(img.Pix[i+2])) / 1000
		if luma >= int(threshold) {
			mask.Pix[i+3] = 255
		}
	}
	return mask
}
