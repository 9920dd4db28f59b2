package patchmatch

import "github.com/nvr-ai/go-inpaint/images"

// region is the mask analysis for one run: a snapshot of which pixels were
// masked when the call began, plus the flat indices of every valid (unmasked)
// source pixel. The snapshot is immutable for the lifetime of the run, so
// clearing the caller's mask at the end cannot disturb source eligibility.
type region struct {
	w, h   int
	masked []bool
	valid  []int32
	holes  int
}

// analyzeMask classifies every pixel of the mask. A pixel is masked iff its
// alpha sample is non-zero.
func analyzeMask(mask *images.Buffer) *region {
	r := &region{
		w:      mask.Width,
		h:      mask.Height,
		masked: make([]bool, mask.Width*mask.Height),
	}
	r.valid = make([]int32, 0, len(r.masked))

	for i := range r.masked {
		if mask.Pix[i*images.BytesPerPixel+3] != 0 {
			r.masked[i] = true
			r.holes++
		} else {
			r.valid = append(r.valid, int32(i))
		}
	}
	return r
}

// maskedAt reports the snapshot state of (x, y). Out-of-bounds coordinates
// are never masked.
func (r *region) maskedAt(x, y int) bool {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return false
	}
	return r.masked[y*r.w+x]
}

// inBounds reports whether (x, y) lies inside the region grid.
func (r *region) inBounds(x, y int) bool {
	return x >= 0 && x < r.w && y >= 0 && y < r.h
}
