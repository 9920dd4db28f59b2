package patchmatch

import (
	"math"

	"github.com/nvr-ai/go-inpaint/images"
)

// patchDist scores how well the window centered at (bx, by) explains the
// window centered at (ax, ay): the average squared RGB difference over the
// cells that fall inside image bounds on both sides simultaneously. Cells
// out of bounds on either side contribute to neither the sum nor the
// denominator. Zero comparable cells yields +Inf, so a degenerate candidate
// can never win.
//
// Both windows are read from the working buffer, including pixels already
// synthesized this run. Matches are therefore scored against whatever has
// been reconstructed nearby so far, which is what lets content grow inward
// from the hole boundary across passes.
func (e *engine) patchDist(ax, ay, bx, by int) float64 {
	w, h := e.img.Width, e.img.Height
	pix := e.img.Pix

	sum := 0.0
	count := 0
	for dy := -e.half; dy <= e.half; dy++ {
		ay2 := ay + dy
		by2 := by + dy
		if ay2 < 0 || ay2 >= h || by2 < 0 || by2 >= h {
			continue
		}
		aRow := ay2 * w
		bRow := by2 * w
		for dx := -e.half; dx <= e.half; dx++ {
			ax2 := ax + dx
			bx2 := bx + dx
			if ax2 < 0 || ax2 >= w || bx2 < 0 || bx2 >= w {
				continue
			}
			ai := (aRow + ax2) * images.BytesPerPixel
			bi := (bRow + bx2) * images.BytesPerPixel
			dr := float64(pix[ai]) - float64(pix[bi])
			dg := float64(pix[ai+1]) - float64(pix[bi+1])
			db := float64(pix[ai+2]) - float64(pix[bi+2])
			sum += dr*dr + dg*dg + db*db
			count++
		}
	}

	if count == 0 {
		return math.Inf(1)
	}
	return sum / float64(count)
}
