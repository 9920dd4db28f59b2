package patchmatch

import "github.com/nvr-ai/go-inpaint/images"

// reconstruct converts the final field into output pixels. Every pixel's
// source window votes into the corresponding window around the pixel, and
// each hole pixel is written as the unweighted average of the votes it
// received; the purely greedy per-pixel copy of the refinement stage leaves
// visible seams that this overlapping-average pass smooths out. Pixels
// outside the original hole keep their input bytes exactly. Written pixels
// get alpha 255 and their mask entry cleared, consuming the hole.
func (e *engine) reconstruct(mask *images.Buffer) {
	w, h := e.reg.w, e.reg.h
	acc := make([]float64, w*h*3)
	weight := make([]uint32, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			sx := int(e.nnf.srcX[i])
			sy := int(e.nnf.srcY[i])
			for dy := -e.half; dy <= e.half; dy++ {
				ty := y + dy
				vy := sy + dy
				if ty < 0 || ty >= h || vy < 0 || vy >= h {
					continue
				}
				for dx := -e.half; dx <= e.half; dx++ {
					tx := x + dx
					vx := sx + dx
					if tx < 0 || tx >= w || vx < 0 || vx >= w {
						continue
					}
					ti := ty*w + tx
					vi := (vy*w + vx) * images.BytesPerPixel
					acc[ti*3] += float64(e.img.Pix[vi])
					acc[ti*3+1] += float64(e.img.Pix[vi+1])
					acc[ti*3+2] += float64(e.img.Pix[vi+2])
					weight[ti]++
				}
			}
		}
	}

	for i, m := range e.reg.masked {
		// Every pixel votes for itself through its own source window, so
		// weight is >= 1 for the whole hole.
		if !m || weight[i] == 0 {
			continue
		}
		n := float64(weight[i])
		pi := i * images.BytesPerPixel
		e.img.Pix[pi] = uint8(acc[i*3]/n + 0.5)
		e.img.Pix[pi+1] = uint8(acc[i*3+1]/n + 0.5)
		e.img.Pix[pi+2] = uint8(acc[i*3+2]/n + 0.5)
		e.img.Pix[pi+3] = 255
		mask.Pix[pi+3] = 0
	}
}
