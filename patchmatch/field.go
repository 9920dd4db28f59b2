package patchmatch

// field is the nearest-neighbor field: for every pixel, the coordinate of
// the source patch currently explaining it and the error of that match.
// Unmasked pixels hold the identity entry (themselves, error 0) for the
// whole run; only hole pixels are ever reassigned.
type field struct {
	w, h int
	srcX []int32
	srcY []int32
	dist []float64
}

func newField(w, h int) *field {
	n := w * h
	return &field{
		w:    w,
		h:    h,
		srcX: make([]int32, n),
		srcY: make([]int32, n),
		dist: make([]float64, n),
	}
}

// seed builds the initial field. Unmasked pixels get the identity entry.
// Each hole pixel draws one source uniformly from the valid list and is
// painted with that source's RGB immediately, alpha forced opaque. Starting
// errors are scored in a second sweep, after every hole pixel has been
// painted, so each seed is measured against the fully seeded buffer rather
// than a half-initialized one.
func (e *engine) seed() {
	w, h := e.reg.w, e.reg.h

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !e.reg.masked[i] {
				e.nnf.srcX[i] = int32(x)
				e.nnf.srcY[i] = int32(y)
				e.nnf.dist[i] = 0
				continue
			}
			v := e.reg.valid[e.rng.Intn(len(e.reg.valid))]
			sx, sy := int(v)%w, int(v)/w
			e.nnf.srcX[i] = int32(sx)
			e.nnf.srcY[i] = int32(sy)
			e.paint(x, y, sx, sy)
		}
	}

	for i, m := range e.reg.masked {
		if m {
			x, y := i%w, i/w
			e.nnf.dist[i] = e.patchDist(x, y, int(e.nnf.srcX[i]), int(e.nnf.srcY[i]))
		}
	}
}

// paint copies the source pixel's RGB onto (dx, dy) in the working buffer
// and forces the alpha sample opaque.
func (e *engine) paint(dx, dy, sx, sy int) {
	di := e.img.PixOffset(dx, dy)
	si := e.img.PixOffset(sx, sy)
	e.img.Pix[di] = e.img.Pix[si]
	e.img.Pix[di+1] = e.img.Pix[si+1]
	e.img.Pix[di+2] = e.img.Pix[si+2]
	e.img.Pix[di+3] = 255
}
