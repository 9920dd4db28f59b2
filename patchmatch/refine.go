package patchmatch

// refine runs the configured number of full-image passes. Even-indexed
// passes scan top-left to bottom-right, odd-indexed passes scan
// bottom-right to top-left. The alternation lets good matches propagate
// in both directions and must not be reordered: each pixel relies on
// neighbors already updated within the same pass.
func (e *engine) refine(iterations int) {
	for it := 0; it < iterations; it++ {
		if it%2 == 0 {
			e.passForward()
		} else {
			e.passReverse()
		}
	}
}

func (e *engine) passForward() {
	for y := 0; y < e.reg.h; y++ {
		row := y * e.reg.w
		for x := 0; x < e.reg.w; x++ {
			if e.reg.masked[row+x] {
				e.improve(x, y, -1)
			}
		}
	}
}

func (e *engine) passReverse() {
	for y := e.reg.h - 1; y >= 0; y-- {
		row := y * e.reg.w
		for x := e.reg.w - 1; x >= 0; x-- {
			if e.reg.masked[row+x] {
				e.improve(x, y, 1)
			}
		}
	}
}

// improve updates one hole pixel: propagation from the two trailing
// neighbors of the current scan direction, then exponential random search,
// then a greedy commit of the winner into both the field and the working
// buffer. Later pixels in the same pass see the committed color.
func (e *engine) improve(x, y, dir int) {
	i := y*e.reg.w + x
	bestX := int(e.nnf.srcX[i])
	bestY := int(e.nnf.srcY[i])
	bestD := e.nnf.dist[i]

	// Propagation: shift each trailing neighbor's source by the offset
	// separating this pixel from that neighbor.
	for _, delta := range [2][2]int{{dir, 0}, {0, dir}} {
		nx, ny := x+delta[0], y+delta[1]
		if !e.reg.inBounds(nx, ny) {
			continue
		}
		ni := ny*e.reg.w + nx
		cx := int(e.nnf.srcX[ni]) - delta[0]
		cy := int(e.nnf.srcY[ni]) - delta[1]
		if d, ok := e.consider(x, y, cx, cy, bestD); ok {
			bestX, bestY, bestD = cx, cy, d
		}
	}

	// Random search: exponentially shrinking window centered on the
	// current best source, not on the target pixel.
	for radius := max(e.reg.w, e.reg.h); radius > 1; radius /= 2 {
		cx := bestX + e.rng.Intn(2*radius+1) - radius
		cy := bestY + e.rng.Intn(2*radius+1) - radius
		if d, ok := e.consider(x, y, cx, cy, bestD); ok {
			bestX, bestY, bestD = cx, cy, d
		}
	}

	e.nnf.srcX[i] = int32(bestX)
	e.nnf.srcY[i] = int32(bestY)
	e.nnf.dist[i] = bestD
	e.paint(x, y, bestX, bestY)
}

// consider scores one candidate source for (x, y) and reports whether it
// strictly beats bestD. Candidates outside the image or inside the original
// hole never qualify.
func (e *engine) consider(x, y, cx, cy int, bestD float64) (float64, bool) {
	if !e.reg.inBounds(cx, cy) {
		return 0, false
	}
	if e.reg.masked[cy*e.reg.w+cx] {
		return 0, false
	}
	d := e.patchDist(x, y, cx, cy)
	if d < bestD {
		return d, true
	}
	return 0, false
}
