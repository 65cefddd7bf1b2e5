package lineart

// admitState is the auxiliary scratch buffer used during a single
// admissibility check (§3, §9): bit 0 marks a candidate pixel, bits 1-4
// mark a direction as already traced during this check. It is allocated
// fresh per call and discarded when the call returns, so — unlike the
// reference algorithm's mask-byte bit-packing — there is nothing to clear
// on any exit path; the "scratch bits never escape" invariant holds by
// construction.
type admitState struct {
	width, height int
	flags         []byte
}

const admitCandidateBit byte = 1 << 0

func tracedBit(d Direction) byte { return 1 << (1 + uint(d)) }

func newAdmitState(width, height int) *admitState {
	return &admitState{width: width, height: height, flags: make([]byte, width*height)}
}

func (s *admitState) index(x, y int) int { return y*s.width + x }

func (s *admitState) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func (s *admitState) candidate(x, y int) bool {
	return s.inBounds(x, y) && s.flags[s.index(x, y)]&admitCandidateBit != 0
}

func (s *admitState) setCandidate(x, y int) {
	if s.inBounds(x, y) {
		s.flags[s.index(x, y)] |= admitCandidateBit
	}
}

func (s *admitState) traced(x, y int, d Direction) bool {
	return s.inBounds(x, y) && s.flags[s.index(x, y)]&tracedBit(d) != 0
}

func (s *admitState) setTraced(x, y int, d Direction) {
	if s.inBounds(x, y) {
		s.flags[s.index(x, y)] |= tracedBit(d)
	}
}

// admissibilityCap bounds a single border trace at 2*(minimum_size+1)
// edgels (§4.3 step 2).
func admissibilityCap() int { return 2 * (minimumSize + 1) }

// traceBorder walks the border starting at the oriented edge (x, y, d)
// using the candidate-augmented stroke test, accumulating the signed area
// enclosed (x-1 for every West edgel, -x for every East edgel, per §4.3
// step 3) until it closes back on its starting edge. It returns -1 if the
// trace exceeds admissibilityCap() steps (treated as "large enough" by the
// caller), or if it revisits an already-traced oriented edge (a retrace,
// treated identically — see DESIGN.md for why these two conditions share a
// sentinel).
func traceBorder(stroke strokeFunc, admit *admitState, startX, startY int, startDir Direction) int {
	maxSteps := admissibilityCap()
	x, y, d := startX, startY, startDir
	area := 0

	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			return -1
		}
		if admit.traced(x, y, d) {
			return -1
		}
		admit.setTraced(x, y, d)

		switch d {
		case DirWest:
			area += x - 1
		case DirEast:
			area -= x
		}

		nx, ny, nd := nextEdgel(stroke, x, y, d)
		if nx == startX && ny == startY && nd == startDir {
			return area
		}
		x, y, d = nx, ny, nd
	}
}

// checkAdmissibility runs the §4.3 admissibility algorithm for a candidate
// pixel sequence against mask: it rejects sequences that would enclose a
// medium-sized background region (area in [significant_size,
// minimum_size)), and collects fill seeds for any micro-regions (area in
// (0, significant_size)) found along the way.
func checkAdmissibility(mask *Mask, seq []point, cancel *CancelToken) (admissible bool, fillSeeds []point) {
	admit := newAdmitState(mask.Width, mask.Height)
	for _, p := range seq {
		admit.setCandidate(p.X, p.Y)
	}
	stroke := func(x, y int) bool {
		if x < 0 || y < 0 || x >= mask.Width || y >= mask.Height {
			return false
		}
		return mask.Stroke(x, y) || admit.candidate(x, y)
	}

	admissible = true
	for _, p := range seq {
		if cancel.Cancelled() {
			return false, nil
		}
		for d := Direction(0); d < 4; d++ {
			nx, ny := p.X+deltaX[d], p.Y+deltaY[d]
			if stroke(nx, ny) {
				continue
			}
			if admit.traced(p.X, p.Y, d) {
				continue
			}
			area := traceBorder(stroke, admit, p.X, p.Y, d)
			if area < 0 {
				continue
			}
			if area >= significantSize && area < minimumSize {
				return false, nil
			}
			if area > 0 && area < significantSize {
				fillSeeds = append(fillSeeds, point{nx, ny})
			}
		}
	}
	return admissible, fillSeeds
}
