package lineart

// fillMicroRegions grows each seed pixel recorded by admissibility checks
// into a full 4-connected stroke fill, using an explicit worklist instead
// of recursion (§9). Seeds that land on an already-stroke pixel (e.g. two
// closures recorded the same seed) are silently skipped.
func fillMicroRegions(mask *Mask, seeds []point, cancel *CancelToken) {
	if len(seeds) == 0 {
		return
	}
	var work []point
	for _, s := range seeds {
		if !mask.InBounds(s.X, s.Y) || mask.Stroke(s.X, s.Y) {
			continue
		}
		mask.SetStroke(s.X, s.Y, true)
		work = append(work, s)
	}

	for len(work) > 0 {
		if cancel.Cancelled() {
			return
		}
		p := work[len(work)-1]
		work = work[:len(work)-1]

		for _, n := range neighbors4 {
			nx, ny := p.X+n.X, p.Y+n.Y
			if !mask.InBounds(nx, ny) || mask.Stroke(nx, ny) {
				continue
			}
			mask.SetStroke(nx, ny, true)
			work = append(work, point{nx, ny})
		}
	}
}

var neighbors4 = [4]point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
