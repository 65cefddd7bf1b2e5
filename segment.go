package lineart

import "math"

// rasterizeSegment casts a straight ray from p along its own per-pixel
// normal, up to segmentMaxLength pixels, per §4.1 stage 7: once the walk
// has left the stroke it started on, the first pixel that re-enters a
// stroke becomes the endpoint and the walk stops. If the ray never
// re-enters a stroke within the budget, the returned sequence covers the
// whole ray and the caller's admissibility/transition checks will reject
// it (a ray that never returns to a stroke cannot have exactly 2
// transitions).
func rasterizeSegment(p Keypoint, fields *PixelFields, mask *Mask, segmentMaxLength int) []point {
	nx, ny := pixelNormal(fields, p.X, p.Y)
	if nx == 0 && ny == 0 {
		return []point{{p.X, p.Y}}
	}

	out := []point{{p.X, p.Y}}
	left := false
	lastX, lastY := p.X, p.Y

	for step := 1; step <= segmentMaxLength; step++ {
		fx := float64(p.X) + nx*float64(step)
		fy := float64(p.Y) + ny*float64(step)
		ix, iy := int(math.Round(fx)), int(math.Round(fy))
		if ix == lastX && iy == lastY {
			continue
		}
		out = append(out, point{ix, iy})
		lastX, lastY = ix, iy

		stroke := mask.Stroke(ix, iy)
		if !left {
			if !stroke {
				left = true
			}
			continue
		}
		if stroke {
			return out
		}
	}
	return out
}
