package lineart

import "math"

// splineCandidate is a pair of keypoints with a quality score (§3). i and
// j are indices into the keypoint slice that produced the candidate list.
type splineCandidate struct {
	i, j    int
	quality float64
}

var cosSplineMaxAngle = math.Cos(splineMaxAngleDeg * math.Pi / 180.0)

// findSplineCandidates evaluates every unordered pair of distinct
// keypoints within splineMaxLength of each other and returns the
// positive-quality ones sorted by descending quality, ties broken by
// insertion (scan) order, per §4.1 stage 6 and §4.3's ordering rule.
func findSplineCandidates(keypoints []Keypoint, fields *PixelFields, splineMaxLength float64, cancel *CancelToken) []splineCandidate {
	var candidates []splineCandidate

	for i := 0; i < len(keypoints); i++ {
		if cancel.Cancelled() {
			return candidates
		}
		p1 := keypoints[i]
		n1x, n1y := pixelNormal(fields, p1.X, p1.Y)

		for j := i + 1; j < len(keypoints); j++ {
			p2 := keypoints[j]
			dx, dy := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
			distance := math.Hypot(dx, dy)
			if distance == 0 || distance > splineMaxLength {
				continue
			}
			n2x, n2y := pixelNormal(fields, p2.X, p2.Y)

			cosN := n1x*(-n2x) + n1y*(-n2y)

			qA := 1 - distance/splineMaxLength
			if qA < 0 {
				qA = 0
			}
			qB := (n1x*dx + n1y*dy - (n2x*dx + n2y*dy)) / distance
			if qB < 0 {
				qB = 0
			}
			qC := cosN - cosSplineMaxAngle
			if qC < 0 {
				qC = 0
			}
			quality := qA * qB * qC
			if quality <= 0 {
				continue
			}
			candidates = insertCandidate(candidates, splineCandidate{i: i, j: j, quality: quality})
		}
	}
	return candidates
}

// insertCandidate inserts c into a descending-quality-ordered slice,
// keeping insertion order among ties (stable), realizing the sorted
// singly-linked list of §4.3 with a slice instead.
func insertCandidate(list []splineCandidate, c splineCandidate) []splineCandidate {
	pos := len(list)
	for i, existing := range list {
		if c.quality > existing.quality {
			pos = i
			break
		}
	}
	list = append(list, splineCandidate{})
	copy(list[pos+1:], list[pos:])
	list[pos] = c
	return list
}

func pixelNormal(fields *PixelFields, x, y int) (nx, ny float64) {
	i := y*fields.Width + x
	return fields.NX[i], fields.NY[i]
}

// rasterizeHermite samples the cubic Hermite spline from p1 to p2 with
// end-tangents distance*splineRoundness*n(p1) and distance*splineRoundness*
// (-n(p2)) — the latter negated so both tangents point across the gap —
// at an adaptive step small enough that consecutive samples stay within
// about 0.75 pixel of each other along the dominant axis, dropping
// duplicate consecutive pixels and appending the exact terminal point if
// rasterization didn't already land on it (§4.1 stage 6, §4.3 Discrete
// spline rasterization).
func rasterizeHermite(p1, p2 Keypoint, fields *PixelFields) []point {
	x0, y0 := float64(p1.X), float64(p1.Y)
	x1, y1 := float64(p2.X), float64(p2.Y)
	dx, dy := x1-x0, y1-y0
	distance := math.Hypot(dx, dy)
	if distance == 0 {
		return []point{{p1.X, p1.Y}}
	}

	n1x, n1y := pixelNormal(fields, p1.X, p1.Y)
	n2x, n2y := pixelNormal(fields, p2.X, p2.Y)

	t0x, t0y := distance*splineRoundness*n1x, distance*splineRoundness*n1y
	t1x, t1y := distance*splineRoundness*(-n2x), distance*splineRoundness*(-n2y)

	maxAbs := math.Max(math.Abs(dx), math.Abs(dy))
	if maxAbs < 1 {
		maxAbs = 1
	}
	step := math.Min(1.0/maxAbs, 0.75/maxAbs)

	var out []point
	var lastX, lastY int = math.MaxInt32, math.MaxInt32

	for t := 0.0; t <= 1.0; t += step {
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2

		px := h00*x0 + h10*t0x + h01*x1 + h11*t1x
		py := h00*y0 + h10*t0y + h01*y1 + h11*t1y

		ix, iy := int(math.Round(px)), int(math.Round(py))
		if ix == lastX && iy == lastY {
			continue
		}
		out = append(out, point{ix, iy})
		lastX, lastY = ix, iy
	}

	if len(out) == 0 || out[len(out)-1].X != p2.X || out[len(out)-1].Y != p2.Y {
		out = append(out, point{p2.X, p2.Y})
	}
	return out
}

// countTransitions counts 0->1 and 1->0 transitions of mask.Stroke along
// seq (§4.1 stage 6). allow_self_intersections is fixed true per spec, so
// this always runs against the original mask snapshot passed in, never a
// mutated working copy.
func countTransitions(mask *Mask, seq []point) int {
	transitions := 0
	prev := mask.Stroke(seq[0].X, seq[0].Y)
	for _, p := range seq[1:] {
		cur := mask.Stroke(p.X, p.Y)
		if cur != prev {
			transitions++
		}
		prev = cur
	}
	return transitions
}
