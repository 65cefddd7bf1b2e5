package lineart

import "math"

// PixelFields holds the per-pixel outputs of C1 stage 3: a unit normal
// field and raw/smoothed curvature fields (§3).
type PixelFields struct {
	Width, Height   int
	NX, NY          []float64
	RawCurvature    []float64
	SmoothCurvature []float64
}

// NewPixelFields allocates zeroed per-pixel fields.
func NewPixelFields(width, height int) *PixelFields {
	n := width * height
	return &PixelFields{
		Width: width, Height: height,
		NX: make([]float64, n), NY: make([]float64, n),
		RawCurvature: make([]float64, n), SmoothCurvature: make([]float64, n),
	}
}

func (f *PixelFields) index(x, y int) int { return y*f.Width + x }

// smoothNormals walks each edgel's chain (via Next/Previous) and replaces
// its normal with a Gaussian-weighted average over a half-width of
// normalEstimateMaskSize edgels, renormalized via atan2/cos/sin rather than
// plain length-normalization, per §9's floating-point determinism note.
// Walking early-terminates in either direction if it loops back on itself,
// which signals a chain shorter than the kernel (§4.2 Smoothing).
func smoothNormals(set *EdgelSet, cancel *CancelToken) {
	halfWidth := normalEstimateMaskSize
	sigma := float64(halfWidth) * 0.775
	twoSigma2 := 2 * sigma * sigma

	smoothed := make([][2]float64, len(set.Edgels))
	for i := range set.Edgels {
		if cancel.Cancelled() {
			return
		}
		e := &set.Edgels[i]
		var sx, sy, wsum float64

		add := func(idx int, weight float64) {
			sx += weight * set.Edgels[idx].NX
			sy += weight * set.Edgels[idx].NY
			wsum += weight
		}
		add(i, 1.0)

		fwd, back := i, i
		fwdDone, backDone := false, false
		for step := 1; step <= halfWidth && !(fwdDone && backDone); step++ {
			weight := math.Exp(-float64(step*step) / twoSigma2)

			if !fwdDone {
				if n := set.Edgels[fwd].Next; n >= 0 && n != back {
					fwd = n
					add(fwd, weight)
				} else {
					fwdDone = true
				}
			}
			if !backDone {
				if p := set.Edgels[back].Previous; p >= 0 && p != fwd {
					back = p
					add(back, weight)
				} else {
					backDone = true
				}
			}
		}

		if wsum == 0 {
			smoothed[i] = [2]float64{e.NX, e.NY}
			continue
		}
		angle := math.Atan2(sy, sx)
		smoothed[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}

	for i := range set.Edgels {
		set.Edgels[i].NX = smoothed[i][0]
		set.Edgels[i].NY = smoothed[i][1]
	}
}

// computeCurvature fills Edgel.Curvature with the signed magnitude of the
// half-difference of each edgel's neighbor normals (§4.2 Curvature).
func computeCurvature(set *EdgelSet, cancel *CancelToken) {
	for i := range set.Edgels {
		if cancel.Cancelled() {
			return
		}
		e := &set.Edgels[i]
		if e.Next < 0 || e.Previous < 0 {
			continue
		}
		a := set.Edgels[e.Previous]
		b := set.Edgels[e.Next]
		dx := (b.NX - a.NX) / 2
		dy := (b.NY - a.NY) / 2
		magnitude := math.Hypot(dx, dy)
		cross := a.NX*b.NY - a.NY*b.NX
		if cross < 0 {
			magnitude = -magnitude
		}
		e.Curvature = magnitude
	}
}

// smoothChainCurvature runs a fixed 9-tap Gaussian (sigma^2 = 30) over the
// absolute curvature along each edgel's chain, producing a chain-smoothed
// magnitude used by the thinning test (§4.1 stage 3, last bullet).
func smoothChainCurvature(set *EdgelSet, cancel *CancelToken) {
	out := make([]float64, len(set.Edgels))
	for i := range set.Edgels {
		if cancel.Cancelled() {
			return
		}
		e := &set.Edgels[i]
		sum := math.Abs(e.Curvature)
		wsum := 1.0

		fwd, back := i, i
		fwdDone, backDone := false, false
		for step := 1; step <= smoothCurvatureHalfTap && !(fwdDone && backDone); step++ {
			weight := math.Exp(-float64(step*step) / smoothCurvatureSigma2)

			if !fwdDone {
				if n := set.Edgels[fwd].Next; n >= 0 && n != back {
					fwd = n
					sum += weight * math.Abs(set.Edgels[fwd].Curvature)
					wsum += weight
				} else {
					fwdDone = true
				}
			}
			if !backDone {
				if p := set.Edgels[back].Previous; p >= 0 && p != fwd {
					back = p
					sum += weight * math.Abs(set.Edgels[back].Curvature)
					wsum += weight
				} else {
					backDone = true
				}
			}
		}
		out[i] = sum / wsum
	}
	for i := range set.Edgels {
		set.Edgels[i].SmoothCurvature = out[i]
	}
}

// projectToPixels accumulates the edgel-level normal/curvature results
// onto per-pixel fields (§4.1 stage 3, bullets 3-4): raw curvature is the
// zero-clamped max over incident edgels; the normal field is the weighted
// (by curvature^2) accumulation renormalized via atan2; the smoothed
// curvature is the max of each incident edgel's chain-smoothed value.
func projectToPixels(set *EdgelSet, width, height int, cancel *CancelToken) *PixelFields {
	fields := NewPixelFields(width, height)
	accumNX := make([]float64, width*height)
	accumNY := make([]float64, width*height)

	for _, e := range set.Edgels {
		if cancel.Cancelled() {
			return fields
		}
		i := fields.index(e.X, e.Y)
		raw := e.Curvature
		if raw < 0 {
			raw = 0
		}
		if raw > fields.RawCurvature[i] {
			fields.RawCurvature[i] = raw
		}
		if e.SmoothCurvature > fields.SmoothCurvature[i] {
			fields.SmoothCurvature[i] = e.SmoothCurvature
		}
		weight := e.Curvature * e.Curvature
		accumNX[i] += weight * e.NX
		accumNY[i] += weight * e.NY
	}

	for i := range fields.NX {
		if accumNX[i] == 0 && accumNY[i] == 0 {
			continue
		}
		angle := math.Atan2(accumNY[i], accumNX[i])
		fields.NX[i] = math.Cos(angle)
		fields.NY[i] = math.Sin(angle)
	}
	return fields
}
