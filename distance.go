package lineart

import "math"

const distInf = 1e20

// distanceField1D computes the squared Euclidean distance transform of a
// single row/column of samples using the lower-envelope-of-parabolas
// algorithm (Felzenszwalt & Huttenlocher): each sample f[x] seeds a
// parabola (x - v)^2 + f[v], and the transform at x is the minimum over
// all parabolas evaluated there. Linear time in the length of f.
func distanceField1D(f []float64) []float64 {
	n := len(f)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	v := make([]int, n)     // locations of parabolas in lower envelope
	z := make([]float64, n+1) // boundaries between parabolas
	k := 0
	v[0] = 0
	z[0] = -distInf
	z[1] = distInf

	for q := 1; q < n; q++ {
		s := 0.0
		for {
			vk := v[k]
			s = ((f[q] + float64(q*q)) - (f[vk] + float64(vk*vk))) / float64(2*q-2*vk)
			if s > z[k] {
				break
			}
			k--
			if k < 0 {
				k = 0
				break
			}
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = distInf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dx := float64(q - v[k])
		out[q] = dx*dx + f[v[k]]
	}
	return out
}

// distanceTransform computes the Euclidean distance from every pixel of a
// width x height grid to the nearest pixel for which isTarget returns
// true, via two 1D passes (columns then rows), per §4.1 stage 9.
//
// No equivalent of this pass was found in the retrieved reference material
// (see DESIGN.md); it is implemented directly from the textbook two-pass
// parabolic-envelope algorithm, since the transform itself has no
// domain-specific shape to imitate.
func distanceTransform(width, height int, isTarget func(x, y int) bool, cancel *CancelToken) *DistanceMap {
	out := NewDistanceMap(width, height)
	if width == 0 || height == 0 {
		return out
	}

	sq := make([]float64, width*height)
	col := make([]float64, height)
	for x := 0; x < width; x++ {
		if cancel.Cancelled() {
			return out
		}
		for y := 0; y < height; y++ {
			if isTarget(x, y) {
				col[y] = 0
			} else {
				col[y] = distInf
			}
		}
		transformed := distanceField1D(col)
		for y := 0; y < height; y++ {
			sq[y*width+x] = transformed[y]
		}
	}

	row := make([]float64, width)
	for y := 0; y < height; y++ {
		if cancel.Cancelled() {
			return out
		}
		copy(row, sq[y*width:y*width+width])
		transformed := distanceField1D(row)
		for x := 0; x < width; x++ {
			out.Values[y*width+x] = float32(math.Sqrt(transformed[x]))
		}
	}
	return out
}
