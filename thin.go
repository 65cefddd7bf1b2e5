package lineart

import "math"

// thinCurvature produces a binary "high curvature" field: 1.0 where
// either the smoothed or raw curvature clears its threshold, 0.0
// elsewhere (§4.1 stage 4).
func thinCurvature(fields *PixelFields, radii []float64, cancel *CancelToken) []float64 {
	high := make([]float64, len(fields.RawCurvature))
	rawFloor := math.Max(0.25, 1-endPointRate)

	for y := 0; y < fields.Height; y++ {
		if cancel.Cancelled() {
			return high
		}
		for x := 0; x < fields.Width; x++ {
			i := y*fields.Width + x
			radius := math.Max(1, radii[i])
			smoothThresh := (1 - endPointRate) / radius
			if fields.SmoothCurvature[i] >= smoothThresh || fields.RawCurvature[i] >= rawFloor {
				high[i] = 1.0
			}
		}
	}
	return high
}
