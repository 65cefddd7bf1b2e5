package lineart

// Keypoint is a representative pixel of a connected component of high
// curvature (§3). Its Uses field is not read by the pipeline: spline
// closure (§4.1 stage 6) keeps its own per-keypoint usage counts.
type Keypoint struct {
	X, Y int
	Uses int
}

// extractKeypoints collapses each 8-connected component of the "high
// curvature" field into a single representative pixel: the maximum
// smoothed-curvature pixel in the component, falling back to the maximum
// raw-curvature pixel if every smoothed value in the component is zero
// (§4.1 stage 5).
func extractKeypoints(fields *PixelFields, high []float64, cancel *CancelToken) []Keypoint {
	w, h := fields.Width, fields.Height
	visited := make([]bool, w*h)
	var keypoints []Keypoint
	var stack []point

	for y := 0; y < h; y++ {
		if cancel.Cancelled() {
			return keypoints
		}
		for x := 0; x < w; x++ {
			i := y*w + x
			if visited[i] || high[i] == 0 {
				continue
			}

			visited[i] = true
			stack = append(stack[:0], point{x, y})

			bestSmoothX, bestSmoothY, bestSmooth := x, y, fields.SmoothCurvature[i]
			bestRawX, bestRawY, bestRaw := x, y, fields.RawCurvature[i]

			for len(stack) > 0 {
				if cancel.Cancelled() {
					return keypoints
				}
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				pi := p.Y*w + p.X
				if fields.SmoothCurvature[pi] > bestSmooth {
					bestSmooth, bestSmoothX, bestSmoothY = fields.SmoothCurvature[pi], p.X, p.Y
				}
				if fields.RawCurvature[pi] > bestRaw {
					bestRaw, bestRawX, bestRawY = fields.RawCurvature[pi], p.X, p.Y
				}

				for _, n := range neighbors8 {
					nx, ny := p.X+n.X, p.Y+n.Y
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] || high[ni] == 0 {
						continue
					}
					visited[ni] = true
					stack = append(stack, point{nx, ny})
				}
			}

			if bestSmooth > 0 {
				keypoints = append(keypoints, Keypoint{X: bestSmoothX, Y: bestSmoothY})
			} else {
				keypoints = append(keypoints, Keypoint{X: bestRawX, Y: bestRawY})
			}
		}
	}
	return keypoints
}
