package lineart

// point is a pixel coordinate, reused across the pipeline's various
// worklists (flood fills, ray walks, fill-overflow queue entries).
type point struct{ X, Y int }

var neighbors8 = [8]point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// denoise removes 8-connected stroke components smaller than
// minimalLineArtArea, via an iterative (explicit-stack) flood fill per
// unvisited stroke pixel (§4.1 stage 2).
func denoise(mask *Mask, cancel *CancelToken) {
	visited := make([]bool, len(mask.Pix))
	var stack []point
	var component []point

	for y := 0; y < mask.Height; y++ {
		if cancel.Cancelled() {
			return
		}
		for x := 0; x < mask.Width; x++ {
			i := mask.index(x, y)
			if visited[i] || !mask.Stroke(x, y) {
				continue
			}

			component = component[:0]
			stack = append(stack[:0], point{x, y})
			visited[i] = true

			for len(stack) > 0 {
				if cancel.Cancelled() {
					return
				}
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				component = append(component, p)

				for _, n := range neighbors8 {
					nx, ny := p.X+n.X, p.Y+n.Y
					if !mask.InBounds(nx, ny) {
						continue
					}
					ni := mask.index(nx, ny)
					if visited[ni] || !mask.Stroke(nx, ny) {
						continue
					}
					visited[ni] = true
					stack = append(stack, point{nx, ny})
				}
			}

			if len(component) < minimalLineArtArea {
				for _, p := range component {
					mask.SetStroke(p.X, p.Y, false)
				}
			}
		}
	}
}
