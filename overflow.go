package lineart

// fillQueueEntry is one pixel waiting to be grown in the §4.5 fill-overflow
// pass, carrying the grow level it was enqueued at.
type fillQueueEntry struct {
	point
	level int
}

// Overflow grows seedMask (1 = user-selected reachable background, 0
// elsewhere) outward by up to maxGrow levels, using closed and dist to stay
// on one bank of each stroke: a pixel is only grown into from a neighbor
// with a strictly smaller distance-to-stroke value, which pins growth
// against crossing a ridge (§4.5).
func Overflow(closed *Mask, dist *DistanceMap, seedMask *Mask, maxGrow int) *Mask {
	width, height := closed.Width, closed.Height
	grown := NewMask(width, height)

	var queue []fillQueueEntry
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if seedMask.Stroke(x, y) || dist.At(x, y) != 1.0 {
				continue
			}
			if hasSelectedNeighbor(seedMask, x, y) {
				queue = append(queue, fillQueueEntry{point: point{x, y}, level: 1})
			}
		}
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if grown.Stroke(e.X, e.Y) {
			continue
		}
		grown.SetStroke(e.X, e.Y, true)

		if e.level == maxGrow {
			continue
		}

		d := dist.At(e.X, e.Y)
		for _, n := range neighbors8 {
			nx, ny := e.X+n.X, e.Y+n.Y
			if !grown.InBounds(nx, ny) || grown.Stroke(nx, ny) {
				continue
			}
			if dist.At(nx, ny) > d {
				queue = append(queue, fillQueueEntry{point: point{nx, ny}, level: e.level + 1})
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if seedMask.Stroke(x, y) {
				grown.SetStroke(x, y, true)
			}
		}
	}
	return grown
}

func hasSelectedNeighbor(seedMask *Mask, x, y int) bool {
	for _, n := range neighbors8 {
		if seedMask.Stroke(x+n.X, y+n.Y) {
			return true
		}
	}
	return false
}
