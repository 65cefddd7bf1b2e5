package lineart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// notchMask builds a 6x2 closed mask with a vertical stroke at x=3 (so
// dist(x,y) = |x-3|), a seed mask that fully covers row 0 up to the
// stroke but leaves x=1 and x=2 of row 1 unselected, and its distance
// map. This is the concave-pocket shape C5 exists to patch: row 1's
// unselected pixels are reachable only through the selected row above
// them, not by crossing the stroke.
func notchMask() (closed *Mask, dist *DistanceMap, seed *Mask) {
	closed = NewMask(6, 2)
	closed.SetStroke(3, 0, true)
	closed.SetStroke(3, 1, true)
	dist = distanceTransform(6, 2, func(x, y int) bool { return closed.Stroke(x, y) }, NewCancelToken())

	seed = NewMask(6, 2)
	seed.SetStroke(0, 0, true)
	seed.SetStroke(1, 0, true)
	seed.SetStroke(2, 0, true)
	seed.SetStroke(0, 1, true)
	return closed, dist, seed
}

func TestOverflow_PatchesPocketOneLevelAtATime(t *testing.T) {
	assert := assert.New(t)

	closed, dist, seed := notchMask()
	grown := Overflow(closed, dist, seed, 1)

	assert.True(grown.Stroke(2, 1), "the pocket pixel immediately adjacent to the selected row must be patched at level 1")
	assert.False(grown.Stroke(1, 1), "a pocket pixel two levels deep must not be reached when maxGrow=1")
	for x := 4; x < 6; x++ {
		assert.False(grown.Stroke(x, 0), "overflow must never cross the stroke at x=3")
		assert.False(grown.Stroke(x, 1), "overflow must never cross the stroke at x=3")
	}
}

func TestOverflow_GrowsAnotherLevelWhenMaxGrowAllows(t *testing.T) {
	assert := assert.New(t)

	closed, dist, seed := notchMask()
	grown := Overflow(closed, dist, seed, 2)

	assert.True(grown.Stroke(2, 1))
	assert.True(grown.Stroke(1, 1), "with maxGrow=2 the pocket pixel two levels deep must be reached")
	for x := 4; x < 6; x++ {
		assert.False(grown.Stroke(x, 0))
		assert.False(grown.Stroke(x, 1))
	}
}

func TestOverflow_NeverSelectsTheStrokeItself(t *testing.T) {
	assert := assert.New(t)

	closed, dist, seed := notchMask()
	grown := Overflow(closed, dist, seed, 100)

	assert.False(grown.Stroke(3, 0))
	assert.False(grown.Stroke(3, 1))
}

func TestOverflow_SeedAlwaysIncluded(t *testing.T) {
	assert := assert.New(t)

	closed, dist, seed := notchMask()
	grown := Overflow(closed, dist, seed, 1)

	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			if seed.Stroke(x, y) {
				assert.True(grown.Stroke(x, y))
			}
		}
	}
}
