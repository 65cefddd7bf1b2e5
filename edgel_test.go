package lineart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEdgelSet_NextPreviousRoundTrip(t *testing.T) {
	assert := assert.New(t)

	mask := NewMask(10, 10)
	for _, p := range rectOutline(2, 2, 7, 7) {
		mask.SetStroke(p.X, p.Y, true)
	}
	stroke := func(x, y int) bool { return mask.Stroke(x, y) }

	set := BuildEdgelSet(10, 10, stroke, NewCancelToken())
	assert.NotEmpty(set.Edgels)

	for i, e := range set.Edgels {
		assert.GreaterOrEqual(e.Next, 0, "every edgel on a closed border must have a successor")
		assert.Equal(i, set.Edgels[e.Next].Previous, "edgels[edgels[e].next].previous must equal e")
	}
}

func TestBuildEdgelSet_DegenerateBoundsIsEmpty(t *testing.T) {
	assert := assert.New(t)

	stroke := func(x, y int) bool { return true }
	assert.Empty(BuildEdgelSet(1, 10, stroke, NewCancelToken()).Edgels)
	assert.Empty(BuildEdgelSet(10, 1, stroke, NewCancelToken()).Edgels)
	assert.Empty(BuildEdgelSet(0, 0, stroke, NewCancelToken()).Edgels)
}

func TestBuildEdgelSet_CancelledYieldsEmpty(t *testing.T) {
	assert := assert.New(t)

	mask := NewMask(10, 10)
	for _, p := range rectOutline(2, 2, 7, 7) {
		mask.SetStroke(p.X, p.Y, true)
	}
	stroke := func(x, y int) bool { return mask.Stroke(x, y) }

	cancel := NewCancelToken()
	cancel.Cancel()
	assert.Empty(BuildEdgelSet(10, 10, stroke, cancel).Edgels)
}

// TestNextEdgel_DiagonalOnlyPinchTurnsIntoTheDiagonal covers a diagonal-only
// pinch: two stroke pixels touching only at a corner, with neither of the
// two orthogonal neighbors between them set. The border tracer must take
// the diagonal move (checked first, unconditionally) rather than turning in
// place, matching the reference tracer's diagonal-first priority.
func TestNextEdgel_DiagonalOnlyPinchTurnsIntoTheDiagonal(t *testing.T) {
	assert := assert.New(t)

	stroke := func(x, y int) bool {
		return (x == 0 && y == 0) || (x == 1 && y == 1)
	}

	nx, ny, nd := nextEdgel(stroke, 0, 0, DirEast)
	assert.Equal(1, nx)
	assert.Equal(1, ny)
	assert.Equal(DirNorth, nd, "the diagonal-only pinch must turn into the diagonal pixel, not in place")
}

// TestNextEdgel_BothOrthogonalAndDiagonalStillTurnsIntoTheDiagonal covers
// the case where both the orthogonal and the diagonal neighbor are stroke:
// the tracer must still turn into the diagonal (it is checked first and
// unconditionally), matching the reference tracer.
func TestNextEdgel_BothOrthogonalAndDiagonalStillTurnsIntoTheDiagonal(t *testing.T) {
	assert := assert.New(t)

	stroke := func(x, y int) bool {
		return (x == 0 && y == 0) || (x == 0 && y == 1) || (x == 1 && y == 1)
	}

	nx, ny, nd := nextEdgel(stroke, 0, 0, DirEast)
	assert.Equal(1, nx)
	assert.Equal(1, ny)
	assert.Equal(DirNorth, nd)
}

// TestNextEdgel_NeitherNeighborStrokeTurnsRight covers the plain convex
// corner case: neither the orthogonal nor the diagonal neighbor is stroke,
// so the tracer turns right in place.
func TestNextEdgel_NeitherNeighborStrokeTurnsRight(t *testing.T) {
	assert := assert.New(t)

	stroke := func(x, y int) bool { return x == 0 && y == 0 }

	nx, ny, nd := nextEdgel(stroke, 0, 0, DirEast)
	assert.Equal(0, nx)
	assert.Equal(0, ny)
	assert.Equal(DirSouth, nd)
}
