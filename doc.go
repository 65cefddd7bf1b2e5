/*
Package lineart closes small gaps in hand-drawn or scanned line art so that
a flood-fill based "smart coloring" tool can treat it as a set of closed
regions.

Given a grayscale or alpha plane, the package binarizes it into strokes,
removes speck noise, builds an oriented-border graph over the remaining
strokes, finds curvature extremums along that graph, and tries to bridge
nearby extremums with a spline or a straight segment whenever doing so would
not trap a medium-sized background region. The result is a closed binary
mask plus a Euclidean distance map of it, which a companion fill-overflow
pass (Overflow) can use to grow a selection a few pixels past the closure
without crossing it.

The heavy computation runs on a Controller, which owns at most one
in-flight computation at a time, debounces repeated input invalidations,
and supersedes an in-flight computation without blocking the caller
whenever the input changes again before it finishes:

	lc := lineart.NewController(lineart.DefaultParams())
	lc.SetInput(buf)
	mask, dist, err := lc.Get()

Close and Overflow are exported directly for callers that already own a
snapshot and don't need the async bookkeeping.
*/
package lineart
