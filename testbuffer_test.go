package lineart

// testBuffer is the in-memory Buffer fixture used throughout the engine
// tests: a plain []uint8 luma (or alpha) plane with a change-notification
// list, playing the role the cli package's image-backed Buffer plays in
// production.
type testBuffer struct {
	width, height int
	hasAlpha      bool
	plane         []uint8

	subscribers []func()
}

// newTestBuffer builds a width x height buffer from a row-major luma plane,
// 0 = black, 255 = white. Callers typically build plane with newPlane.
func newTestBuffer(width, height int, plane []uint8) *testBuffer {
	return &testBuffer{width: width, height: height, plane: plane}
}

func (b *testBuffer) Bounds() (width, height int) { return b.width, b.height }
func (b *testBuffer) HasAlpha() bool              { return b.hasAlpha }

func (b *testBuffer) Read(format SampleFormat) []uint8 {
	if format == FormatAlpha && !b.hasAlpha {
		out := make([]uint8, b.width*b.height)
		for i := range out {
			out[i] = 0xff
		}
		return out
	}
	out := make([]uint8, len(b.plane))
	copy(out, b.plane)
	return out
}

func (b *testBuffer) Copy() Buffer {
	plane := make([]uint8, len(b.plane))
	copy(plane, b.plane)
	return &testBuffer{width: b.width, height: b.height, hasAlpha: b.hasAlpha, plane: plane}
}

func (b *testBuffer) OnChanged(fn func()) func() {
	b.subscribers = append(b.subscribers, fn)
	idx := len(b.subscribers) - 1
	return func() { b.subscribers[idx] = nil }
}

// set mutates one pixel and fires every live subscriber, standing in for
// what a real editor-backed buffer does on every brush stroke.
func (b *testBuffer) set(x, y int, v uint8) {
	b.plane[y*b.width+x] = v
	for _, fn := range b.subscribers {
		if fn != nil {
			fn()
		}
	}
}

// newPlane builds a width x height luma plane filled with bg, with every
// (x, y) in strokes set to fg. Coordinates outside the bounds are ignored,
// which lets callers describe shapes without clipping arithmetic.
func newPlane(width, height int, bg, fg uint8, strokes []point) []uint8 {
	plane := make([]uint8, width*height)
	for i := range plane {
		plane[i] = bg
	}
	for _, p := range strokes {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		plane[p.Y*width+p.X] = fg
	}
	return plane
}

// rectOutline returns the stroke points of an unfilled rectangle border
// from (x0, y0) to (x1, y1) inclusive.
func rectOutline(x0, y0, x1, y1 int) []point {
	var pts []point
	for x := x0; x <= x1; x++ {
		pts = append(pts, point{x, y0}, point{x, y1})
	}
	for y := y0 + 1; y < y1; y++ {
		pts = append(pts, point{x0, y}, point{x1, y})
	}
	return pts
}
