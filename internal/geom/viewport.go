package geom

// Viewport is the rectangle with corners (0,0) and (W,H).
type Viewport struct {
	W, H float64
}

// Border edges, each as a segment on the viewport rectangle.
func (vp Viewport) left() (Point, Point)   { return Point{0, 0}, Point{0, vp.H} }
func (vp Viewport) top() (Point, Point)    { return Point{0, 0}, Point{vp.W, 0} }
func (vp Viewport) right() (Point, Point)  { return Point{vp.W, 0}, Point{vp.W, vp.H} }
func (vp Viewport) bottom() (Point, Point) { return Point{0, vp.H}, Point{vp.W, vp.H} }

func (vp Viewport) crossings(a, b Point) (left, top, right, bottom Hit) {
	test := func(p3, p4 Point) Hit {
		p, ok := SegmentIntersection(a, b, p3, p4)
		return Hit{Point: p, OK: ok}
	}
	left = test(vp.left())
	top = test(vp.top())
	right = test(vp.right())
	bottom = test(vp.bottom())
	return left, top, right, bottom
}

// BorderCrossings returns the entry and exit points of a segment that spans
// the viewport. The left and top borders feed first (top wins when both
// match); the right and bottom borders feed second (bottom wins).
func BorderCrossings(a, b Point, vp Viewport) (first, second Hit) {
	left, top, right, bottom := vp.crossings(a, b)
	for _, h := range []Hit{left, top} {
		if h.OK {
			first = h
		}
	}
	for _, h := range []Hit{right, bottom} {
		if h.OK {
			second = h
		}
	}
	return first, second
}

// BorderCrossing returns the point where a segment with one endpoint outside
// the viewport crosses its border. Borders are tested left, top, right,
// bottom and the last one that matches wins, which is not necessarily the
// crossing nearest to the outside endpoint.
func BorderCrossing(a, b Point, vp Viewport) Hit {
	left, top, right, bottom := vp.crossings(a, b)
	var hit Hit
	for _, h := range []Hit{left, top, right, bottom} {
		if h.OK {
			hit = h
		}
	}
	return hit
}
