// Package geom holds the 2D intersection primitives used to clip wireframe
// edges against the render target's borders.
package geom

import "math"

// Point is a screen-space position in pixels. Row 0 is the top of the image.
type Point struct {
	X, Y float64
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Hit is an optional intersection point. OK is false when no crossing exists.
type Hit struct {
	Point
	OK bool
}

// SegmentIntersection intersects segment p1-p2 with segment p3-p4.
//
// Both line parameters must lie in [0, 1]. Parallel and collinear segments
// make the denominator zero; the resulting non-finite parameters fail the
// range test, so they report no intersection.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	den := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	uA := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / den
	uB := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / den

	if uA >= 0 && uA <= 1 && uB >= 0 && uB <= 1 {
		return Point{p1.X + uA*(p2.X-p1.X), p1.Y + uA*(p2.Y-p1.Y)}, true
	}
	return Point{}, false
}
