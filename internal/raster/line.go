package raster

import (
	"math"

	"wireframe-renderer/internal/geom"
)

// lineEps absorbs rounding in the travelled distance of integer segments.
const lineEps = 1e-9

// DrawLine draws segment a-b with integer stepping driven by an error term
// proportional to the axis deltas.
//
// The walk stops once the distance travelled from a reaches the segment
// length. A position past the length is never plotted, so a fractional
// endpoint gets no overshoot pixel while both endpoints of an integer segment
// are drawn. Pixels outside the target are skipped.
func DrawLine(t Target, a, b geom.Point) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	w, h := t.Size()

	x, y := a.X, a.Y
	dx := math.Abs(b.X - x)
	dy := math.Abs(b.Y - y)

	sx, sy := -1.0, -1.0
	if x < b.X {
		sx = 1
	}
	if y < b.Y {
		sy = 1
	}
	e := dx - dy
	length := math.Hypot(dx, dy)

	// Every step advances at least one axis, so dx+dy bounds the walk.
	maxSteps := int(math.Ceil(dx+dy)) + 1
	for i := 0; i <= maxSteps; i++ {
		d := math.Hypot(x-a.X, y-a.Y)
		if d > length+lineEps {
			return
		}

		px, py := int(math.Floor(x)), int(math.Floor(y))
		if px >= 0 && px < w && py >= 0 && py < h {
			t.Set(px, py)
		}
		if d >= length {
			return
		}

		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}
