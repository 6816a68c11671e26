package raster

import (
	"wireframe-renderer/internal/geom"
	"wireframe-renderer/internal/mathutil"
)

// Class is the visibility outcome of one triangle.
type Class int

const (
	Culled  Class = iota // back-facing or edge-on
	Outside              // no vertex inside the view volume
	Single               // one vertex inside
	Quad                 // two vertices inside
	Inside               // all vertices inside
)

func (c Class) String() string {
	switch c {
	case Culled:
		return "culled"
	case Outside:
		return "outside"
	case Single:
		return "single"
	case Quad:
		return "quad"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// InsideNDC reports whether v lies in the unit cube [-1,1]³.
// Non-finite components compare false and count as outside.
func InsideNDC(v mathutil.Vec3) bool {
	for _, c := range v {
		if !(c >= -1 && c <= 1) {
			return false
		}
	}
	return true
}

// ToScreen maps NDC x,y to pixel coordinates with row 0 at the top.
func ToScreen(v mathutil.Vec3, w, h int) geom.Point {
	return geom.Point{
		X: (v[0] + 1) * 0.5 * float64(w),
		Y: (1 - v[1]) * 0.5 * float64(h),
	}
}

// FacesCamera applies the back-face test on object-space vertices: the
// triangle is kept when its normal points against the eye-to-vertex vector.
func FacesCamera(tri [3]mathutil.Vec3, eye mathutil.Vec3) bool {
	n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
	return n.Dot(tri[0].Sub(eye)) < 0
}

// DrawTriangle culls, projects, classifies and draws the visible edges of
// one triangle. mvp maps object space to clip space.
func DrawTriangle(t Target, tri [3]mathutil.Vec3, mvp mathutil.Mat4, eye mathutil.Vec3, opts Options) Class {
	if !FacesCamera(tri, eye) {
		return Culled
	}

	w, h := t.Size()
	vp := geom.Viewport{W: float64(w), H: float64(h)}

	var (
		clip    [3]mathutil.Vec4
		screen  [3]geom.Point
		in      [3]bool
		inCount int
	)
	for i, v := range tri {
		clip[i] = mvp.MulVec4(v.Point())
		ndc := clip[i].PerspectiveDivide()
		screen[i] = ToScreen(ndc, w, h)
		if InsideNDC(ndc) {
			in[i] = true
			inCount++
		}
	}

	switch inCount {
	case 3:
		DrawLine(t, screen[0], screen[1])
		DrawLine(t, screen[0], screen[2])
		DrawLine(t, screen[1], screen[2])
		return Inside

	case 2:
		// One vertex o is outside; a and b are its neighbours in triangle order.
		o := outsideIndex(in)
		a, b := (o+1)%3, (o+2)%3
		drawClipped(t, screen[o], screen[a], vp)
		drawClipped(t, screen[o], screen[b], vp)
		DrawLine(t, screen[a], screen[b])
		return Quad

	case 1:
		i := insideIndex(in)
		for _, o := range [2]int{(i + 1) % 3, (i + 2) % 3} {
			drawClipped(t, screen[o], screen[i], vp)
		}
		return Single
	}

	if opts.PiercingEdges && clip[0][3] > 0 && clip[1][3] > 0 && clip[2][3] > 0 {
		for _, e := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			first, second := geom.BorderCrossings(screen[e[0]], screen[e[1]], vp)
			if first.OK && second.OK {
				DrawLine(t, first.Point, second.Point)
			}
		}
	}
	return Outside
}

// drawClipped draws the part of out-inside that lies in the viewport. Edges
// whose projection never reaches a border (the vertex left the volume
// through the near or far plane) are skipped.
func drawClipped(t Target, out, inside geom.Point, vp geom.Viewport) {
	hit := geom.BorderCrossing(out, inside, vp)
	if !hit.OK {
		return
	}
	DrawLine(t, hit.Point, inside)
}

func outsideIndex(in [3]bool) int {
	for i, ok := range in {
		if !ok {
			return i
		}
	}
	return -1
}

func insideIndex(in [3]bool) int {
	for i, ok := range in {
		if ok {
			return i
		}
	}
	return -1
}
