package raster

import (
	"image/color"
	"math"
	"testing"

	"wireframe-renderer/internal/geom"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

// boundsTarget fails the test on any write outside its extent.
type boundsTarget struct {
	t      *testing.T
	w, h   int
	writes int
}

func (b *boundsTarget) Size() (int, int) { return b.w, b.h }

func (b *boundsTarget) Set(x, y int) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		b.t.Fatalf("Set(%d, %d) outside %dx%d", x, y, b.w, b.h)
	}
	b.writes++
}

func TestDrawLineStaysInBounds(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Point
	}{
		{"enters from top-left", geom.Point{X: -100, Y: -50}, geom.Point{X: 20, Y: 10}},
		{"exits bottom-right", geom.Point{X: 10, Y: 10}, geom.Point{X: 300, Y: 200}},
		{"crosses whole buffer", geom.Point{X: -40, Y: 15}, geom.Point{X: 90, Y: 15}},
		{"steep through", geom.Point{X: 5, Y: -80}, geom.Point{X: 30, Y: 120}},
		{"fully outside", geom.Point{X: -10, Y: -10}, geom.Point{X: -1, Y: -30}},
		{"right edge exact", geom.Point{X: 40, Y: 0}, geom.Point{X: 40, Y: 29}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt := &boundsTarget{t: t, w: 40, h: 30}
			DrawLine(bt, tt.a, tt.b)
			DrawLine(bt, tt.b, tt.a)
		})
	}
}

func TestDrawLineNonFinite(t *testing.T) {
	bt := &boundsTarget{t: t, w: 40, h: 30}
	DrawLine(bt, geom.Point{X: math.NaN(), Y: 1}, geom.Point{X: 5, Y: 5})
	DrawLine(bt, geom.Point{X: 1, Y: 1}, geom.Point{X: math.Inf(1), Y: 5})
	if bt.writes != 0 {
		t.Fatalf("non-finite endpoints wrote %d pixels, want 0", bt.writes)
	}
}

func TestDrawLineEndpointsAndConnectivity(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Point
	}{
		{"shallow", geom.Point{X: 1, Y: 1}, geom.Point{X: 30, Y: 20}},
		{"shallow reversed", geom.Point{X: 30, Y: 20}, geom.Point{X: 1, Y: 1}},
		{"steep", geom.Point{X: 3, Y: 2}, geom.Point{X: 9, Y: 27}},
		{"horizontal", geom.Point{X: 0, Y: 5}, geom.Point{X: 39, Y: 5}},
		{"vertical", geom.Point{X: 7, Y: 29}, geom.Point{X: 7, Y: 0}},
		{"diagonal", geom.Point{X: 0, Y: 0}, geom.Point{X: 29, Y: 29}},
		{"single pixel", geom.Point{X: 12, Y: 12}, geom.Point{X: 12, Y: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(40, 30, white, black)
			DrawLine(fb, tt.a, tt.b)

			ax, ay := int(tt.a.X), int(tt.a.Y)
			bx, by := int(tt.b.X), int(tt.b.Y)
			if !fb.IsSet(ax, ay) {
				t.Fatalf("start pixel (%d,%d) not set", ax, ay)
			}
			if !fb.IsSet(bx, by) {
				t.Fatalf("end pixel (%d,%d) not set", bx, by)
			}
			if !connected8(fb, ax, ay, bx, by) {
				t.Fatalf("no 8-connected path from (%d,%d) to (%d,%d)", ax, ay, bx, by)
			}
		})
	}
}

// connected8 searches the set pixels of fb for an 8-connected path.
func TestDrawLineFractionalEndpointsStopAtEnd(t *testing.T) {
	tests := []struct {
		name  string
		a, b  geom.Point
		steep bool
	}{
		{"shallow", geom.Point{X: 0.2, Y: 5}, geom.Point{X: 5.7, Y: 5}, false},
		{"shallow reversed", geom.Point{X: 10.8, Y: 5}, geom.Point{X: 4.1, Y: 5}, false},
		{"steep up", geom.Point{X: 400.4, Y: 300.6}, geom.Point{X: 410.9, Y: 150.3}, true},
		{"steep down", geom.Point{X: 20.5, Y: 10.25}, geom.Point{X: 24.75, Y: 60.6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(800, 600, white, black)
			DrawLine(fb, tt.a, tt.b)

			// Along the major axis, nothing may lie past floor(b) and the
			// end row or column must be reached.
			start, end := math.Floor(tt.a.X), math.Floor(tt.b.X)
			if tt.steep {
				start, end = math.Floor(tt.a.Y), math.Floor(tt.b.Y)
			}
			dir := 1.0
			if end < start {
				dir = -1
			}
			reached := false
			for y := 0; y < fb.Height; y++ {
				for x := 0; x < fb.Width; x++ {
					if !fb.IsSet(x, y) {
						continue
					}
					major := float64(x)
					if tt.steep {
						major = float64(y)
					}
					if (major-end)*dir > 0 {
						t.Errorf("pixel (%d,%d) set past end %v", x, y, tt.b)
					}
					if major == end {
						reached = true
					}
				}
			}
			if !reached {
				t.Errorf("no pixel set on the end line %v of %v", end, tt.b)
			}
		})
	}
}

func connected8(fb *FrameBuffer, x0, y0, x1, y1 int) bool {
	seen := make([]bool, fb.Width*fb.Height)
	stack := [][2]int{{x0, y0}}
	seen[y0*fb.Width+x0] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p[0] == x1 && p[1] == y1 {
			return true
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p[0]+dx, p[1]+dy
				if nx < 0 || nx >= fb.Width || ny < 0 || ny >= fb.Height {
					continue
				}
				i := ny*fb.Width + nx
				if seen[i] || !fb.IsSet(nx, ny) {
					continue
				}
				seen[i] = true
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}
	return false
}

func TestFrameBufferClearAndResize(t *testing.T) {
	fb := NewFrameBuffer(4, 3, white, black)
	fb.Set(1, 2)
	if got := fb.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if got := fb.At(1, 2); got != white {
		t.Fatalf("At(1,2) = %v, want %v", got, white)
	}

	fb.Clear()
	if got := fb.Count(); got != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", got)
	}
	if got := fb.At(0, 0); got != black {
		t.Fatalf("At(0,0) after Clear = %v, want %v", got, black)
	}

	fb.Resize(10, 5)
	if w, h := fb.Size(); w != 10 || h != 5 {
		t.Fatalf("Size() = %dx%d, want 10x5", w, h)
	}
	if len(fb.Pix) != 50 {
		t.Fatalf("len(Pix) = %d, want 50", len(fb.Pix))
	}

	img := fb.Image()
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Fatalf("Image() bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(3, 3); got != black {
		t.Fatalf("Image().NRGBAAt(3,3) = %v, want %v", got, black)
	}
}
