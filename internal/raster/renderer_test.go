package raster

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/mesh"
)

// gridMesh returns an n×n grid of quads spanning [-size, size] in the z = 0
// plane, wound counter-clockwise when seen from +z.
func gridMesh(n int, size float32) *mesh.Mesh {
	m := &mesh.Mesh{Name: "grid"}
	step := 2 * size / float32(n)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			m.Vertices = append(m.Vertices, -size+float32(i)*step, -size+float32(j)*step, 0)
		}
	}
	row := uint32(n + 1)
	for j := uint32(0); j < uint32(n); j++ {
		for i := uint32(0); i < uint32(n); i++ {
			a := j*row + i
			b, c, d := a+1, a+row+1, a+row
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}

func identityView() camera.Transform {
	return camera.Transform{ProjView: mathutil.Mat4Identity(), Position: eye}
}

func TestRenderWireframeEmptyMesh(t *testing.T) {
	fb := NewFrameBuffer(64, 48, white, black)
	stats := RenderWireframe(fb, &mesh.Mesh{}, identityView(), Options{})
	if stats.Triangles != 0 || stats.Drawn() != 0 || stats.Culled != 0 {
		t.Fatalf("RenderWireframe(empty) = %+v, want zero counts", stats)
	}
	if n := fb.Count(); n != 0 {
		t.Fatalf("empty mesh wrote %d pixels", n)
	}
}

func TestRenderWireframeZeroSizeTarget(t *testing.T) {
	bt := &boundsTarget{t: t}
	m := &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 0.5, 0, 0, 0, 0.5, 0},
		Indices:  []uint32{0, 1, 2},
	}
	stats := RenderWireframe(bt, m, identityView(), Options{})
	if bt.writes != 0 {
		t.Fatalf("zero-size target received %d writes", bt.writes)
	}
	if stats.Triangles != 1 {
		t.Fatalf("Triangles = %d, want 1", stats.Triangles)
	}
}

func TestRenderWireframeCountsClasses(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0, 0.5, 0, 0, 0, 0.5, 0, // inside
			2, 0, 0, 0, 0.5, 0, 0, 0, 0, // quad
			2, 2, 0, 3, 2, 0, 2, 3, 0, // outside
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 0, 2, 1},
	}
	fb := NewFrameBuffer(800, 600, white, black)
	stats := RenderWireframe(fb, m, identityView(), Options{Workers: 1})

	want := Stats{Triangles: 4, Culled: 1, Outside: 1, Quad: 1, Inside: 1}
	stats.Duration = 0
	if stats != want {
		t.Fatalf("RenderWireframe() = %+v, want %+v", stats, want)
	}
}

func TestRenderWireframeModelMatrix(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 0.5, 0, 0, 0, 0.5, 0},
		Indices:  []uint32{0, 1, 2},
	}
	fb := NewFrameBuffer(800, 600, white, black)
	opts := Options{Model: mathutil.Translate(mathutil.Vec3{10, 0, 0})}
	stats := RenderWireframe(fb, m, identityView(), opts)
	if stats.Outside != 1 {
		t.Fatalf("translated triangle = %+v, want outside", stats)
	}
	if n := fb.Count(); n != 0 {
		t.Fatalf("translated triangle wrote %d pixels", n)
	}
}

func TestRenderWireframeWorkersMatchSequential(t *testing.T) {
	m := gridMesh(24, 3)
	cam := camera.New(320, 240)
	cam.Position = mathutil.Vec3{0.3, -0.2, 2.5}
	cam.Update()

	seq := NewFrameBuffer(320, 240, white, black)
	par := NewFrameBuffer(320, 240, white, black)
	s1 := RenderWireframe(seq, m, cam.Transform(), Options{Workers: 1})
	s2 := RenderWireframe(par, m, cam.Transform(), Options{Workers: 7})

	s1.Duration, s2.Duration = 0, 0
	if s1 != s2 {
		t.Fatalf("stats differ: sequential %+v, parallel %+v", s1, s2)
	}
	if s1.Triangles != 24*24*2 {
		t.Fatalf("Triangles = %d, want %d", s1.Triangles, 24*24*2)
	}
	if s1.Single+s1.Quad == 0 {
		t.Fatalf("grid larger than the view produced no clipped triangles: %+v", s1)
	}
	if !slices.Equal(seq.Pix, par.Pix) {
		t.Fatalf("parallel render differs from sequential render")
	}
}

func TestRendererFrameClears(t *testing.T) {
	r := NewRenderer(800, 600, white, black, Options{Workers: 2})
	m := &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 0.5, 0, 0, 0, 0.5, 0},
		Indices:  []uint32{0, 1, 2},
	}

	r.Frame(m, identityView())
	first := r.Buffer().Count()
	if first == 0 {
		t.Fatalf("Frame() drew nothing")
	}
	r.Frame(m, identityView())
	if got := r.Buffer().Count(); got != first {
		t.Fatalf("second Frame() count = %d, want %d", got, first)
	}

	r.Resize(100, 50)
	if w, h := r.Buffer().Size(); w != 100 || h != 50 {
		t.Fatalf("Size() after Resize = %dx%d, want 100x50", w, h)
	}
	r.Frame(&mesh.Mesh{}, identityView())
	if got := r.Buffer().Count(); got != 0 {
		t.Fatalf("empty Frame() count = %d, want 0", got)
	}
}

func TestRendererSetOptions(t *testing.T) {
	// Every vertex lies outside the view while the bottom edge crosses it.
	m := &mesh.Mesh{
		Vertices: []float32{-3, 0.1, 0, 3, 0.1, 0, 0, 5, 0},
		Indices:  []uint32{0, 1, 2},
	}
	r := NewRenderer(800, 600, white, black, Options{})

	if st := r.Frame(m, identityView()); st.Outside != 1 || r.Buffer().Count() != 0 {
		t.Fatalf("default Frame() = %+v with %d pixels, want one undrawn outside triangle", st, r.Buffer().Count())
	}

	r.SetOptions(Options{PiercingEdges: true})
	r.Frame(m, identityView())
	if !r.Buffer().IsSet(400, 270) {
		t.Fatal("piercing edge not drawn after SetOptions")
	}

	r.SetOptions(Options{})
	r.Frame(m, identityView())
	if n := r.Buffer().Count(); n != 0 {
		t.Fatalf("Frame() after disabling piercing edges wrote %d pixels", n)
	}
}

func TestRenderWireframeLogsStats(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	fb := NewFrameBuffer(8, 8, white, black)
	RenderWireframe(fb, &mesh.Mesh{Name: "marker"}, identityView(), Options{})

	out := buf.String()
	if !strings.Contains(out, "wireframe pass") || !strings.Contains(out, "mesh=marker") {
		t.Fatalf("log output = %q, want a wireframe pass record for marker", out)
	}
}

func BenchmarkRenderWireframe(b *testing.B) {
	m := gridMesh(64, 2)
	cam := camera.New(800, 600)
	cam.Position = mathutil.Vec3{0, 0, 3}
	cam.Update()
	fb := NewFrameBuffer(800, 600, white, black)
	view := cam.Transform()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fb.Clear()
		RenderWireframe(fb, m, view, Options{})
	}
}
