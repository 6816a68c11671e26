package raster

import (
	"image/color"
	"runtime"
	"sync"
	"time"

	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/mesh"
)

// Options tunes a wireframe pass. The zero value renders on all CPUs with an
// identity model matrix.
type Options struct {
	// Workers is the number of goroutines sharing the triangle list.
	// Zero or negative means runtime.NumCPU().
	Workers int
	// Model places the mesh in world space. The zero matrix means identity.
	Model mathutil.Mat4
	// PiercingEdges draws the in-view span of edges whose triangle has no
	// vertex inside the view volume. Off by default.
	PiercingEdges bool
}

// Stats counts triangles per visibility class for one pass.
type Stats struct {
	Triangles int
	Culled    int
	Outside   int
	Single    int
	Quad      int
	Inside    int
	Duration  time.Duration
}

func (s *Stats) add(c Class) {
	switch c {
	case Culled:
		s.Culled++
	case Outside:
		s.Outside++
	case Single:
		s.Single++
	case Quad:
		s.Quad++
	case Inside:
		s.Inside++
	}
}

func (s *Stats) merge(o Stats) {
	s.Culled += o.Culled
	s.Outside += o.Outside
	s.Single += o.Single
	s.Quad += o.Quad
	s.Inside += o.Inside
}

// Drawn returns the number of triangles that produced at least one edge.
func (s Stats) Drawn() int {
	return s.Single + s.Quad + s.Inside
}

// RenderWireframe draws every triangle of m into t. The target is not
// cleared first.
func RenderWireframe(t Target, m *mesh.Mesh, view camera.Transform, opts Options) Stats {
	start := time.Now()
	n := m.TriangleCount()
	stats := Stats{Triangles: n}

	model := opts.Model
	if model == (mathutil.Mat4{}) {
		model = mathutil.Mat4Identity()
	}
	transform := !model.IsIdentity()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	if workers > 0 {
		chunk := (n + workers - 1) / workers
		partial := make([]Stats, workers)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := min(lo+chunk, n)
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				var s Stats
				for i := lo; i < hi; i++ {
					tri := m.Triangle(i)
					if transform {
						for k := range tri {
							tri[k] = model.MulPoint(tri[k])
						}
					}
					s.add(DrawTriangle(t, tri, view.ProjView, view.Position, opts))
				}
				partial[w] = s
			}(w, lo, hi)
		}
		wg.Wait()

		for _, s := range partial {
			stats.merge(s)
		}
	}

	stats.Duration = time.Since(start)
	Logger().Debug("wireframe pass",
		"mesh", m.Name,
		"triangles", stats.Triangles,
		"culled", stats.Culled,
		"outside", stats.Outside,
		"single", stats.Single,
		"quad", stats.Quad,
		"inside", stats.Inside,
		"workers", workers,
		"elapsed", stats.Duration,
	)
	return stats
}

// Renderer owns a frame buffer and the options used for every frame drawn
// into it.
type Renderer struct {
	buf  *FrameBuffer
	opts Options
}

// NewRenderer allocates a w×h frame buffer with the given colors.
func NewRenderer(w, h int, fg, bg color.NRGBA, opts Options) *Renderer {
	return &Renderer{
		buf:  NewFrameBuffer(w, h, fg, bg),
		opts: opts,
	}
}

// Resize changes the frame buffer dimensions.
func (r *Renderer) Resize(w, h int) {
	r.buf.Resize(w, h)
}

// SetOptions replaces the options used by later frames.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
}

// Frame clears the buffer and draws m as seen through view.
func (r *Renderer) Frame(m *mesh.Mesh, view camera.Transform) Stats {
	r.buf.Clear()
	return RenderWireframe(r.buf, m, view, r.opts)
}

// Buffer returns the frame buffer. It stays valid until the next Resize.
func (r *Renderer) Buffer() *FrameBuffer {
	return r.buf
}
