// Package viewer shows a mesh in an interactive window, re-rendering the
// wireframe every frame.
package viewer

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/flycam"
	"wireframe-renderer/internal/mesh"
	"wireframe-renderer/internal/raster"
)

// Minimum window size.
const (
	MinWidth  = 100
	MinHeight = 400
)

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	Foreground color.NRGBA
	Background color.NRGBA
	Render     raster.Options
	Logger     *slog.Logger
}

// Viewer is an ebiten game drawing one mesh through a free-look camera.
type Viewer struct {
	mesh     *mesh.Mesh
	renderer *raster.Renderer
	render   raster.Options
	ctl      *flycam.Controller
	log      *slog.Logger

	pix      []byte
	pendingW int
	pendingH int

	lastX, lastY int
	lastTick     time.Time
	stats        raster.Stats
	hud          bool
}

// New creates a viewer for m looking through cam. The camera viewport is
// kept in sync with the window.
func New(m *mesh.Mesh, cam *camera.Camera, opts Options) *Viewer {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	log := opts.Logger
	if log == nil {
		log = raster.Logger()
	}
	cam.SetViewport(opts.Width, opts.Height)
	cam.Update()

	return &Viewer{
		mesh:     m,
		renderer: raster.NewRenderer(opts.Width, opts.Height, opts.Foreground, opts.Background, opts.Render),
		render:   opts.Render,
		ctl:      flycam.New(cam),
		log:      log,
		hud:      true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(v *Viewer, opts Options) error {
	w, h := v.renderer.Buffer().Size()
	title := opts.Title
	if title == "" {
		title = "wireframe - " + v.mesh.Name
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowSizeLimits(MinWidth, MinHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v.log.Info("viewer start", "mesh", v.mesh.Name, "triangles", v.mesh.TriangleCount(), "width", w, "height", h)
	err := ebiten.RunGame(v)
	v.log.Info("viewer closed")
	return err
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	now := time.Now()
	x, y := ebiten.CursorPosition()
	dt := 0.0
	if v.lastTick.IsZero() {
		v.lastX, v.lastY = x, y
	} else {
		dt = min(now.Sub(v.lastTick).Seconds(), 0.1)
	}
	v.lastTick = now

	in := flycam.Input{
		Forward:       ebiten.IsKeyPressed(ebiten.KeyW),
		Back:          ebiten.IsKeyPressed(ebiten.KeyS),
		Left:          ebiten.IsKeyPressed(ebiten.KeyA),
		Right:         ebiten.IsKeyPressed(ebiten.KeyD),
		Up:            ebiten.IsKeyPressed(ebiten.KeyE),
		Down:          ebiten.IsKeyPressed(ebiten.KeyQ),
		ToggleCapture: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		MouseDX:       float64(x - v.lastX),
		MouseDY:       float64(y - v.lastY),
	}
	v.lastX, v.lastY = x, y

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.hud = !v.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.render.PiercingEdges = !v.render.PiercingEdges
		v.renderer.SetOptions(v.render)
		v.log.Debug("viewer options", "piercing_edges", v.render.PiercingEdges)
	}

	if v.ctl.Step(in, dt) {
		if v.ctl.Captured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	// Resizes are applied between frames, never while rendering.
	if v.pendingW > 0 && v.pendingH > 0 {
		v.resize(v.pendingW, v.pendingH)
		v.pendingW, v.pendingH = 0, 0
	}

	v.stats = v.renderer.Frame(v.mesh, v.ctl.Cam.Transform())

	buf := v.renderer.Buffer()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if buf.Width != sw || buf.Height != sh {
		// The window changed after Layout; present on the next frame.
		return
	}
	if n := buf.Width * buf.Height * 4; len(v.pix) != n {
		v.pix = make([]byte, n)
	}
	buf.CopyPix(v.pix)
	screen.WritePixels(v.pix)

	if v.hud {
		ebitenutil.DebugPrint(screen, v.status())
	}
}

// Layout implements ebiten.Game. The frame buffer follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := v.renderer.Buffer().Size()
	if outsideWidth != w || outsideHeight != h {
		v.pendingW, v.pendingH = outsideWidth, outsideHeight
	}
	return outsideWidth, outsideHeight
}

func (v *Viewer) resize(w, h int) {
	v.renderer.Resize(w, h)
	v.ctl.Cam.SetViewport(w, h)
	v.ctl.Cam.Update()
	v.log.Debug("viewer resize", "width", w, "height", h)
}

func (v *Viewer) status() string {
	p := v.ctl.Cam.Position
	s := v.stats
	pierce := "off"
	if v.render.PiercingEdges {
		pierce = "on"
	}
	return fmt.Sprintf("FPS %.0f\npos %.1f %.1f %.1f\ntri %d drawn %d culled %d clipped %d\npiercing %s\n[WASD/QE] move [Esc] mouse [P] piercing [H] hud",
		ebiten.ActualFPS(), p[0], p[1], p[2],
		s.Triangles, s.Drawn(), s.Culled, s.Single+s.Quad, pierce)
}
