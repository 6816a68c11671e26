// Package camera produces the combined projection-view matrix the wireframe
// renderer consumes each frame.
package camera

import (
	"math"

	"wireframe-renderer/internal/mathutil"
)

// Defaults matching the interactive viewer.
const (
	DefaultFOV  = 80.0 // vertical, degrees
	DefaultNear = 0.1
	DefaultFar  = 2000.0
)

// Transform is the per-frame camera input of the renderer.
type Transform struct {
	ProjView mathutil.Mat4 // projection × view; p' = ProjView × p
	Position mathutil.Vec3 // world space, used by back-face culling
}

// Camera is a free-look perspective camera. Rotation holds Euler angles in
// degrees applied as Rx × Ry × Rz.
type Camera struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3

	FOV       float64
	Near, Far float64

	proj     mathutil.Mat4
	view     mathutil.Mat4
	projView mathutil.Mat4
}

// New returns a camera at the origin looking down -Z, with its projection
// set up for a w×h viewport.
func New(w, h int) *Camera {
	c := &Camera{FOV: DefaultFOV, Near: DefaultNear, Far: DefaultFar}
	c.SetViewport(w, h)
	c.Update()
	return c
}

// SetViewport rebuilds the projection for a new aspect ratio.
// Call Update afterwards to refresh the combined matrix.
func (c *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	c.proj = mathutil.PerspectiveFov(mathutil.Deg2Rad(c.FOV), 1, float64(h)/float64(w), c.Near, c.Far)
}

// Update recomputes the view and projection-view matrices from the current
// position and rotation.
func (c *Camera) Update() {
	r := mathutil.RotXYZ(c.Rotation)
	c.view = mathutil.FromMat3Translation(r, r.MulVec3(c.Position.Scale(-1)))
	c.projView = mathutil.Mat4Mul(c.proj, c.view)
}

// ProjectionView returns the combined matrix computed by the last Update.
func (c *Camera) ProjectionView() mathutil.Mat4 {
	return c.projView
}

// Transform returns the renderer input for the current frame.
func (c *Camera) Transform() Transform {
	return Transform{ProjView: c.projView, Position: c.Position}
}

// LookAt turns the camera toward target by setting yaw and pitch; roll is
// left unchanged. Call Update afterwards.
func (c *Camera) LookAt(target mathutil.Vec3) {
	d := target.Sub(c.Position).Normalize()
	if d == (mathutil.Vec3{}) {
		return
	}
	c.Rotation[1] = -mathutil.Rad2Deg(math.Atan2(-d[0], -d[2]))
	c.Rotation[0] = -mathutil.Rad2Deg(math.Asin(mathutil.Clamp(d[1], -1, 1)))
}

// Orbit places the camera on a circle of the given radius around target,
// at azimuth and elevation in degrees, and looks at target.
func (c *Camera) Orbit(target mathutil.Vec3, radius, azimuth, elevation float64) {
	az := mathutil.Deg2Rad(azimuth)
	el := mathutil.Deg2Rad(elevation)
	c.Position = target.Add(mathutil.Vec3{
		radius * math.Cos(el) * math.Sin(az),
		radius * math.Sin(el),
		radius * math.Cos(el) * math.Cos(az),
	})
	c.LookAt(target)
	c.Update()
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() mathutil.Vec3 {
	return mathutil.Vec3{-c.view[8], -c.view[9], -c.view[10]}
}

// Right returns the world-space right axis.
func (c *Camera) Right() mathutil.Vec3 {
	return mathutil.Vec3{c.view[0], c.view[1], c.view[2]}
}

// Up returns the world-space up axis.
func (c *Camera) Up() mathutil.Vec3 {
	return mathutil.Vec3{c.view[4], c.view[5], c.view[6]}
}

// Frame returns a radius at which a sphere of the given extent fits the
// vertical field of view, with some margin.
func (c *Camera) Frame(extent float64) float64 {
	half := mathutil.Deg2Rad(c.FOV / 2)
	return 1.2 * extent / math.Sin(half)
}
