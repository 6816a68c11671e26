// Package flycam turns per-frame input into free-look camera motion.
package flycam

import (
	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/mathutil"
)

const (
	MoveSpeed  = 6.5 // world units per second
	LookSpeed  = 0.3 // degrees per pixel of mouse motion
	PitchLimit = 89.0
)

// Input is the state of the controls for one frame.
type Input struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	// ToggleCapture flips mouse capture; set on the frame the key goes down.
	ToggleCapture bool
	// MouseDX and MouseDY are cursor motion in pixels since the last frame.
	MouseDX, MouseDY float64
}

// Controller moves a camera from Input. Mouse look only applies while the
// cursor is captured.
type Controller struct {
	Cam      *camera.Camera
	Captured bool
}

// New returns a controller for cam with the cursor released.
func New(cam *camera.Camera) *Controller {
	return &Controller{Cam: cam}
}

// Step applies one frame of input over dt seconds and refreshes the camera
// matrices. It reports whether the capture state changed.
func (c *Controller) Step(in Input, dt float64) bool {
	toggled := false
	if in.ToggleCapture {
		c.Captured = !c.Captured
		toggled = true
	}

	cam := c.Cam
	step := MoveSpeed * dt
	fwd, right := cam.Forward(), cam.Right()
	up := mathutil.Vec3{0, 1, 0}

	if in.Forward {
		cam.Position = cam.Position.Add(fwd.Scale(step))
	}
	if in.Back {
		cam.Position = cam.Position.Sub(fwd.Scale(step))
	}
	if in.Left {
		cam.Position = cam.Position.Sub(right.Scale(step))
	}
	if in.Right {
		cam.Position = cam.Position.Add(right.Scale(step))
	}
	if in.Up {
		cam.Position = cam.Position.Add(up.Scale(step))
	}
	if in.Down {
		cam.Position = cam.Position.Sub(up.Scale(step))
	}

	// Skip look on the toggle frame: the cursor jumps when capture changes.
	if c.Captured && !toggled {
		cam.Rotation[1] += in.MouseDX * LookSpeed
		cam.Rotation[0] += in.MouseDY * LookSpeed
		cam.Rotation[0] = mathutil.Clamp(cam.Rotation[0], -PitchLimit, PitchLimit)
	}

	cam.Update()
	return toggled
}
