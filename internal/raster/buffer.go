package raster

import (
	"image"
	"image/color"
	"sync/atomic"
)

// Target is the surface the wireframe pipeline draws into.
type Target interface {
	Size() (w, h int)
	// Set paints (x, y) with the foreground color. Callers pass in-bounds
	// coordinates only.
	Set(x, y int)
}

// FrameBuffer holds the rendering target as a flat slice of packed RGBA
// pixels for cache locality. Set uses atomic stores, so triangle workers may
// draw into the same buffer concurrently.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint32 // little-endian R,G,B,A per pixel, len = W*H

	fg, bg uint32
}

// NewFrameBuffer allocates a buffer cleared to the background color.
func NewFrameBuffer(w, h int, fg, bg color.NRGBA) *FrameBuffer {
	fb := &FrameBuffer{fg: pack(fg), bg: pack(bg)}
	fb.Resize(w, h)
	return fb
}

// Resize reallocates the pixel slice when the dimensions change and clears it.
// It must not run concurrently with drawing.
func (fb *FrameBuffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w != fb.Width || h != fb.Height || fb.Pix == nil {
		fb.Width, fb.Height = w, h
		fb.Pix = make([]uint32, w*h)
	}
	fb.Clear()
}

// Size implements Target.
func (fb *FrameBuffer) Size() (int, int) { return fb.Width, fb.Height }

// Set implements Target.
func (fb *FrameBuffer) Set(x, y int) {
	atomic.StoreUint32(&fb.Pix[y*fb.Width+x], fb.fg)
}

// At returns the color at (x, y).
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	return unpack(atomic.LoadUint32(&fb.Pix[y*fb.Width+x]))
}

// IsSet reports whether (x, y) holds the foreground color.
func (fb *FrameBuffer) IsSet(x, y int) bool {
	return atomic.LoadUint32(&fb.Pix[y*fb.Width+x]) == fb.fg
}

// Clear fills the buffer with the background color.
func (fb *FrameBuffer) Clear() {
	for i := range fb.Pix {
		fb.Pix[i] = fb.bg
	}
}

// Count returns the number of foreground pixels.
func (fb *FrameBuffer) Count() int {
	n := 0
	for _, p := range fb.Pix {
		if p == fb.fg {
			n++
		}
	}
	return n
}

// CopyPix writes the buffer as interleaved RGBA bytes into dst, which must
// hold at least W*H*4 bytes.
func (fb *FrameBuffer) CopyPix(dst []byte) {
	for i, p := range fb.Pix {
		j := i * 4
		dst[j] = uint8(p)
		dst[j+1] = uint8(p >> 8)
		dst[j+2] = uint8(p >> 16)
		dst[j+3] = uint8(p >> 24)
	}
}

// Image converts the buffer to an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyPix(img.Pix)
	return img
}

func pack(c color.NRGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

func unpack(p uint32) color.NRGBA {
	return color.NRGBA{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: uint8(p >> 24)}
}
