// Package overlay draws a text HUD onto saved frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"wireframe-renderer/internal/imageio"
)

// Overlay renders lines of text in the top-left corner of a frame.
type Overlay struct {
	mu     sync.Mutex
	source *text.FontSource
	size   float64
	color  color.Color
}

// New loads the embedded Go Regular font at the given point size.
func New(size float64, col color.Color) (*Overlay, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("overlay: load font: %w", err)
	}
	if size <= 0 {
		size = 14
	}
	return &Overlay{source: source, size: size, color: col}, nil
}

// Draw returns a copy of img with lines drawn over a translucent panel.
// Safe for concurrent use.
func (o *Overlay) Draw(img *image.NRGBA, lines []string) (*image.NRGBA, error) {
	if len(lines) == 0 {
		return img, nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	dc := gg.NewContextForImage(img)
	defer dc.Close()
	dc.SetFont(o.source.Face(o.size))

	pad := o.size / 2
	lineH := o.size * 1.3
	width := 0.0
	for _, l := range lines {
		w, _ := dc.MeasureString(l)
		width = max(width, w)
	}

	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(0, 0, width+2*pad, float64(len(lines))*lineH+pad)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("overlay: fill panel: %w", err)
	}

	dc.SetColor(o.color)
	for i, l := range lines {
		dc.DrawString(l, pad, pad+float64(i+1)*lineH-o.size*0.3)
	}
	return imageio.ToNRGBA(dc.Image()), nil
}
