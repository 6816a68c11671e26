package postprocess

import (
	"fmt"
	"image"
)

// DiffStats summarizes the pixel differences between two frames.
type DiffStats struct {
	Pixels   int // pixels compared
	Changed  int // pixels with any channel different
	MaxDelta int // largest per-channel difference
}

// Ratio returns the fraction of changed pixels.
func (d DiffStats) Ratio() float64 {
	if d.Pixels == 0 {
		return 0
	}
	return float64(d.Changed) / float64(d.Pixels)
}

// Diff compares two frames of equal size. If mask is non-nil, changed
// pixels are painted opaque white on black in it.
func Diff(a, b *image.NRGBA, mask *image.NRGBA) (DiffStats, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return DiffStats{}, fmt.Errorf("postprocess: frame sizes differ: %dx%d vs %dx%d",
			ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	var d DiffStats
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			pa := a.Pix[a.PixOffset(ab.Min.X+x, ab.Min.Y+y):]
			pb := b.Pix[b.PixOffset(bb.Min.X+x, bb.Min.Y+y):]
			changed := false
			for c := 0; c < 4; c++ {
				delta := int(pa[c]) - int(pb[c])
				if delta < 0 {
					delta = -delta
				}
				if delta > 0 {
					changed = true
				}
				d.MaxDelta = max(d.MaxDelta, delta)
			}
			d.Pixels++
			if changed {
				d.Changed++
			}
			if mask != nil {
				v := uint8(0)
				if changed {
					v = 255
				}
				i := mask.PixOffset(mask.Rect.Min.X+x, mask.Rect.Min.Y+y)
				mask.Pix[i], mask.Pix[i+1], mask.Pix[i+2], mask.Pix[i+3] = v, v, v, 255
			}
		}
	}
	return d, nil
}
