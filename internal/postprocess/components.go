package postprocess

import (
	"image"
	"image/color"
)

// Components labels the 8-connected groups of pixels that differ from bg and
// returns the size of each group in scan order. A closed wireframe outline
// forms one component; clipped stubs and stray pixels form their own.
func Components(img *image.NRGBA, bg color.NRGBA) []int {
	_, sizes := label(img, bg)
	return sizes
}

// RemoveSmallClusters paints every component smaller than minRatio of the
// drawn pixels with bg.
func RemoveSmallClusters(img *image.NRGBA, bg color.NRGBA, minRatio float64) *image.NRGBA {
	labels, sizes := label(img, bg)
	if len(sizes) <= 1 {
		return img
	}
	total := 0
	for _, s := range sizes {
		total += s
	}
	minSize := int(float64(total) * minRatio)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	result := image.NewNRGBA(b)
	copy(result.Pix, img.Pix)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y*w+x]
			if l >= 0 && sizes[l] < minSize {
				i := y*img.Stride + x*4
				result.Pix[i] = bg.R
				result.Pix[i+1] = bg.G
				result.Pix[i+2] = bg.B
				result.Pix[i+3] = bg.A
			}
		}
	}
	return result
}

// label runs an 8-connected flood fill over the foreground pixels. labels
// holds -1 for background.
func label(img *image.NRGBA, bg color.NRGBA) (labels []int, sizes []int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride

	fg := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := img.Pix[y*stride+x*4 : y*stride+x*4+4]
			if p[0] != bg.R || p[1] != bg.G || p[2] != bg.B || p[3] != bg.A {
				fg[y*w+x] = true
			}
		}
	}

	labels = make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	queue := make([]int, 0, 1024)
	for idx := range fg {
		if !fg[idx] || labels[idx] >= 0 {
			continue
		}
		id := len(sizes)
		queue = append(queue[:0], idx)
		labels[idx] = id
		size := 0

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cy, cx := curr/w, curr%w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if fg[ni] && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}
