package patternbuilder

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Reconstruct maps a collapsed assignment to output colours. Each cell reads
// the top-left cell of the pattern observed there; cells in the last N-1 rows
// or columns read the matching offset of the last in-bounds window instead.
// Window origins are clamped to [0, size-N], so outputs narrower than 2N-1
// never index before the first cell.
func Reconstruct[C comparable](s *SolverConfig, patterns []Pattern, p *Palette[C], observed []int) []C {
	w, h, n := s.Width, s.Height, s.N
	out := make([]C, w*h)
	for y := range h {
		oy := min(y, max(0, h-n))
		dy := y - oy
		for x := range w {
			ox := min(x, max(0, w-n))
			dx := x - ox
			t := observed[labelOffset(w, ox, oy)]
			out[labelOffset(w, x, y)] = p.Color(patterns[t][dx+dy*n])
		}
	}
	return out
}

// Preview blends the colours every still-possible pattern would give each
// cell, over every window covering it. Windows anchored on boundary cells
// contribute nothing; cells with no contribution stay black.
func Preview(s *SolverConfig, patterns []Pattern, p *Palette[colorful.Color], wave [][]bool) []colorful.Color {
	w, h, n := s.Width, s.Height, s.N
	out := make([]colorful.Color, w*h)
	for i := range out {
		x, y := i%w, i/w
		var r, g, b float64
		count := 0
		for dy := range n {
			for dx := range n {
				sx := x - dx
				if sx < 0 {
					sx += w
				}
				sy := y - dy
				if sy < 0 {
					sy += h
				}
				if s.OnBoundary(sx, sy) {
					continue
				}
				for t, ok := range wave[labelOffset(w, sx, sy)] {
					if !ok {
						continue
					}
					c := p.Color(patterns[t][dx+dy*n])
					r += c.R
					g += c.G
					b += c.B
					count++
				}
			}
		}
		if count > 0 {
			k := float64(count)
			out[i] = colorful.Color{R: r / k, G: g / k, B: b / k}
		}
	}
	return out
}

// ToRGBA packs row-major colours into an opaque image.
func ToRGBA(colors []colorful.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			r, g, b := colors[labelOffset(w, x, y)].Clamped().RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
