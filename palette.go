package patternbuilder

import "fmt"

// Palette is the ordered set of distinct sample colours. Indices are assigned
// in row-major first-seen order and never change after Quantize returns.
type Palette[C comparable] struct {
	Colors []C
}

// Len returns the palette cardinality C.
func (p *Palette[C]) Len() int {
	return len(p.Colors)
}

// Index returns the palette index of c, or -1 if c was never seen.
func (p *Palette[C]) Index(c C) int {
	for i, pc := range p.Colors {
		if pc == c {
			return i
		}
	}
	return -1
}

// Color returns the colour stored at palette index i.
func (p *Palette[C]) Color(i int) C {
	return p.Colors[i]
}

// Grid is a row-major grid of palette indices.
type Grid struct {
	W, H  int
	Cells []int // len = W*H
}

// At returns the index at (x,y).
func (g Grid) At(x, y int) int {
	return g.Cells[labelOffset(g.W, x, y)]
}

// Wrapped returns the index at (x mod W, y mod H).
func (g Grid) Wrapped(x, y int) int {
	return g.At(mod(x, g.W), mod(y, g.H))
}

// Quantize scans sample (indexed [y][x]) once in row-major order and returns
// its palette together with the sample rewritten as palette indices.
func Quantize[C comparable](sample [][]C) (*Palette[C], Grid, error) {
	if len(sample) == 0 || len(sample[0]) == 0 {
		return nil, Grid{}, fmt.Errorf("quantize: empty sample: %w", ErrDegenerateSample)
	}
	h, w := len(sample), len(sample[0])
	for _, row := range sample {
		if len(row) != w {
			return nil, Grid{}, fmt.Errorf("quantize: ragged sample: %w", ErrDegenerateSample)
		}
	}

	p := &Palette[C]{}
	g := Grid{W: w, H: h, Cells: make([]int, w*h)}
	for y := range h {
		for x := range w {
			c := sample[y][x]
			i := p.Index(c)
			if i < 0 {
				i = len(p.Colors)
				p.Colors = append(p.Colors, c)
			}
			g.Cells[labelOffset(w, x, y)] = i
		}
	}
	return p, g, nil
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
