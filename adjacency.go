package patternbuilder

import (
	"context"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Direction is one of the four unit offsets of the output grid. The y axis
// grows downward, as in image coordinates.
type Direction int

const (
	Left Direction = iota
	Down
	Right
	Up
)

// Directions lists every Direction in index order.
var Directions = [4]Direction{Left, Down, Right, Up}

var (
	dx4 = [4]int{-1, 0, 1, 0}
	dy4 = [4]int{0, 1, 0, -1}
)

// Offset returns the unit step of d.
func (d Direction) Offset() (dx, dy int) {
	return dx4[d], dy4[d]
}

// Opposite returns the direction pointing back along d.
func (d Direction) Opposite() Direction {
	return (d + 2) & 3
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "invalid"
	}
}

// Agrees reports whether p2, shifted by (dx,dy) relative to p1, matches p1 on
// every overlapping cell.
func Agrees(p1, p2 Pattern, dx, dy, n int) bool {
	xmin, xmax := dx, n
	if dx < 0 {
		xmin, xmax = 0, dx+n
	}
	ymin, ymax := dy, n
	if dy < 0 {
		ymin, ymax = 0, dy+n
	}
	for y := ymin; y < ymax; y++ {
		for x := xmin; x < xmax; x++ {
			if p1[x+n*y] != p2[x-dx+n*(y-dy)] {
				return false
			}
		}
	}
	return true
}

// Adjacency holds, for every direction d and slot t, the ascending list of
// slots that may sit at offset d from t.
type Adjacency struct {
	T      int
	Compat [4][][]int
}

// BuildAdjacency runs the agreement test for every ordered pattern pair. Each
// test for Left and Down also fills the mirrored Right and Up entry, so
// t2 ∈ Compat[d][t] exactly when t ∈ Compat[d.Opposite()][t2].
//
// The result depends only on the catalog; build it once and share it across
// solve attempts.
func BuildAdjacency(patterns []Pattern, n int) *Adjacency {
	t := len(patterns)
	a := &Adjacency{T: t}
	for _, d := range Directions {
		a.Compat[d] = make([][]int, t)
	}
	for _, d := range []Direction{Left, Down} {
		dx, dy := d.Offset()
		opp := d.Opposite()
		for t1 := range t {
			for t2 := range t {
				if Agrees(patterns[t1], patterns[t2], dx, dy, n) {
					a.Compat[d][t1] = append(a.Compat[d][t1], t2)
					a.Compat[opp][t2] = append(a.Compat[opp][t2], t1)
				}
			}
		}
	}
	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("adjacency built", "patterns", t, "density", a.Density(),
			"left", a.DirectionDensity(Left), "down", a.DirectionDensity(Down))
	}
	return a
}

// Compatible reports whether t2 may sit at offset d from t.
func (a *Adjacency) Compatible(d Direction, t, t2 int) bool {
	_, ok := slices.BinarySearch(a.Compat[d][t], t2)
	return ok
}

// Density returns the fraction of (direction, t, t2) triples that agree.
func (a *Adjacency) Density() float64 {
	if a.T == 0 {
		return 0
	}
	n := 0
	for _, d := range Directions {
		for _, l := range a.Compat[d] {
			n += len(l)
		}
	}
	return float64(n) / float64(4*a.T*a.T)
}

// DirectionDensity returns the fraction of (t, t2) pairs that agree at offset d.
func (a *Adjacency) DirectionDensity(d Direction) float64 {
	m := a.Matrix(d)
	if m == nil {
		return 0
	}
	return mat.Sum(m) / float64(a.T*a.T)
}

// Matrix returns the T×T agreement matrix of d, with M[t][t2] = 1 when t2 may
// sit at offset d from t. Matrix(d) is the transpose of Matrix(d.Opposite()).
func (a *Adjacency) Matrix(d Direction) *mat.Dense {
	if a.T == 0 {
		return nil
	}
	m := mat.NewDense(a.T, a.T, nil)
	for t, l := range a.Compat[d] {
		for _, t2 := range l {
			m.Set(t, t2, 1)
		}
	}
	return m
}
