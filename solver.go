package patternbuilder

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Wave is the part of an external solver that configuration steps may touch.
type Wave interface {
	// Ban removes slot t from the candidates of cell i (row-major).
	Ban(i, t int)
	// Propagate runs propagation to a fixpoint and reports false on contradiction.
	Propagate() bool
}

// Status tags the variant held by a Result.
type Status int

const (
	InProgress Status = iota
	Collapsed
	Contradiction
)

func (s Status) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Contradiction:
		return "contradiction"
	default:
		return "in-progress"
	}
}

// Result is the state a solver hands back for reconstruction.
type Result struct {
	Status Status
	// Observed holds one slot per output cell when Status is Collapsed.
	Observed []int
	// Wave holds the candidate flags of every cell otherwise.
	Wave [][]bool
}

// SolverConfig is everything an external solver needs from the catalog. It
// is immutable and may be shared by concurrent solve attempts.
type SolverConfig struct {
	T             int
	N             int
	Width, Height int
	Periodic      bool
	// Ground is the normalized ground slot; 0 means none.
	Ground     int
	Weights    []float64
	Propagator [4][][]int
}

// NewSolverConfig assembles the solver configuration for an output of the
// given size.
func NewSolverConfig(c *Catalog, a *Adjacency, width, height int, periodic bool, ground int) (*SolverConfig, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("solver config: %w", ErrDegenerateSample)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("solver config: output %dx%d: %w", width, height, ErrInvalidOptions)
	}
	if !periodic && (width < c.N || height < c.N) {
		return nil, fmt.Errorf("solver config: output %dx%d smaller than %dx%d pattern: %w", width, height, c.N, c.N, ErrInvalidOptions)
	}
	return &SolverConfig{
		T:          c.Len(),
		N:          c.N,
		Width:      width,
		Height:     height,
		Periodic:   periodic,
		Ground:     NormalizeGround(ground, c.Len()),
		Weights:    c.FloatWeights(),
		Propagator: a.Compat,
	}, nil
}

// NormalizeGround maps ground into [0,t); negative values count from the end.
func NormalizeGround(ground, t int) int {
	if t <= 0 {
		return 0
	}
	return mod(ground, t)
}

// OnBoundary reports whether a pattern cannot be placed at (x,y).
func (s *SolverConfig) OnBoundary(x, y int) bool {
	return OnBoundary(x, y, s.N, s.Width, s.Height, s.Periodic)
}

// TotalWeight returns the sum of all pattern weights.
func (s *SolverConfig) TotalWeight() float64 {
	return floats.Sum(s.Weights)
}

// Seed pins the ground pattern to the bottom row and bans it from every other
// row, then propagates once. It is a no-op without a ground pattern and must
// run on a freshly cleared wave before any observation.
func (s *SolverConfig) Seed(w Wave) error {
	if s.Ground == 0 {
		return nil
	}
	bottom := s.Height - 1
	for x := range s.Width {
		for t := range s.T {
			if t != s.Ground {
				w.Ban(labelOffset(s.Width, x, bottom), t)
			}
		}
		for y := range bottom {
			w.Ban(labelOffset(s.Width, x, y), s.Ground)
		}
	}
	if !w.Propagate() {
		return fmt.Errorf("ground %d: %w", s.Ground, ErrContradiction)
	}
	return nil
}
