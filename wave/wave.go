// Package wave is an arc-consistency solver for the tables built by
// patternbuilder. It only reads a shared *patternbuilder.SolverConfig, so any
// number of Waves may run concurrently on the same configuration.
package wave

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	pb "github.com/setanarut/patternbuilder"
)

type banned struct {
	i, t int
}

// Wave is the per-attempt output grid state.
type Wave struct {
	cfg *pb.SolverConfig
	rng *rand.Rand

	wave       [][]bool
	compatible [][][4]int
	observed   []int
	stack      []banned
	broken     bool

	weightLogWeights      []float64
	sumOfWeights          float64
	sumOfWeightLogWeights float64
	startingEntropy       float64

	sumsOfOnes             []int
	sumsOfWeights          []float64
	sumsOfWeightLogWeights []float64
	entropies              []float64
	distribution           []float64
}

// New allocates a wave for cfg. The same seed always yields the same run.
func New(cfg *pb.SolverConfig, seed uint64) *Wave {
	cells := cfg.Width * cfg.Height
	w := &Wave{
		cfg:                    cfg,
		rng:                    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		wave:                   make([][]bool, cells),
		compatible:             make([][][4]int, cells),
		weightLogWeights:       make([]float64, cfg.T),
		sumsOfOnes:             make([]int, cells),
		sumsOfWeights:          make([]float64, cells),
		sumsOfWeightLogWeights: make([]float64, cells),
		entropies:              make([]float64, cells),
		distribution:           make([]float64, cfg.T),
	}
	for i := range cells {
		w.wave[i] = make([]bool, cfg.T)
		w.compatible[i] = make([][4]int, cfg.T)
	}
	for t, weight := range cfg.Weights {
		w.weightLogWeights[t] = weight * math.Log(weight)
	}
	w.sumOfWeights = cfg.TotalWeight()
	w.sumOfWeightLogWeights = floats.Sum(w.weightLogWeights)
	w.startingEntropy = math.Log(w.sumOfWeights) - w.sumOfWeightLogWeights/w.sumOfWeights
	return w
}

// Clear resets every cell to all candidates and applies ground seeding.
func (w *Wave) Clear() error {
	for i := range w.wave {
		for t := range w.cfg.T {
			w.wave[i][t] = true
			for _, d := range pb.Directions {
				w.compatible[i][t][d] = len(w.cfg.Propagator[d.Opposite()][t])
			}
		}
		w.sumsOfOnes[i] = w.cfg.T
		w.sumsOfWeights[i] = w.sumOfWeights
		w.sumsOfWeightLogWeights[i] = w.sumOfWeightLogWeights
		w.entropies[i] = w.startingEntropy
	}
	w.observed = nil
	w.stack = w.stack[:0]
	w.broken = false
	return w.cfg.Seed(w)
}

// Ban removes t from cell i and queues the removal for propagation.
func (w *Wave) Ban(i, t int) {
	if !w.wave[i][t] {
		return
	}
	w.wave[i][t] = false
	w.compatible[i][t] = [4]int{}
	w.stack = append(w.stack, banned{i, t})

	w.sumsOfOnes[i]--
	w.sumsOfWeights[i] -= w.cfg.Weights[t]
	w.sumsOfWeightLogWeights[i] -= w.weightLogWeights[t]
	if w.sumsOfOnes[i] == 0 {
		w.broken = true
		return
	}
	sum := w.sumsOfWeights[i]
	w.entropies[i] = math.Log(sum) - w.sumsOfWeightLogWeights[i]/sum
}

// Propagate drains the ban queue and reports false on contradiction.
func (w *Wave) Propagate() bool {
	width, height := w.cfg.Width, w.cfg.Height
	for len(w.stack) > 0 {
		b := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		x1, y1 := b.i%width, b.i/width
		for _, d := range pb.Directions {
			dx, dy := d.Offset()
			x2, y2 := x1+dx, y1+dy
			if w.cfg.OnBoundary(x2, y2) {
				continue
			}
			x2 = (x2 + width) % width
			y2 = (y2 + height) % height
			i2 := x2 + y2*width
			compat := w.compatible[i2]
			for _, t2 := range w.cfg.Propagator[d][b.t] {
				compat[t2][d]--
				if compat[t2][d] == 0 {
					w.Ban(i2, t2)
				}
			}
		}
	}
	return !w.broken
}

// observe collapses the lowest-entropy cell. It returns done once every cell
// is decided or a cell has no candidates left.
func (w *Wave) observe() (done bool, ok bool) {
	if w.broken {
		return true, false
	}
	minEntropy := math.MaxFloat64
	argmin := -1
	for i := range w.wave {
		if w.cfg.OnBoundary(i%w.cfg.Width, i/w.cfg.Width) {
			continue
		}
		amount := w.sumsOfOnes[i]
		if amount == 0 {
			return true, false
		}
		entropy := w.entropies[i]
		if amount > 1 && entropy <= minEntropy {
			noise := 1e-6 * w.rng.Float64()
			if entropy+noise < minEntropy {
				minEntropy = entropy + noise
				argmin = i
			}
		}
	}

	if argmin == -1 {
		w.observed = make([]int, len(w.wave))
		for i := range w.wave {
			for t, possible := range w.wave[i] {
				if possible {
					w.observed[i] = t
					break
				}
			}
		}
		return true, true
	}

	for t := range w.cfg.T {
		w.distribution[t] = 0
		if w.wave[argmin][t] {
			w.distribution[t] = w.cfg.Weights[t]
		}
	}
	r := w.pick(w.distribution)
	for t := range w.cfg.T {
		if w.wave[argmin][t] != (t == r) {
			w.Ban(argmin, t)
		}
	}
	return false, true
}

func (w *Wave) pick(weights []float64) int {
	x := w.rng.Float64() * floats.Sum(weights)
	last := 0
	for t, weight := range weights {
		if weight <= 0 {
			continue
		}
		if x < weight {
			return t
		}
		x -= weight
		last = t
	}
	return last
}

// Run clears the wave and alternates observation and propagation for at
// most limit steps (0 means no limit). A run cut short by limit returns an
// InProgress result suitable for a preview.
func (w *Wave) Run(limit int) pb.Result {
	if err := w.Clear(); err != nil {
		pb.Logger().Warn("ground seeding failed", "err", err)
		return w.snapshot(pb.Contradiction)
	}
	for l := 0; limit == 0 || l < limit; l++ {
		done, ok := w.observe()
		if done {
			if !ok {
				pb.Logger().Debug("contradiction", "step", l)
				return w.snapshot(pb.Contradiction)
			}
			return pb.Result{Status: pb.Collapsed, Observed: w.observed}
		}
		if !w.Propagate() {
			pb.Logger().Debug("contradiction", "step", l)
			return w.snapshot(pb.Contradiction)
		}
	}
	return w.snapshot(pb.InProgress)
}

func (w *Wave) snapshot(s pb.Status) pb.Result {
	cp := make([][]bool, len(w.wave))
	for i, cell := range w.wave {
		cp[i] = append([]bool(nil), cell...)
	}
	return pb.Result{Status: s, Wave: cp}
}
