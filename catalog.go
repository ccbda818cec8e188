package patternbuilder

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Catalog is the deduplicated, occurrence-weighted set of patterns found in a
// sample. Slots are numbered in first-seen order and the catalog is never
// mutated after BuildCatalog returns.
type Catalog struct {
	N        int
	Symmetry int
	Codec    Codec
	IDs      []PatternID
	Patterns []Pattern
	Weights  []int
	// Origins is the number of scanned window origins.
	Origins int

	slots map[PatternID]int
}

// BuildCatalog extracts every N×N window of g, expands it into its first
// symmetry orientations and deduplicates the result.
//
// With periodicInput every cell is an origin and windows wrap around the
// edges; otherwise only origins whose window fits inside g are scanned.
func BuildCatalog(g Grid, colors, n int, periodicInput bool, symmetry int) (*Catalog, error) {
	if symmetry < 1 || symmetry > MaxSymmetry {
		return nil, fmt.Errorf("catalog: symmetry %d not in [1,%d]: %w", symmetry, MaxSymmetry, ErrInvalidOptions)
	}
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("catalog: empty grid: %w", ErrDegenerateSample)
	}
	codec, err := NewCodec(n, colors)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	xmax, ymax := g.W, g.H
	if !periodicInput {
		xmax, ymax = g.W-n+1, g.H-n+1
	}
	if xmax <= 0 || ymax <= 0 {
		return nil, fmt.Errorf("catalog: %dx%d sample has no %dx%d window: %w", g.W, g.H, n, n, ErrDegenerateSample)
	}

	c := &Catalog{
		N:        n,
		Symmetry: symmetry,
		Codec:    codec,
		slots:    make(map[PatternID]int),
	}
	for y := range ymax {
		for x := range xmax {
			ps := Expand(PatternAt(g, x, y, n), n)
			for k := range symmetry {
				c.add(codec.Encode(ps[k]))
			}
			c.Origins++
		}
	}

	c.Patterns = make([]Pattern, len(c.IDs))
	for slot, id := range c.IDs {
		c.Patterns[slot] = codec.Decode(id)
	}
	Logger().Debug("catalog built",
		"patterns", len(c.IDs), "origins", c.Origins, "colors", colors, "n", n, "symmetry", symmetry)
	return c, nil
}

func (c *Catalog) add(id PatternID) {
	if slot, ok := c.slots[id]; ok {
		c.Weights[slot]++
		return
	}
	c.slots[id] = len(c.IDs)
	c.IDs = append(c.IDs, id)
	c.Weights = append(c.Weights, 1)
}

// Len returns the number of distinct patterns T.
func (c *Catalog) Len() int {
	return len(c.Patterns)
}

// Slot returns the catalog slot of id.
func (c *Catalog) Slot(id PatternID) (int, bool) {
	slot, ok := c.slots[id]
	return slot, ok
}

// FloatWeights returns the weights as selection-probability mass.
func (c *Catalog) FloatWeights() []float64 {
	out := make([]float64, len(c.Weights))
	for i, w := range c.Weights {
		out[i] = float64(w)
	}
	return out
}

// TotalWeight equals Origins*Symmetry.
func (c *Catalog) TotalWeight() int {
	return int(floats.Sum(c.FloatWeights()))
}

// Entropy returns the Shannon entropy (nats) of the normalized weight
// distribution, the starting entropy of every unobserved output cell.
func (c *Catalog) Entropy() float64 {
	p := c.FloatWeights()
	sum := floats.Sum(p)
	if sum == 0 {
		return 0
	}
	floats.Scale(1/sum, p)
	return stat.Entropy(p)
}
