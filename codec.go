package patternbuilder

import (
	"fmt"
	"math/bits"
)

// Pattern is an N×N block of palette indices in row-major order.
type Pattern []int

// PatternID is the base-C positional encoding of a Pattern. The first cell
// carries the most significant digit.
type PatternID uint64

// Codec encodes and decodes patterns for a fixed window size and palette size.
type Codec struct {
	N      int
	Colors int
	top    uint64 // weight of the first cell, C^(N*N-1)
}

// NewCodec returns a Codec for N×N patterns over a palette of the given size.
// It fails with an *OverflowError when C^(N*N)-1 does not fit in a PatternID.
func NewCodec(n, colors int) (Codec, error) {
	if n < 1 {
		return Codec{}, fmt.Errorf("codec: window size %d: %w", n, ErrInvalidOptions)
	}
	if colors < 1 {
		return Codec{}, fmt.Errorf("codec: empty palette: %w", ErrDegenerateSample)
	}
	c := uint64(colors)
	top := uint64(1)
	for range n*n - 1 {
		hi, lo := bits.Mul64(top, c)
		if hi != 0 {
			return Codec{}, &OverflowError{Colors: colors, N: n}
		}
		top = lo
	}
	// The full span C*top may equal 2^64 exactly; only the largest id must fit.
	if hi, lo := bits.Mul64(top, c); hi > 1 || (hi == 1 && lo != 0) {
		return Codec{}, &OverflowError{Colors: colors, N: n}
	}
	return Codec{N: n, Colors: colors, top: top}, nil
}

// Encode returns the canonical id of p.
func (c Codec) Encode(p Pattern) PatternID {
	var id, power uint64 = 0, 1
	for i := len(p) - 1; i >= 0; i-- {
		id += uint64(p[i]) * power
		power *= uint64(c.Colors)
	}
	return PatternID(id)
}

// Decode is the inverse of Encode.
func (c Codec) Decode(id PatternID) Pattern {
	p := make(Pattern, c.N*c.N)
	residue := uint64(id)
	power := c.top
	for i := range p {
		p[i] = int(residue / power)
		residue %= power
		if i < len(p)-1 {
			power /= uint64(c.Colors)
		}
	}
	return p
}
