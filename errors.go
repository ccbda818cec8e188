package patternbuilder

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateSample indicates an empty or ragged sample, or a sample that
	// yields no pattern for the requested window size.
	ErrDegenerateSample = errors.New("patternbuilder: sample yields no patterns")
	// ErrEncodingOverflow indicates C^(N*N) does not fit in a PatternID.
	ErrEncodingOverflow = errors.New("patternbuilder: pattern encoding overflows uint64")
	// ErrContradiction indicates some output cell was left with no candidate pattern.
	ErrContradiction = errors.New("patternbuilder: contradiction")
	// ErrIncomplete indicates a solve stopped at its step limit before every
	// cell was decided.
	ErrIncomplete = errors.New("patternbuilder: solve stopped before collapse")
	// ErrInvalidOptions indicates an out-of-range option value.
	ErrInvalidOptions = errors.New("patternbuilder: invalid options")
)

// OverflowError reports the palette size and window size whose address
// space does not fit in a PatternID.
type OverflowError struct {
	Colors int
	N      int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("patternbuilder: %d^(%d*%d) patterns overflow uint64", e.Colors, e.N, e.N)
}

func (e *OverflowError) Unwrap() error { return ErrEncodingOverflow }
