package patternbuilder

import (
	"errors"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Window size of a pattern.
	// Ideal start: 3. 2 loses structure, 4+ grows the catalog quickly and
	// may overflow the encoding for large palettes.
	N int
	// Output grid size in cells (one cell per pixel).
	Width, Height int
	// Wrap sample reads around the edges. Use for tileable samples.
	PeriodicInput bool
	// Wrap output placements around the edges.
	PeriodicOutput bool
	// Number of orientation variants kept per window, in [1,8].
	// 1 keeps the sample orientation, 8 adds every rotation and reflection.
	Symmetry int
	// Catalog slot pinned to the bottom row. 0 disables it; negative values
	// count from the last slot.
	Ground int
}

func DefaultOptions() Options {
	return Options{
		N:              3,
		Width:          48,
		Height:         48,
		PeriodicInput:  true,
		PeriodicOutput: true,
		Symmetry:       8,
		Ground:         0,
	}
}

// OptionsFromSize derives the output size from the sample size: four times
// the sample, kept within [16,256] per axis.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.Width = max(16, min(256, size.X*4))
	opt.Height = max(16, min(256, size.Y*4))
	return opt
}

func (o Options) Validate() error {
	var errs []error
	if o.N < 1 {
		errs = append(errs, fmt.Errorf("N = %d, want >= 1", o.N))
	}
	if o.Symmetry < 1 || o.Symmetry > MaxSymmetry {
		errs = append(errs, fmt.Errorf("symmetry = %d, want 1..%d", o.Symmetry, MaxSymmetry))
	}
	if o.Width < 1 || o.Height < 1 {
		errs = append(errs, fmt.Errorf("output size = %dx%d, want >= 1x1", o.Width, o.Height))
	} else if !o.PeriodicOutput && o.N >= 1 && (o.Width < o.N || o.Height < o.N) {
		errs = append(errs, fmt.Errorf("output size = %dx%d, want >= %dx%d without periodic output", o.Width, o.Height, o.N, o.N))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// PatternBuilder turns a sample into the immutable tables an external solver
// runs on, and turns solver results back into images.
type PatternBuilder struct {
	InputImage image.Image
	Sample     [][]colorful.Color // [y][x]
	Palette    *Palette[colorful.Color]
	Grid       Grid
	Catalog    *Catalog
	Adjacency  *Adjacency
	Options    Options
}

func NewPatternBuilder(input image.Image) *PatternBuilder {
	return &PatternBuilder{
		InputImage: input,
		Sample:     makeColorGrid(input),
	}
}

// NewPatternBuilderFromColors starts from an already decoded colour grid.
func NewPatternBuilderFromColors(sample [][]colorful.Color) *PatternBuilder {
	return &PatternBuilder{Sample: sample}
}

// Build quantizes the sample and computes the catalog and adjacency tables.
func (pb *PatternBuilder) Build(opt Options) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	palette, grid, err := Quantize(pb.Sample)
	if err != nil {
		return err
	}
	catalog, err := BuildCatalog(grid, palette.Len(), opt.N, opt.PeriodicInput, opt.Symmetry)
	if err != nil {
		return err
	}
	pb.Options = opt
	pb.Palette = palette
	pb.Grid = grid
	pb.Catalog = catalog
	pb.Adjacency = BuildAdjacency(catalog.Patterns, opt.N)
	Logger().Info("pattern tables built",
		"colors", palette.Len(), "patterns", catalog.Len(), "entropy", catalog.Entropy())
	return nil
}

// Config returns the solver configuration for the built tables.
func (pb *PatternBuilder) Config() (*SolverConfig, error) {
	if pb.Catalog == nil {
		return nil, fmt.Errorf("config: tables not built: %w", ErrDegenerateSample)
	}
	o := pb.Options
	return NewSolverConfig(pb.Catalog, pb.Adjacency, o.Width, o.Height, o.PeriodicOutput, o.Ground)
}

// Colors reconstructs the row-major output colours of res.
func (pb *PatternBuilder) Colors(cfg *SolverConfig, res Result) ([]colorful.Color, error) {
	switch res.Status {
	case Collapsed:
		return Reconstruct(cfg, pb.Catalog.Patterns, pb.Palette, res.Observed), nil
	case InProgress:
		return Preview(cfg, pb.Catalog.Patterns, pb.Palette, res.Wave), nil
	default:
		return nil, ErrContradiction
	}
}

// Image is Colors packed into an *image.RGBA.
func (pb *PatternBuilder) Image(cfg *SolverConfig, res Result) (*image.RGBA, error) {
	colors, err := pb.Colors(cfg, res)
	if err != nil {
		return nil, err
	}
	return ToRGBA(colors, cfg.Width, cfg.Height), nil
}

func makeColorGrid(img image.Image) [][]colorful.Color {
	bounds := img.Bounds()
	h := bounds.Dy()
	w := bounds.Dx()
	out := make([][]colorful.Color, h)
	for y := range h {
		out[y] = make([]colorful.Color, w)
		for x := range w {
			// Fully transparent pixels stay black.
			c, _ := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			out[y][x] = c
		}
	}
	return out
}
