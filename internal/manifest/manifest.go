// Package manifest renders built pattern tables as a TOML document for
// inspection and diffing between runs.
package manifest

import (
	"fmt"
	"io"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	pb "github.com/setanarut/patternbuilder"
)

// Options mirrors the configuration surface the tables were built with.
type Options struct {
	N              int  `toml:"n"`
	PeriodicInput  bool `toml:"periodic_input"`
	PeriodicOutput bool `toml:"periodic_output"`
	Symmetry       int  `toml:"symmetry"`
	Ground         int  `toml:"ground"`
}

// Compat holds the compatibility set sizes of one pattern.
type Compat struct {
	Left  int `toml:"left"`
	Down  int `toml:"down"`
	Right int `toml:"right"`
	Up    int `toml:"up"`
}

// Densities holds the agreement density of each direction.
type Densities struct {
	Left  float64 `toml:"left"`
	Down  float64 `toml:"down"`
	Right float64 `toml:"right"`
	Up    float64 `toml:"up"`
}

// Pattern is one catalog slot.
type Pattern struct {
	Slot   int    `toml:"slot"`
	ID     string `toml:"id"` // hex, PatternIDs may exceed int64
	Weight int    `toml:"weight"`
	Cells  []int  `toml:"cells"`
	Compat Compat `toml:"compat"`
}

// Manifest is the TOML document.
type Manifest struct {
	Options  Options   `toml:"options"`
	Palette  []string  `toml:"palette"`
	Origins  int       `toml:"origins"`
	Entropy  float64   `toml:"entropy"`
	Density  float64   `toml:"density"`
	Per      Densities `toml:"densities"`
	Patterns []Pattern `toml:"pattern"`
}

// New describes the tables held by a built PatternBuilder.
func New(b *pb.PatternBuilder) (*Manifest, error) {
	if b.Catalog == nil || b.Adjacency == nil {
		return nil, fmt.Errorf("manifest: tables not built")
	}
	o := b.Options
	m := &Manifest{
		Options: Options{
			N:              o.N,
			PeriodicInput:  o.PeriodicInput,
			PeriodicOutput: o.PeriodicOutput,
			Symmetry:       o.Symmetry,
			Ground:         pb.NormalizeGround(o.Ground, b.Catalog.Len()),
		},
		Origins: b.Catalog.Origins,
		Entropy: b.Catalog.Entropy(),
		Density: b.Adjacency.Density(),
		Per: Densities{
			Left:  b.Adjacency.DirectionDensity(pb.Left),
			Down:  b.Adjacency.DirectionDensity(pb.Down),
			Right: b.Adjacency.DirectionDensity(pb.Right),
			Up:    b.Adjacency.DirectionDensity(pb.Up),
		},
	}
	for _, c := range b.Palette.Colors {
		m.Palette = append(m.Palette, c.Clamped().Hex())
	}
	compat := b.Adjacency.Compat
	for t, p := range b.Catalog.Patterns {
		m.Patterns = append(m.Patterns, Pattern{
			Slot:   t,
			ID:     strconv.FormatUint(uint64(b.Catalog.IDs[t]), 16),
			Weight: b.Catalog.Weights[t],
			Cells:  append([]int(nil), p...),
			Compat: Compat{
				Left:  len(compat[pb.Left][t]),
				Down:  len(compat[pb.Down][t]),
				Right: len(compat[pb.Right][t]),
				Up:    len(compat[pb.Up][t]),
			},
		})
	}
	return m, nil
}

// Write encodes m as TOML.
func Write(w io.Writer, m *Manifest) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return nil
}

// Read decodes a manifest written by Write.
func Read(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	return &m, nil
}
