package patternbuilder_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	pb "github.com/setanarut/patternbuilder"
)

// runeSample turns rows of runes into a [y][x] sample.
func runeSample(rows ...string) [][]rune {
	out := make([][]rune, len(rows))
	for y, r := range rows {
		out[y] = []rune(r)
	}
	return out
}

func quantize(t *testing.T, rows ...string) (*pb.Palette[rune], pb.Grid) {
	t.Helper()
	p, g, err := pb.Quantize(runeSample(rows...))
	require.NoError(t, err)
	return p, g
}

// randomGrid returns a w×h grid over colors indices from a fixed seed.
func randomGrid(w, h, colors int, seed uint64) pb.Grid {
	r := rand.New(rand.NewPCG(seed, seed))
	g := pb.Grid{W: w, H: h, Cells: make([]int, w*h)}
	for i := range g.Cells {
		g.Cells[i] = r.IntN(colors)
	}
	return g
}
