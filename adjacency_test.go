package patternbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	pb "github.com/setanarut/patternbuilder"
)

func TestDirection(t *testing.T) {
	cases := []struct {
		d      pb.Direction
		dx, dy int
		opp    pb.Direction
		name   string
	}{
		{pb.Left, -1, 0, pb.Right, "left"},
		{pb.Down, 0, 1, pb.Up, "down"},
		{pb.Right, 1, 0, pb.Left, "right"},
		{pb.Up, 0, -1, pb.Down, "up"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy := tc.d.Offset()
			assert.Equal(t, tc.dx, dx)
			assert.Equal(t, tc.dy, dy)
			assert.Equal(t, tc.opp, tc.d.Opposite())
			assert.Equal(t, tc.d, tc.d.Opposite().Opposite())
			assert.Equal(t, tc.name, tc.d.String())
		})
	}
}

func TestAgrees(t *testing.T) {
	stripes := pb.Pattern{
		0, 1,
		0, 1,
	}
	ones := pb.Pattern{
		1, 1,
		1, 1,
	}
	assert.True(t, pb.Agrees(stripes, ones, 1, 0, 2))
	assert.False(t, pb.Agrees(stripes, ones, -1, 0, 2))
	assert.False(t, pb.Agrees(stripes, ones, 0, 1, 2))
	assert.True(t, pb.Agrees(ones, stripes, -1, 0, 2))
	// Disjoint windows always agree.
	assert.True(t, pb.Agrees(stripes, ones, 2, 0, 2))
}

func catalogOf(t *testing.T, n int) *pb.Catalog {
	t.Helper()
	c, err := pb.BuildCatalog(randomGrid(7, 7, 3, 21), 3, n, true, 8)
	require.NoError(t, err)
	return c
}

func TestAdjacency_SymmetricLaw(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		c := catalogOf(t, n)
		a := pb.BuildAdjacency(c.Patterns, n)
		require.Equal(t, c.Len(), a.T)
		for _, d := range pb.Directions {
			for t1 := range a.T {
				for t2 := range a.T {
					require.Equal(t, a.Compatible(d, t1, t2), a.Compatible(d.Opposite(), t2, t1),
						"n=%d d=%v t=%d t2=%d", n, d, t1, t2)
				}
			}
		}
	}
}

func TestAdjacency_MatchesAgrees(t *testing.T) {
	c := catalogOf(t, 3)
	a := pb.BuildAdjacency(c.Patterns, 3)
	for _, d := range pb.Directions {
		dx, dy := d.Offset()
		for t1, p1 := range c.Patterns {
			var want []int
			for t2, p2 := range c.Patterns {
				if pb.Agrees(p1, p2, dx, dy, 3) {
					want = append(want, t2)
				}
			}
			assert.Equal(t, want, a.Compat[d][t1], "d=%v t=%d", d, t1)
		}
	}
}

func TestAdjacency_MatrixTranspose(t *testing.T) {
	c := catalogOf(t, 2)
	a := pb.BuildAdjacency(c.Patterns, 2)
	for _, d := range pb.Directions {
		assert.True(t, mat.Equal(a.Matrix(d), a.Matrix(d.Opposite()).T()), "d=%v", d)
	}
}

func TestAdjacency_ConstantPatternSelfCompatible(t *testing.T) {
	patterns := []pb.Pattern{
		{2, 2, 2, 2, 2, 2, 2, 2, 2},
		{0, 1, 2, 0, 1, 2, 0, 1, 2},
	}
	a := pb.BuildAdjacency(patterns, 3)
	for _, d := range pb.Directions {
		assert.True(t, a.Compatible(d, 0, 0), "d=%v", d)
	}
	assert.False(t, a.Compatible(pb.Right, 1, 1))
	assert.True(t, a.Compatible(pb.Up, 1, 1))
}

func TestAdjacency_Density(t *testing.T) {
	a := pb.BuildAdjacency([]pb.Pattern{{0}, {1}}, 1)
	// Single cells never overlap a neighbour, so everything agrees.
	assert.InDelta(t, 1.0, a.Density(), 1e-12)
	assert.Nil(t, pb.BuildAdjacency(nil, 2).Matrix(pb.Left))
	for _, d := range pb.Directions {
		assert.InDelta(t, 1.0, a.DirectionDensity(d), 1e-12, "d=%v", d)
	}
	assert.Zero(t, pb.BuildAdjacency(nil, 2).DirectionDensity(pb.Up))
}

func BenchmarkBuildAdjacency(b *testing.B) {
	c, err := pb.BuildCatalog(randomGrid(16, 16, 4, 1), 4, 3, true, 8)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for b.Loop() {
		pb.BuildAdjacency(c.Patterns, 3)
	}
}
