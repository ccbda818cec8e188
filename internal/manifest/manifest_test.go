package manifest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/setanarut/patternbuilder"
	"github.com/setanarut/patternbuilder/internal/manifest"
)

func builtTables(t *testing.T) *pb.PatternBuilder {
	t.Helper()
	black, _ := colorful.Hex("#000000")
	white, _ := colorful.Hex("#ffffff")
	b := pb.NewPatternBuilderFromColors([][]colorful.Color{
		{black, black},
		{black, white},
	})
	opt := pb.DefaultOptions()
	opt.N = 2
	opt.Symmetry = 1
	opt.Ground = -1
	require.NoError(t, b.Build(opt))
	return b
}

func TestNew(t *testing.T) {
	m, err := manifest.New(builtTables(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"#000000", "#ffffff"}, m.Palette)
	assert.Equal(t, 3, m.Options.Ground)
	assert.Equal(t, 4, m.Origins)
	require.Len(t, m.Patterns, 4)
	assert.Equal(t, manifest.Pattern{
		Slot:   0,
		ID:     "1",
		Weight: 1,
		Cells:  []int{0, 0, 0, 1},
		Compat: manifest.Compat{Left: 2, Down: 1, Right: 1, Up: 2},
	}, m.Patterns[0])
}

func TestNew_DirectionDensities(t *testing.T) {
	b := builtTables(t)
	m, err := manifest.New(b)
	require.NoError(t, err)

	pairs := func(d pb.Direction) float64 {
		n := 0
		for _, l := range b.Adjacency.Compat[d] {
			n += len(l)
		}
		return float64(n) / 16
	}
	assert.InDelta(t, pairs(pb.Left), m.Per.Left, 1e-12)
	assert.InDelta(t, pairs(pb.Down), m.Per.Down, 1e-12)
	assert.InDelta(t, m.Per.Left, m.Per.Right, 1e-12)
	assert.InDelta(t, m.Per.Down, m.Per.Up, 1e-12)
	mean := (m.Per.Left + m.Per.Down + m.Per.Right + m.Per.Up) / 4
	assert.InDelta(t, m.Density, mean, 1e-12)
}

func TestWriteRead(t *testing.T) {
	m, err := manifest.New(builtTables(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, manifest.Write(&buf, m))
	assert.True(t, strings.Contains(buf.String(), "[[pattern]]"))

	got, err := manifest.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestNew_Unbuilt(t *testing.T) {
	_, err := manifest.New(pb.NewPatternBuilderFromColors(nil))
	assert.Error(t, err)
}

func TestRead_Invalid(t *testing.T) {
	_, err := manifest.Read(strings.NewReader("{{invalid toml"))
	assert.Error(t, err)
}
