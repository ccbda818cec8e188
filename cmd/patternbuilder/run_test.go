package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/setanarut/patternbuilder"
	"github.com/setanarut/patternbuilder/internal/config"
	"github.com/setanarut/patternbuilder/utils"
)

func writeStripes(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			c := color.RGBA{R: 200, A: 255}
			if x%2 == 1 {
				c = color.RGBA{G: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "stripes.png")
	require.NoError(t, utils.SaveImage(img, path))
	return path
}

func testConfig(dir string) config.Config {
	return config.Config{
		N:              2,
		Width:          8,
		Height:         6,
		PeriodicInput:  true,
		PeriodicOutput: true,
		Symmetry:       1,
		Seed:           1,
		Attempts:       2,
		Workers:        2,
		Scale:          2,
		Output:         filepath.Join(dir, "out.png"),
	}
}

func TestSynthesize(t *testing.T) {
	dir := t.TempDir()
	sample := writeStripes(t, dir)
	cfg := testConfig(dir)
	require.NoError(t, synthesize(sample, cfg))

	img, err := utils.ReadImage(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())
}

func TestSynthesize_PreQuantized(t *testing.T) {
	dir := t.TempDir()
	sample := writeStripes(t, dir)
	cfg := testConfig(dir)
	cfg.Colors = 2
	cfg.PaletteMethod = "dominantcolor"
	require.NoError(t, synthesize(sample, cfg))
	_, err := os.Stat(cfg.Output)
	assert.NoError(t, err)

	cfg.PaletteMethod = "median-cut"
	assert.Error(t, synthesize(sample, cfg))
}

func TestSynthesize_MissingSample(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, synthesize(filepath.Join(dir, "nope.png"), testConfig(dir)))
}

func TestSynthesize_StepLimit(t *testing.T) {
	dir := t.TempDir()
	sample := writeStripes(t, dir)
	cfg := testConfig(dir)
	cfg.Limit = 1

	err := synthesize(sample, cfg)
	assert.ErrorIs(t, err, pb.ErrIncomplete)
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))

	img, err := utils.ReadImage(filepath.Join(dir, "out.partial.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, "out/result.contradiction.png", previewPath("out/result.png", pb.Contradiction))
	assert.Equal(t, "result.contradiction.png", previewPath("result", pb.Contradiction))
	assert.Equal(t, "out/result.partial.png", previewPath("out/result.png", pb.InProgress))
}
