package utils

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	pb "github.com/setanarut/patternbuilder"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by String.
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch s {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "":
		return PaletteMethodDominantColor, true
	default:
		return PaletteMethodDominantColor, false
	}
}

type weightedColor struct {
	col    colorful.Color
	lab    [3]float64
	weight float64
}

func newWeightedColor(c colorful.Color, w float64) weightedColor {
	c = c.Clamped()
	l, a, b := c.Lab()
	if w <= 0 {
		w = 1e-6
	}
	return weightedColor{col: c, lab: [3]float64{l, a, b}, weight: w}
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ya, yb := luminance(a), luminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ExtractPalette reduces img to at most k representative colours. An empty
// kmeans result falls back to dominantcolor.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := extractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		pb.Logger().Warn("kmeans returned empty palette, falling back to dominantcolor")
	}
	return extractDominantPalette(img, k)
}

func extractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, newWeightedColor(col, c.Weight))
	}
	return selectDiverse(weighted, k)
}

func extractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Samples are small; subsample only large photos.
	const maxSamples = 12000
	step := 1
	if b.Dx()*b.Dy() > maxSamples {
		step = int(math.Sqrt(float64(b.Dx()*b.Dy())/maxSamples)) + 1
	}
	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(bl) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(max(k*4, k+2), len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		weighted = append(weighted, newWeightedColor(col, float64(len(c.Observations))))
	}
	return selectDiverse(weighted, k)
}

// selectDiverse seeds with the heaviest colour, then greedily adds the
// candidate farthest in Lab from the current selection, biased by weight.
func selectDiverse(items []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	k = min(k, len(items))
	maxW := 0.0
	seed := 0
	for i, it := range items {
		if it.weight > maxW {
			maxW = it.weight
			seed = i
		}
	}

	selected := make([]bool, len(items))
	selected[seed] = true
	picked := []int{seed}
	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		selected[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, idx := range picked {
		out[i] = items[idx].col
	}
	return out
}

// SnapToPalette replaces every pixel of img by its nearest palette colour in
// Lab space and returns the result as a [y][x] grid ready for
// patternbuilder.NewPatternBuilderFromColors.
func SnapToPalette(img image.Image, palette []colorful.Color) [][]colorful.Color {
	if len(palette) == 0 {
		return nil
	}
	b := img.Bounds()
	out := make([][]colorful.Color, b.Dy())
	cache := make(map[color.RGBA]colorful.Color)
	for y := range b.Dy() {
		out[y] = make([]colorful.Color, b.Dx())
		for x := range b.Dx() {
			key := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			if c, ok := cache[key]; ok {
				out[y][x] = c
				continue
			}
			src, _ := colorful.MakeColor(key)
			nearest := palette[0]
			best := math.MaxFloat64
			for _, p := range palette {
				if d := src.DistanceLab(p); d < best {
					best, nearest = d, p
				}
			}
			cache[key] = nearest
			out[y][x] = nearest
		}
	}
	return out
}
