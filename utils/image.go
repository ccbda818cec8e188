package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ReadImage decodes a png, jpeg, gif or bmp sample.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveImageScaled upscales img by an integer factor with nearest-neighbour
// sampling so individual cells stay crisp.
func SaveImageScaled(img image.Image, scale int, filename string) error {
	if scale <= 1 {
		return SaveImage(img, filename)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return SaveImage(dst, filename)
}

// SavePalette writes one tileSize square swatch per colour, left to right.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		swatch := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		draw.Draw(img, swatch, &image.Uniform{C: color.RGBA{R: r, G: g, B: b, A: 255}}, image.Point{}, draw.Src)
	}
	return SaveImage(img, filename)
}
