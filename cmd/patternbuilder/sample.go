package main

import (
	"fmt"

	pb "github.com/setanarut/patternbuilder"
	"github.com/setanarut/patternbuilder/internal/config"
	"github.com/setanarut/patternbuilder/utils"
)

// buildTables decodes the sample at path, optionally reduces it to a small
// palette, and builds the pattern tables.
func buildTables(path string, cfg config.Config) (*pb.PatternBuilder, error) {
	img, err := utils.ReadImage(path)
	if err != nil {
		return nil, err
	}

	var b *pb.PatternBuilder
	if cfg.Colors > 0 {
		method, ok := utils.ParsePaletteMethod(cfg.PaletteMethod)
		if !ok {
			return nil, fmt.Errorf("unknown palette method %q", cfg.PaletteMethod)
		}
		palette := utils.ExtractPalette(img, cfg.Colors, method)
		utils.SortPaletteByBrightness(palette)
		b = pb.NewPatternBuilderFromColors(utils.SnapToPalette(img, palette))
	} else {
		b = pb.NewPatternBuilder(img)
	}

	if err := b.Build(cfg.Options()); err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return b, nil
}
