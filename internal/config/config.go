package config

import (
	"fmt"

	"github.com/spf13/viper"

	pb "github.com/setanarut/patternbuilder"
)

// Config holds all runtime configuration for a synthesis run.
// Values are populated from .patternbuilder.yaml, PATTERNBUILDER_* env vars, and CLI flags.
type Config struct {
	N              int    `mapstructure:"n"`
	Width          int    `mapstructure:"width"`
	Height         int    `mapstructure:"height"`
	PeriodicInput  bool   `mapstructure:"periodic_input"`
	PeriodicOutput bool   `mapstructure:"periodic_output"`
	Symmetry       int    `mapstructure:"symmetry"`
	Ground         int    `mapstructure:"ground"`
	Seed           uint64 `mapstructure:"seed"`
	Attempts       int    `mapstructure:"attempts"`
	Workers        int    `mapstructure:"workers"`
	Limit          int    `mapstructure:"limit"`
	Scale          int    `mapstructure:"scale"`
	Colors         int    `mapstructure:"colors"`
	PaletteMethod  string `mapstructure:"palette_method"`
	Output         string `mapstructure:"output"`
	Verbose        bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	def := pb.DefaultOptions()
	viper.SetDefault("n", def.N)
	viper.SetDefault("width", def.Width)
	viper.SetDefault("height", def.Height)
	viper.SetDefault("periodic_input", def.PeriodicInput)
	viper.SetDefault("periodic_output", def.PeriodicOutput)
	viper.SetDefault("symmetry", def.Symmetry)
	viper.SetDefault("ground", def.Ground)
	viper.SetDefault("seed", 1)
	viper.SetDefault("attempts", 10)
	viper.SetDefault("workers", 4)
	viper.SetDefault("limit", 0)
	viper.SetDefault("scale", 1)
	viper.SetDefault("colors", 0)
	viper.SetDefault("palette_method", "dominantcolor")
	viper.SetDefault("output", "out.png")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Options returns the table-building subset of cfg.
func (c Config) Options() pb.Options {
	return pb.Options{
		N:              c.N,
		Width:          c.Width,
		Height:         c.Height,
		PeriodicInput:  c.PeriodicInput,
		PeriodicOutput: c.PeriodicOutput,
		Symmetry:       c.Symmetry,
		Ground:         c.Ground,
	}
}

// Seeds returns Attempts consecutive seeds starting at Seed.
func (c Config) Seeds() []uint64 {
	seeds := make([]uint64, max(1, c.Attempts))
	for i := range seeds {
		seeds[i] = c.Seed + uint64(i)
	}
	return seeds
}
