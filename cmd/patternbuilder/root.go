package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pb "github.com/setanarut/patternbuilder"
)

var rootCmd = &cobra.Command{
	Use:   "patternbuilder",
	Short: "Overlapping-model texture synthesis from a small sample",
	Long: `patternbuilder extracts every NxN pattern of a sample image, computes which
patterns may sit next to each other, and synthesizes new images that are
locally similar to the sample.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		pb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	def := pb.DefaultOptions()
	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file (default .patternbuilder.yaml)")
	f.BoolP("verbose", "v", false, "verbose output")
	f.IntP("window", "n", def.N, "pattern window size N")
	f.Bool("periodic-input", def.PeriodicInput, "wrap sample reads around the edges")
	f.Bool("periodic-output", def.PeriodicOutput, "wrap output placements around the edges")
	f.Int("symmetry", def.Symmetry, "orientation variants per window (1-8)")
	f.Int("ground", def.Ground, "pattern slot pinned to the bottom row (0 = none)")
	f.Int("colors", 0, "pre-quantize the sample to this many colors (0 = keep exact colors)")
	f.String("palette-method", "dominantcolor", "pre-quantization method: dominantcolor or kmeans")

	for key, flag := range map[string]string{
		"verbose":         "verbose",
		"n":               "window",
		"periodic_input":  "periodic-input",
		"periodic_output": "periodic-output",
		"symmetry":        "symmetry",
		"ground":          "ground",
		"colors":          "colors",
		"palette_method":  "palette-method",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".patternbuilder")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PATTERNBUILDER")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
