package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/setanarut/patternbuilder/internal/config"
	"github.com/setanarut/patternbuilder/internal/manifest"
	"github.com/setanarut/patternbuilder/utils"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog <sample>",
	Short: "Print the pattern catalog of a sample as TOML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		b, err := buildTables(args[0], cfg)
		if err != nil {
			return err
		}
		m, err := manifest.New(b)
		if err != nil {
			return err
		}

		if swatch, _ := cmd.Flags().GetString("palette"); swatch != "" {
			if err := utils.SavePalette(b.Palette.Colors, 32, swatch); err != nil {
				return fmt.Errorf("write %s: %w", swatch, err)
			}
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return manifest.Write(out, m)
	},
}

func init() {
	catalogCmd.Flags().String("out", "", "write the manifest to this file instead of stdout")
	catalogCmd.Flags().String("palette", "", "also write a palette swatch PNG to this path")
	rootCmd.AddCommand(catalogCmd)
}
