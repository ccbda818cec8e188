package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pb "github.com/setanarut/patternbuilder"
	"github.com/setanarut/patternbuilder/internal/config"
	"github.com/setanarut/patternbuilder/utils"
	"github.com/setanarut/patternbuilder/wave"
)

var runCmd = &cobra.Command{
	Use:   "run <sample>",
	Short: "Synthesize an image from a sample",
	Long: `Build the pattern tables of a sample once, then run independent solve
attempts on them until one collapses. On failure the blended state of the last
attempt is written next to the output for inspection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		watch, _ := cmd.Flags().GetBool("watch")
		err = synthesize(args[0], cfg)
		if !watch {
			return err
		}
		if err != nil {
			pb.Logger().Error("synthesis failed", "err", err)
		}
		return watchSample(args[0], cfg)
	},
}

func init() {
	def := pb.DefaultOptions()
	f := runCmd.Flags()
	f.Int("width", def.Width, "output width in cells")
	f.Int("height", def.Height, "output height in cells")
	f.Uint64("seed", 1, "seed of the first attempt")
	f.Int("attempts", 10, "independent solve attempts")
	f.Int("workers", 4, "attempts run in parallel")
	f.Int("limit", 0, "observation steps per attempt (0 = until done)")
	f.Int("scale", 1, "integer upscale factor of the written image")
	f.StringP("output", "o", "out.png", "output PNG path")
	f.Bool("watch", false, "re-run whenever the sample file changes")

	for key, flag := range map[string]string{
		"width":    "width",
		"height":   "height",
		"seed":     "seed",
		"attempts": "attempts",
		"workers":  "workers",
		"limit":    "limit",
		"scale":    "scale",
		"output":   "output",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	rootCmd.AddCommand(runCmd)
}

func synthesize(path string, cfg config.Config) error {
	b, err := buildTables(path, cfg)
	if err != nil {
		return err
	}
	solverCfg, err := b.Config()
	if err != nil {
		return err
	}

	attempt, solveErr := wave.RunAttempts(solverCfg, cfg.Seeds(), cfg.Limit, cfg.Workers)
	if errors.Is(solveErr, pb.ErrContradiction) || errors.Is(solveErr, pb.ErrIncomplete) {
		colors := pb.Preview(solverCfg, b.Catalog.Patterns, b.Palette, attempt.Result.Wave)
		preview := previewPath(cfg.Output, attempt.Result.Status)
		if err := utils.SaveImageScaled(pb.ToRGBA(colors, solverCfg.Width, solverCfg.Height), cfg.Scale, preview); err != nil {
			return errors.Join(solveErr, err)
		}
		return fmt.Errorf("%w (state written to %s)", solveErr, preview)
	}
	if solveErr != nil {
		return solveErr
	}

	img, err := b.Image(solverCfg, attempt.Result)
	if err != nil {
		return err
	}
	if err := utils.SaveImageScaled(img, cfg.Scale, cfg.Output); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	pb.Logger().Info("image written", "path", cfg.Output, "seed", attempt.Seed, "status", attempt.Result.Status)
	return nil
}

func previewPath(output string, s pb.Status) string {
	suffix := ".contradiction.png"
	if s == pb.InProgress {
		suffix = ".partial.png"
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + suffix
}

// watchSample re-runs synthesis on every write to the sample until the
// watcher is closed.
func watchSample(path string, cfg config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pb.Logger().Info("sample changed", "path", path)
			if err := synthesize(path, cfg); err != nil {
				pb.Logger().Error("synthesis failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			pb.Logger().Warn("watch error", "err", err)
		}
	}
}
