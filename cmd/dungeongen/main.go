package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/config"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/connectivity"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/dungeon"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/logger"
)

type options struct {
	configPath    string
	logConfigPath string
	generator     string
	seed          int64
	levels        int
	resolve       bool
	verify        bool
	outputFile    string
	color         bool
	features      bool

	// names of flags given on the command line
	set map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a generator preset YAML file")
	flag.StringVar(&opts.logConfigPath, "logconfig", "", "Path to a logging YAML file")
	flag.StringVar(&opts.generator, "generator", "", "Generator: bsp, cave, growth, rooms or walk")
	flag.Int64Var(&opts.seed, "seed", 0, "Base seed (-1 for a time-based seed)")
	flag.IntVar(&opts.levels, "levels", 0, "Number of levels to generate")
	flag.BoolVar(&opts.resolve, "resolve", false, "Join disconnected regions with corridors")
	flag.BoolVar(&opts.verify, "verify", false, "Check each level is a single connected region")
	flag.StringVar(&opts.outputFile, "out", "", "Output file (empty for stdout)")
	flag.BoolVar(&opts.color, "color", true, "Color terminal output")
	flag.BoolVar(&opts.features, "features", false, "Mark room walls and pillars")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logCfg, err := logger.LoadConfig(opts.logConfigPath)
	if err != nil {
		return err
	}
	closer, err := logger.Initialize(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := loadGeneratorConfig(opts)
	if err != nil {
		return err
	}

	gen, err := dungeon.DefaultRegistry().New(cfg)
	if err != nil {
		return err
	}

	logger.Info("generating", "generator", gen.Name(), "seed", cfg.Seed, "levels", cfg.Levels)
	levels, err := dungeon.GenerateLevels(context.Background(), gen, cfg.Seed, cfg.Levels)
	if err != nil {
		return err
	}

	toFile := opts.outputFile != ""
	render := renderOptions{
		Color:    opts.color && !toFile,
		Features: opts.features,
	}
	if !toFile {
		render.MaxWidth = terminalWidth()
	}

	var output strings.Builder
	var disconnected int
	for _, l := range levels {
		renderLevel(&output, l, render)
		output.WriteString(summary(l) + "\n")

		if opts.verify {
			n, err := connectivity.Verify(l.Grid)
			switch {
			case errors.Is(err, connectivity.ErrDisconnected):
				disconnected++
				logger.Warningf("level %d has %d disconnected regions", l.Level, n)
				msg := fmt.Sprintf("level %d: %d disconnected regions", l.Level, n)
				if render.Color {
					msg = colorWarn.Sprint(msg)
				}
				output.WriteString(msg + "\n")
			case err != nil:
				return err
			}
		}
		output.WriteString("\n")
	}

	floor := 0
	for _, l := range levels {
		floor += l.Grid.Count(grid.Floor)
	}
	logger.Always("run complete", "generator", gen.Name(), "levels", len(levels), "floor", floor, "disconnected", disconnected)

	if toFile {
		if err := os.WriteFile(opts.outputFile, []byte(output.String()), 0644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		fmt.Printf("Map written to %s\n", opts.outputFile)
	} else {
		fmt.Print(output.String())
	}

	if disconnected > 0 {
		return fmt.Errorf("%w: %d of %d levels", connectivity.ErrDisconnected, disconnected, len(levels))
	}
	return nil
}

// loadGeneratorConfig reads the preset file and applies command-line overrides
func loadGeneratorConfig(opts options) (*config.GeneratorConfig, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.set["generator"] {
		cfg.Generator = opts.generator
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["levels"] {
		cfg.Levels = opts.levels
	}
	if opts.set["resolve"] {
		resolve := opts.resolve
		cfg.Resolve = &resolve
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
