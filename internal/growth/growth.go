// Package growth grows blob-shaped rooms outward from a seed cell.
package growth

import (
	"errors"
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

var (
	ErrInvalidConfig = errors.New("growth: invalid configuration")
)

// Config contains parameters for frontier growth
type Config struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	TargetTileCount int `yaml:"target_tile_count"`

	// Seed is used by Generate only. Runs built from a preset take their
	// stream from the level seed instead. Negative picks a fresh seed.
	Seed int64 `yaml:"-"`
}

// DefaultConfig returns the standard 20x20, 50 tile room
func DefaultConfig() Config {
	return Config{
		Width:           20,
		Height:          20,
		TargetTileCount: 50,
		Seed:            12345,
	}
}

// Validate checks the configuration before anything is allocated
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.TargetTileCount <= 0:
		return fmt.Errorf("%w: target tile count %d must be positive", ErrInvalidConfig, c.TargetTileCount)
	}
	return nil
}

// Result is the output of a growth run. Placed falls short of Target only
// when the frontier ran dry, which is reported through Exhausted.
type Result struct {
	Grid         *grid.Grid
	Placed       int
	Target       int // Requested count clamped to the grid area
	Requested    int
	Exhausted    bool
	FrontierLeft int
}

// Generate grows a room using a stream seeded from cfg.Seed
func Generate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Grow(cfg, rng.New(cfg.Seed))
}

// Grow carves the center cell and keeps expanding from random frontier cells
// until the target count is placed or no frontier cell has an empty neighbor.
func Grow(cfg Config, r rng.Random) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	target := min(cfg.TargetTileCount, cfg.Width*cfg.Height)
	start := grid.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	g.SetPoint(start, grid.Floor)

	frontier := []grid.Point{start}
	placed := 1
	empty := make([]grid.Point, 0, len(grid.Cardinals))

	for placed < target && len(frontier) > 0 {
		idx := r.RandRange(0, len(frontier)-1)
		cell := frontier[idx]

		empty = empty[:0]
		for _, d := range grid.Cardinals {
			n := cell.Add(d)
			if g.InBounds(n.X, n.Y) && g.AtPoint(n) == grid.Wall {
				empty = append(empty, n)
			}
		}

		if len(empty) == 0 {
			// Exhausted cells leave the frontier by swap-remove
			last := len(frontier) - 1
			frontier[idx] = frontier[last]
			frontier = frontier[:last]
			continue
		}

		next := empty[r.RandRange(0, len(empty)-1)]
		g.SetPoint(next, grid.Floor)
		frontier = append(frontier, next)
		placed++
	}

	return &Result{
		Grid:         g,
		Placed:       placed,
		Target:       target,
		Requested:    cfg.TargetTileCount,
		Exhausted:    placed < target,
		FrontierLeft: len(frontier),
	}, nil
}
