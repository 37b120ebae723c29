// Package walk carves floor with a drunkard's walk confined to the grid interior.
package walk

import (
	"errors"
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

var (
	ErrInvalidConfig = errors.New("walk: invalid configuration")
)

// Config contains parameters for the random walk
type Config struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Steps         int  `yaml:"steps"`
	StartInCenter bool `yaml:"start_in_center"`
}

// DefaultConfig returns the standard 60x40, 1000 step walk
func DefaultConfig() Config {
	return Config{
		Width:         60,
		Height:        40,
		Steps:         1000,
		StartInCenter: true,
	}
}

// Validate checks the configuration before anything is allocated
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Steps < 0:
		return fmt.Errorf("%w: steps %d is negative", ErrInvalidConfig, c.Steps)
	}
	return nil
}

// Result is the output of a walk
type Result struct {
	Grid       *grid.Grid
	Start      grid.Point
	End        grid.Point
	Skipped    bool // Grid had no interior, nothing was carved
	BorderHits int  // Steps clamped back into the interior
}

// Direction offsets indexed by RandRange(0, 3)
var moves = [4]grid.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Carve walks cfg.Steps cells from the start, carving each visited cell.
// A step that would leave [1, w-2] x [1, h-2] is clamped back, so the walker
// sticks to the edge of the interior instead of reflecting.
func Carve(cfg Config, r rng.Random) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	result := &Result{Grid: g}

	w, h := cfg.Width, cfg.Height
	if w <= 2 || h <= 2 {
		result.Skipped = true
		return result, nil
	}

	var pos grid.Point
	if cfg.StartInCenter {
		pos = grid.Point{X: w / 2, Y: h / 2}
	} else {
		pos = grid.Point{X: r.RandRange(1, w-2), Y: r.RandRange(1, h-2)}
	}
	result.Start = pos
	g.SetPoint(pos, grid.Floor)

	for i := 0; i < cfg.Steps; i++ {
		next := pos.Add(moves[r.RandRange(0, 3)])
		clamped := grid.Point{X: clamp(next.X, 1, w-2), Y: clamp(next.Y, 1, h-2)}
		if clamped != next {
			result.BorderHits++
		}
		pos = clamped
		g.SetPoint(pos, grid.Floor)
	}

	result.End = pos
	return result, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
