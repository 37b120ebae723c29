// Package cave smooths random noise into organic caves with a cellular automaton.
package cave

import (
	"errors"
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

var (
	ErrInvalidConfig = errors.New("cave: invalid configuration")
)

// Config contains parameters for cave generation
type Config struct {
	Width             int `yaml:"width"`
	Height            int `yaml:"height"`
	InitialWallChance int `yaml:"initial_wall_chance"` // Percent, 0-100
	Steps             int `yaml:"steps"`
	BirthLimit        int `yaml:"birth_limit"` // Floor with more wall neighbors than this becomes wall
	DeathLimit        int `yaml:"death_limit"` // Wall with fewer wall neighbors than this becomes floor
}

// DefaultConfig returns the standard 60x40 cave settings
func DefaultConfig() Config {
	return Config{
		Width:             60,
		Height:            40,
		InitialWallChance: 45,
		Steps:             5,
		BirthLimit:        4,
		DeathLimit:        3,
	}
}

// Validate checks the configuration before anything is allocated
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.InitialWallChance < 0 || c.InitialWallChance > 100:
		return fmt.Errorf("%w: initial wall chance %d outside 0-100", ErrInvalidConfig, c.InitialWallChance)
	case c.Steps < 0:
		return fmt.Errorf("%w: steps %d is negative", ErrInvalidConfig, c.Steps)
	case c.BirthLimit < 0 || c.BirthLimit > 8:
		return fmt.Errorf("%w: birth limit %d outside 0-8", ErrInvalidConfig, c.BirthLimit)
	case c.DeathLimit < 0 || c.DeathLimit > 8:
		return fmt.Errorf("%w: death limit %d outside 0-8", ErrInvalidConfig, c.DeathLimit)
	}
	return nil
}

// Generate seeds a noisy grid and runs cfg.Steps automaton generations over it
func Generate(cfg Config, r rng.Random) (*grid.Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cur, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	next := cur.Clone()

	Seed(cur, cfg.InitialWallChance, r)
	for i := 0; i < cfg.Steps; i++ {
		Step(cur, next, cfg.BirthLimit, cfg.DeathLimit)
		cur, next = next, cur
	}

	sealBorder(cur)
	return cur, nil
}

// Seed fills g with noise. Border cells are always wall and draw no randomness;
// interior cells become wall when RandRange(0, 100) < chance.
func Seed(g *grid.Grid, chance int, r rng.Random) {
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				g.Set(x, y, grid.Wall)
				continue
			}
			if r.RandRange(0, 100) < chance {
				g.Set(x, y, grid.Wall)
			} else {
				g.Set(x, y, grid.Floor)
			}
		}
	}
}

// Step computes one generation from cur into next. cur is never written.
func Step(cur, next *grid.Grid, birthLimit, deathLimit int) {
	w, h := cur.Width(), cur.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			walls := WallNeighbors(cur, x, y)
			cell := cur.At(x, y)

			switch {
			case cell == grid.Wall && walls < deathLimit:
				cell = grid.Floor
			case cell == grid.Floor && walls > birthLimit:
				cell = grid.Wall
			}
			next.Set(x, y, cell)
		}
	}
}

// WallNeighbors counts walls among the 8 cells around (x, y).
// Neighbors outside the grid count as wall.
func WallNeighbors(g *grid.Grid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(x+dx, y+dy) == grid.Wall {
				count++
			}
		}
	}
	return count
}

// sealBorder forces the outer ring back to wall. A death limit above 3 can
// open a border cell whose in-grid neighbors are all floor.
func sealBorder(g *grid.Grid) {
	w, h := g.Width(), g.Height()
	for x := 0; x < w; x++ {
		g.Set(x, 0, grid.Wall)
		g.Set(x, h-1, grid.Wall)
	}
	for y := 0; y < h; y++ {
		g.Set(0, y, grid.Wall)
		g.Set(w-1, y, grid.Wall)
	}
}
