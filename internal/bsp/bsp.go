// Package bsp partitions a map with binary space partitioning and carves a
// padded room inside every leaf.
package bsp

import (
	"errors"
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/connectivity"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

var (
	ErrInvalidConfig = errors.New("bsp: invalid configuration")
)

// Config contains parameters for BSP generation
type Config struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MinLeafSize int `yaml:"min_leaf_size"`
	MaxDepth    int `yaml:"max_depth"`
	PaddingMin  int `yaml:"padding_min"`
	PaddingMax  int `yaml:"padding_max"`

	// Connect runs the connectivity resolver over the rasterized rooms
	Connect bool `yaml:"connect"`
}

// DefaultConfig returns the standard 40x40 partition settings
func DefaultConfig() Config {
	return Config{
		Width:       40,
		Height:      40,
		MinLeafSize: 8,
		MaxDepth:    5,
		PaddingMin:  1,
		PaddingMax:  3,
	}
}

// Validate checks the configuration before anything is allocated
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.MinLeafSize <= 0:
		return fmt.Errorf("%w: min leaf size %d must be positive", ErrInvalidConfig, c.MinLeafSize)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.PaddingMin < 0:
		return fmt.Errorf("%w: padding min %d is negative", ErrInvalidConfig, c.PaddingMin)
	case c.PaddingMax < c.PaddingMin:
		return fmt.Errorf("%w: padding max %d below min %d", ErrInvalidConfig, c.PaddingMax, c.PaddingMin)
	}
	return nil
}

// Result is the output of a BSP run
type Result struct {
	Root   grid.Rect
	Leaves []grid.Rect
	Rooms  []grid.Rect
	Grid   *grid.Grid           // Rooms carved as floor
	Report *connectivity.Report // Set only when Config.Connect is true
}

// Generate partitions the map, pads a room into each leaf and rasterizes the rooms
func Generate(cfg Config, r rng.Random) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := grid.NewRect(0, 0, cfg.Width, cfg.Height)
	leaves := Partition(root, cfg.MinLeafSize, cfg.MaxDepth, r)
	rooms := CarveRooms(leaves, cfg.PaddingMin, cfg.PaddingMax, r)

	g, err := Rasterize(cfg.Width, cfg.Height, rooms)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:   root,
		Leaves: leaves,
		Rooms:  rooms,
		Grid:   g,
	}
	if cfg.Connect {
		report := connectivity.Resolve(g)
		result.Report = &report
	}
	return result, nil
}

// Partition recursively splits root and returns the leaf rectangles in
// depth-first order, left/bottom child before right/top
func Partition(root grid.Rect, minLeafSize, maxDepth int, r rng.Random) []grid.Rect {
	var leaves []grid.Rect
	split(root, 0, minLeafSize, maxDepth, r, &leaves)
	return leaves
}

func split(region grid.Rect, depth, minLeaf, maxDepth int, r rng.Random, leaves *[]grid.Rect) {
	w, h := region.Width(), region.Height()

	if depth >= maxDepth || (w <= minLeaf*2 && h <= minLeaf*2) {
		*leaves = append(*leaves, region)
		return
	}

	// Favor cutting across the longer side
	var vertical bool
	switch {
	case w > h:
		vertical = true
	case h > w:
		vertical = false
	default:
		vertical = r.RandRange(0, 1) == 1
	}

	if vertical && w < minLeaf*2 {
		vertical = false
	} else if !vertical && h < minLeaf*2 {
		vertical = true
	}
	if (vertical && w < minLeaf*2) || (!vertical && h < minLeaf*2) {
		*leaves = append(*leaves, region)
		return
	}

	if vertical {
		lo, hi := region.Min.X+minLeaf, region.Max.X-minLeaf
		if lo >= hi {
			*leaves = append(*leaves, region)
			return
		}
		at := r.RandRange(lo, hi)
		split(grid.NewRect(region.Min.X, region.Min.Y, at, region.Max.Y), depth+1, minLeaf, maxDepth, r, leaves)
		split(grid.NewRect(at, region.Min.Y, region.Max.X, region.Max.Y), depth+1, minLeaf, maxDepth, r, leaves)
		return
	}

	lo, hi := region.Min.Y+minLeaf, region.Max.Y-minLeaf
	if lo >= hi {
		*leaves = append(*leaves, region)
		return
	}
	at := r.RandRange(lo, hi)
	split(grid.NewRect(region.Min.X, region.Min.Y, region.Max.X, at), depth+1, minLeaf, maxDepth, r, leaves)
	split(grid.NewRect(region.Min.X, at, region.Max.X, region.Max.Y), depth+1, minLeaf, maxDepth, r, leaves)
}
