// Package dungeon puts every layout algorithm behind one GridGenerator
// interface so callers can swap algorithms without knowing the concrete type.
package dungeon

import (
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/bsp"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/cave"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/connectivity"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/features"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/growth"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/walk"
)

// GridGenerator produces a layout from an injected random stream.
// Implementations hold no mutable state, so one value may serve concurrent calls.
type GridGenerator interface {
	Name() string
	Validate() error
	Generate(r rng.Random) (*Layout, error)
}

// Layout is the read-only result handed to whatever renders a level
type Layout struct {
	Generator string
	Level     int
	Seed      int64
	Grid      *grid.Grid

	// BSP leaves. Rooms also holds the bounds of grown rooms.
	Leaves []grid.Rect
	Rooms  []grid.Rect

	// Growth output
	Placed    int
	Target    int
	Exhausted bool

	// Rooms that found no free origin
	RoomsSkipped int

	// Walk output
	Skipped bool

	// Set when the connectivity pass ran
	Report *connectivity.Report

	// Wall faces of the final grid, filled in by Run
	EdgeWalls []features.Edge
}

// BSP partitions the map and pads a room into each leaf.
// Config.Connect decides whether rooms are joined by corridors.
type BSP struct {
	Config bsp.Config
}

func (g BSP) Name() string    { return "bsp" }
func (g BSP) Validate() error { return g.Config.Validate() }

func (g BSP) Generate(r rng.Random) (*Layout, error) {
	res, err := bsp.Generate(g.Config, r)
	if err != nil {
		return nil, err
	}
	return &Layout{
		Generator: g.Name(),
		Grid:      res.Grid,
		Leaves:    res.Leaves,
		Rooms:     res.Rooms,
		Report:    res.Report,
	}, nil
}

// CellularAutomaton smooths noise into caves
type CellularAutomaton struct {
	Config  cave.Config
	Resolve bool
}

func (g CellularAutomaton) Name() string    { return "cave" }
func (g CellularAutomaton) Validate() error { return g.Config.Validate() }

func (g CellularAutomaton) Generate(r rng.Random) (*Layout, error) {
	cells, err := cave.Generate(g.Config, r)
	if err != nil {
		return nil, err
	}
	return finish(&Layout{Generator: g.Name(), Grid: cells}, g.Resolve), nil
}

// RegionGrowth grows one blob room from the center. The injected stream
// replaces Config.Seed.
type RegionGrowth struct {
	Config  growth.Config
	Resolve bool
}

func (g RegionGrowth) Name() string    { return "growth" }
func (g RegionGrowth) Validate() error { return g.Config.Validate() }

func (g RegionGrowth) Generate(r rng.Random) (*Layout, error) {
	res, err := growth.Grow(g.Config, r)
	if err != nil {
		return nil, err
	}
	return finish(&Layout{
		Generator: g.Name(),
		Grid:      res.Grid,
		Placed:    res.Placed,
		Target:    res.Target,
		Exhausted: res.Exhausted,
	}, g.Resolve), nil
}

// RoomGrowth grows separate rooms against an occupancy oracle
type RoomGrowth struct {
	Config  growth.RoomsConfig
	Resolve bool
}

func (g RoomGrowth) Name() string    { return "rooms" }
func (g RoomGrowth) Validate() error { return g.Config.Validate() }

func (g RoomGrowth) Generate(r rng.Random) (*Layout, error) {
	res, err := growth.GrowRooms(g.Config, r)
	if err != nil {
		return nil, err
	}
	bounds := make([]grid.Rect, len(res.Rooms))
	for i, room := range res.Rooms {
		bounds[i] = room.Bounds()
	}
	return finish(&Layout{
		Generator:    g.Name(),
		Grid:         res.Grid,
		Rooms:        bounds,
		Placed:       res.Placed,
		RoomsSkipped: res.Skipped,
	}, g.Resolve), nil
}

// RandomWalk carves a drunkard's walk
type RandomWalk struct {
	Config  walk.Config
	Resolve bool
}

func (g RandomWalk) Name() string    { return "walk" }
func (g RandomWalk) Validate() error { return g.Config.Validate() }

func (g RandomWalk) Generate(r rng.Random) (*Layout, error) {
	res, err := walk.Carve(g.Config, r)
	if err != nil {
		return nil, err
	}
	return finish(&Layout{Generator: g.Name(), Grid: res.Grid, Skipped: res.Skipped}, g.Resolve), nil
}

func finish(l *Layout, resolve bool) *Layout {
	if resolve {
		report := connectivity.Resolve(l.Grid)
		l.Report = &report
	}
	return l
}
