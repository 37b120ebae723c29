package growth

import (
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

// RoomsConfig contains parameters for placing several grown rooms on one map
type RoomsConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	Count          int `yaml:"count"`
	Attempts       int `yaml:"attempts"`        // Growth attempts per room
	PlacementTries int `yaml:"placement_tries"` // Origin draws before a room is skipped
}

// DefaultRoomsConfig returns eight 40 attempt rooms on a 60x40 map
func DefaultRoomsConfig() RoomsConfig {
	return RoomsConfig{
		Width:          60,
		Height:         40,
		Count:          8,
		Attempts:       40,
		PlacementTries: 20,
	}
}

// Validate checks the configuration before anything is allocated
func (c RoomsConfig) Validate() error {
	switch {
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("%w: size %dx%d has no interior", ErrInvalidConfig, c.Width, c.Height)
	case c.Count <= 0:
		return fmt.Errorf("%w: room count %d must be positive", ErrInvalidConfig, c.Count)
	case c.Attempts <= 0:
		return fmt.Errorf("%w: attempts %d must be positive", ErrInvalidConfig, c.Attempts)
	case c.PlacementTries <= 0:
		return fmt.Errorf("%w: placement tries %d must be positive", ErrInvalidConfig, c.PlacementTries)
	}
	return nil
}

// RoomsResult is the output of GrowRooms
type RoomsResult struct {
	Grid    *grid.Grid
	Rooms   []*Room
	Placed  int // Tiles carved over all rooms
	Skipped int // Rooms that found no free origin
}

// GrowRooms grows up to cfg.Count rooms inside the map border. Each room is
// grown against an oracle holding the border, the tiles of earlier rooms and
// the cells around their edges, so rooms never touch along a side.
func GrowRooms(cfg RoomsConfig, r rng.Random) (*RoomsResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	taken := NewOccupancySet()
	interior := grid.NewRect(1, 1, cfg.Width-1, cfg.Height-1)
	oracle := OracleFunc(func(p grid.Point) bool {
		return !interior.Contains(p) || taken.IsCellOccupied(p)
	})

	res := &RoomsResult{Grid: g}
	for i := 0; i < cfg.Count; i++ {
		origin, ok := freeOrigin(interior, cfg.PlacementTries, oracle, r)
		if !ok {
			res.Skipped++
			continue
		}

		room := GrowRoom(origin, cfg.Attempts, oracle, r)
		res.Placed += room.Stamp(g, room.Bounds().Min)

		// Edge tiles are the only tiles with empty neighbors
		for _, t := range room.EdgeTiles(oracle) {
			for _, n := range room.emptyNeighbors(t, oracle) {
				taken.Block(n)
			}
		}
		for _, t := range room.Tiles {
			taken.Block(t)
		}
		res.Rooms = append(res.Rooms, room)
	}
	return res, nil
}

func freeOrigin(interior grid.Rect, tries int, oracle Oracle, r rng.Random) (grid.Point, bool) {
	for i := 0; i < tries; i++ {
		p := grid.Point{
			X: r.RandRange(interior.Min.X, interior.Max.X-1),
			Y: r.RandRange(interior.Min.Y, interior.Max.Y-1),
		}
		if !oracle.IsCellOccupied(p) {
			return p, true
		}
	}
	return grid.Point{}, false
}
