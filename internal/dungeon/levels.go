package dungeon

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/features"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/logger"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

// LevelSeed returns the seed of level index under base. Level 0 uses base
// directly so a single-level run replays with the same seed.
func LevelSeed(base int64, name string, index int) int64 {
	if index == 0 {
		return base
	}
	return rng.Derive(base, name, index)
}

// Run generates one level with its own stream
func Run(gen GridGenerator, seed int64, level int) (*Layout, error) {
	stream := rng.New(seed)
	layout, err := gen.Generate(stream)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", level, err)
	}
	layout.Level = level
	layout.Seed = stream.Seed()
	layout.EdgeWalls = features.EdgeWalls(layout.Grid)

	log := logger.With("generator", gen.Name(), "level", level, "seed", layout.Seed)
	log.Debug("level generated",
		"width", layout.Grid.Width(),
		"height", layout.Grid.Height(),
		"floor", layout.Grid.Count(grid.Floor),
	)
	if layout.Exhausted {
		log.Info("growth stopped early", "placed", layout.Placed, "target", layout.Target)
	}
	if layout.RoomsSkipped > 0 {
		log.Info("rooms skipped, no free origin", "skipped", layout.RoomsSkipped, "placed", len(layout.Rooms))
	}
	if layout.Skipped {
		log.Info("walk skipped, grid has no interior")
	}
	if layout.Report != nil && len(layout.Report.Corridors) > 0 {
		log.Debug("regions connected",
			"regions", layout.Report.RegionsBefore,
			"corridors", len(layout.Report.Corridors),
			"carved", layout.Report.CellsCarved,
		)
	}
	return layout, nil
}

// GenerateLevels builds count independent levels in parallel and returns them
// in level order. A negative base picks a fresh seed shared by every level.
// Levels not yet started when ctx is cancelled are skipped and reported.
func GenerateLevels(ctx context.Context, gen GridGenerator, base int64, count int) ([]*Layout, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: level count %d", ErrInvalidConfig, count)
	}
	if err := gen.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, gen.Name(), err)
	}
	if base < 0 {
		base = rng.New(base).Seed()
	}

	layouts := make([]*Layout, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[level] = fmt.Errorf("level %d: %w", level, err)
				return
			}
			layouts[level], errs[level] = Run(gen, LevelSeed(base, gen.Name(), level), level)
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return layouts, nil
}
