package dungeon

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/config"
)

var (
	ErrUnknownGenerator = errors.New("dungeon: unknown generator")
	ErrInvalidConfig    = errors.New("dungeon: invalid generator configuration")
)

// Factory builds a generator from the loaded configuration
type Factory func(cfg *config.GeneratorConfig) GridGenerator

// Registry maps generator names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding the built-in generators.
// Only caves and rooms run the connectivity pass unless the configuration
// says otherwise.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(config.GeneratorBSP, func(cfg *config.GeneratorConfig) GridGenerator {
		c := cfg.BSP
		c.Connect = resolveOr(cfg, c.Connect)
		return BSP{Config: c}
	})
	r.Register(config.GeneratorCave, func(cfg *config.GeneratorConfig) GridGenerator {
		return CellularAutomaton{Config: cfg.Cave, Resolve: resolveOr(cfg, true)}
	})
	r.Register(config.GeneratorGrowth, func(cfg *config.GeneratorConfig) GridGenerator {
		return RegionGrowth{Config: cfg.Growth, Resolve: resolveOr(cfg, false)}
	})
	r.Register(config.GeneratorRooms, func(cfg *config.GeneratorConfig) GridGenerator {
		return RoomGrowth{Config: cfg.Rooms, Resolve: resolveOr(cfg, true)}
	})
	r.Register(config.GeneratorWalk, func(cfg *config.GeneratorConfig) GridGenerator {
		return RandomWalk{Config: cfg.Walk, Resolve: resolveOr(cfg, false)}
	})
	return r
}

func resolveOr(cfg *config.GeneratorConfig, fallback bool) bool {
	if cfg.Resolve != nil {
		return *cfg.Resolve
	}
	return fallback
}

// Register adds or replaces the factory for name
func (r *Registry) Register(name string, f Factory) {
	r.factories[strings.ToLower(name)] = f
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds and validates the generator selected by cfg.Generator.
// Invalid settings are rejected here, before any grid is allocated.
func (r *Registry) New(cfg *config.GeneratorConfig) (GridGenerator, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Generator))
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownGenerator, cfg.Generator, strings.Join(r.Names(), ", "))
	}

	gen := f(cfg)
	if err := gen.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}
	return gen, nil
}
