package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/bsp"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/cave"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/growth"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/walk"
)

var (
	ErrUnknownGenerator = errors.New("config: unknown generator")
	ErrInvalidLevels    = errors.New("config: levels must be at least 1")
)

// Generator names accepted in the generator field
const (
	GeneratorBSP    = "bsp"
	GeneratorCave   = "cave"
	GeneratorGrowth = "growth"
	GeneratorRooms  = "rooms"
	GeneratorWalk   = "walk"
)

// Generators lists the valid generator names
var Generators = []string{GeneratorBSP, GeneratorCave, GeneratorGrowth, GeneratorRooms, GeneratorWalk}

// GeneratorConfig selects a generator and holds the settings of every variant.
type GeneratorConfig struct {
	// Generator is one of bsp, cave, growth, rooms or walk.
	Generator string `yaml:"generator"`

	// Seed drives every level. Negative picks a fresh seed per run.
	Seed int64 `yaml:"seed"`

	// Levels is how many independent levels to generate.
	Levels int `yaml:"levels"`

	// Resolve overrides whether the connectivity pass runs. Nil keeps the
	// generator's own default (on for caves and rooms, off otherwise).
	Resolve *bool `yaml:"resolve"`

	BSP    bsp.Config         `yaml:"bsp"`
	Cave   cave.Config        `yaml:"cave"`
	Growth growth.Config      `yaml:"growth"`
	Rooms  growth.RoomsConfig `yaml:"rooms"`
	Walk   walk.Config        `yaml:"walk"`
}

// DefaultConfig returns a GeneratorConfig carrying every variant's defaults.
func DefaultConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Generator: GeneratorCave,
		Seed:      12345,
		Levels:    1,
		BSP:       bsp.DefaultConfig(),
		Cave:      cave.DefaultConfig(),
		Growth:    growth.DefaultConfig(),
		Rooms:     growth.DefaultRoomsConfig(),
		Walk:      walk.DefaultConfig(),
	}
}

// LoadConfig loads generator configuration from a YAML file over the defaults
// and applies environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*GeneratorConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *GeneratorConfig) applyEnv() error {
	if name := os.Getenv("DUNGEON_GENERATOR"); name != "" {
		c.Generator = name
	}
	if seed := os.Getenv("DUNGEON_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("config: DUNGEON_SEED: %w", err)
		}
		c.Seed = v
	}
	if levels := os.Getenv("DUNGEON_LEVELS"); levels != "" {
		v, err := strconv.Atoi(levels)
		if err != nil {
			return fmt.Errorf("config: DUNGEON_LEVELS: %w", err)
		}
		c.Levels = v
	}
	return nil
}

// Validate checks the selection fields. Variant settings are validated by
// their own packages when a generator is built.
func (c *GeneratorConfig) Validate() error {
	c.Generator = strings.ToLower(strings.TrimSpace(c.Generator))
	known := false
	for _, name := range Generators {
		if c.Generator == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownGenerator, c.Generator, strings.Join(Generators, ", "))
	}
	if c.Levels < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLevels, c.Levels)
	}
	return nil
}
