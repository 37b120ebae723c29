package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generator != GeneratorCave {
		t.Errorf("Generator = %q, want cave", cfg.Generator)
	}
	if cfg.Levels != 1 || cfg.Seed != 12345 {
		t.Errorf("Levels/Seed = %d/%d, want 1/12345", cfg.Levels, cfg.Seed)
	}
	if cfg.Resolve != nil {
		t.Error("Resolve should be unset by default")
	}
	if cfg.BSP.Width != 40 || cfg.BSP.MinLeafSize != 8 || cfg.BSP.MaxDepth != 5 {
		t.Errorf("BSP defaults = %+v", cfg.BSP)
	}
	if cfg.Cave.InitialWallChance != 45 || cfg.Cave.Steps != 5 || cfg.Cave.BirthLimit != 4 || cfg.Cave.DeathLimit != 3 {
		t.Errorf("Cave defaults = %+v", cfg.Cave)
	}
	if cfg.Growth.TargetTileCount != 50 || cfg.Growth.Seed != 12345 {
		t.Errorf("Growth defaults = %+v", cfg.Growth)
	}
	if cfg.Walk.Steps != 1000 || !cfg.Walk.StartInCenter {
		t.Errorf("Walk defaults = %+v", cfg.Walk)
	}
	if r := cfg.Rooms; r.Width != 60 || r.Height != 40 || r.Count != 8 || r.Attempts != 40 || r.PlacementTries != 20 {
		t.Errorf("Rooms defaults = %+v", cfg.Rooms)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if cfg.Generator != GeneratorCave || cfg.Cave.Width != 60 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	content := `generator: bsp
seed: 7
levels: 3
resolve: true
bsp:
  width: 64
  min_leaf_size: 6
cave:
  steps: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Generator != GeneratorBSP || cfg.Seed != 7 || cfg.Levels != 3 {
		t.Errorf("top level = %q/%d/%d", cfg.Generator, cfg.Seed, cfg.Levels)
	}
	if cfg.Resolve == nil || !*cfg.Resolve {
		t.Error("resolve: true not loaded")
	}
	if cfg.BSP.Width != 64 || cfg.BSP.MinLeafSize != 6 {
		t.Errorf("BSP = %+v", cfg.BSP)
	}
	// Fields the file leaves out keep their defaults
	if cfg.BSP.Height != 40 || cfg.BSP.MaxDepth != 5 || cfg.BSP.PaddingMax != 3 {
		t.Errorf("BSP defaults lost: %+v", cfg.BSP)
	}
	if cfg.Cave.Steps != 2 || cfg.Cave.InitialWallChance != 45 {
		t.Errorf("Cave = %+v", cfg.Cave)
	}
}

func TestLoadConfig_RoomsAndGrowthSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	content := `generator: rooms
growth:
  seed: 99
  target_tile_count: 30
rooms:
  count: 3
  placement_tries: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Generator != GeneratorRooms {
		t.Errorf("Generator = %q, want rooms", cfg.Generator)
	}
	if cfg.Rooms.Count != 3 || cfg.Rooms.PlacementTries != 5 || cfg.Rooms.Attempts != 40 {
		t.Errorf("Rooms = %+v", cfg.Rooms)
	}
	// Level streams come from the top level seed, so growth.seed is not read
	if cfg.Growth.Seed != 12345 || cfg.Growth.TargetTileCount != 30 {
		t.Errorf("Growth seed/target = %d/%d, want 12345/30", cfg.Growth.Seed, cfg.Growth.TargetTileCount)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("generator: [unterminated"), 0o644)

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig should fail on malformed YAML")
	}
	if cfg == nil || cfg.Generator != GeneratorCave {
		t.Error("a parse failure should still hand back defaults")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DUNGEON_GENERATOR", "walk")
	t.Setenv("DUNGEON_SEED", "-1")
	t.Setenv("DUNGEON_LEVELS", "4")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Generator != GeneratorWalk || cfg.Seed != -1 || cfg.Levels != 4 {
		t.Errorf("env overrides = %q/%d/%d, want walk/-1/4", cfg.Generator, cfg.Seed, cfg.Levels)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DUNGEON_SEED", "abc"},
		{"DUNGEON_LEVELS", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(""); err == nil {
				t.Errorf("%s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*GeneratorConfig)
		wantErr error
	}{
		{"mixed case name", func(c *GeneratorConfig) { c.Generator = " BSP " }, nil},
		{"unknown name", func(c *GeneratorConfig) { c.Generator = "maze" }, ErrUnknownGenerator},
		{"empty name", func(c *GeneratorConfig) { c.Generator = "" }, ErrUnknownGenerator},
		{"zero levels", func(c *GeneratorConfig) { c.Levels = 0 }, ErrInvalidLevels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
