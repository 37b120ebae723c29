package bsp

import (
	"errors"
	"testing"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/connectivity"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

// script replays fixed values and fails the test on an unexpected range
type script struct {
	t    *testing.T
	vals []int
	pos  int
}

func (s *script) RandRange(min, max int) int {
	s.t.Helper()
	if s.pos >= len(s.vals) {
		s.t.Fatalf("script exhausted at draw %d (range %d-%d)", s.pos, min, max)
	}
	v := s.vals[s.pos]
	s.pos++
	if v < min || v > max {
		s.t.Fatalf("scripted value %d outside range %d-%d", v, min, max)
	}
	return v
}

func (s *script) Intn(n int) int { return s.RandRange(0, n-1) }

func checkCoverage(t *testing.T, root grid.Rect, leaves []grid.Rect) {
	t.Helper()
	area := 0
	for i, a := range leaves {
		if a.Empty() {
			t.Errorf("leaf %d %v is empty", i, a)
		}
		if !root.ContainsRect(a) {
			t.Errorf("leaf %d %v outside root %v", i, a, root)
		}
		area += a.Area()
		for j := i + 1; j < len(leaves); j++ {
			if a.Overlaps(leaves[j]) {
				t.Errorf("leaf %d %v overlaps leaf %d %v", i, a, j, leaves[j])
			}
		}
	}
	if area != root.Area() {
		t.Errorf("leaves cover %d cells, root has %d", area, root.Area())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero min leaf", func(c *Config) { c.MinLeafSize = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative padding", func(c *Config) { c.PaddingMin = -1 }},
		{"inverted padding", func(c *Config) { c.PaddingMin, c.PaddingMax = 3, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			res, err := Generate(cfg, rng.New(1))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Generate error = %v, want ErrInvalidConfig", err)
			}
			if res != nil {
				t.Error("Generate should not return a result for an invalid config")
			}
		})
	}
}

func TestPartitionScriptedSplit(t *testing.T) {
	// 20x10 with min 4 and depth 1: wider than tall, so one vertical cut
	s := &script{t: t, vals: []int{10}}
	leaves := Partition(grid.NewRect(0, 0, 20, 10), 4, 1, s)

	want := []grid.Rect{grid.NewRect(0, 0, 10, 10), grid.NewRect(10, 0, 20, 10)}
	if len(leaves) != len(want) {
		t.Fatalf("leaves = %v, want %v", leaves, want)
	}
	for i := range want {
		if leaves[i] != want[i] {
			t.Errorf("leaf %d = %v, want %v", i, leaves[i], want[i])
		}
	}
}

func TestPartitionSquareUsesCoin(t *testing.T) {
	root := grid.NewRect(0, 0, 20, 20)

	// Coin 0 is a horizontal cut, then the cut position
	horizontal := Partition(root, 4, 1, &script{t: t, vals: []int{0, 7}})
	if horizontal[0] != grid.NewRect(0, 0, 20, 7) || horizontal[1] != grid.NewRect(0, 7, 20, 20) {
		t.Errorf("horizontal split = %v", horizontal)
	}

	vertical := Partition(root, 4, 1, &script{t: t, vals: []int{1, 12}})
	if vertical[0] != grid.NewRect(0, 0, 12, 20) || vertical[1] != grid.NewRect(12, 0, 20, 20) {
		t.Errorf("vertical split = %v", vertical)
	}
}

func TestPartitionStopConditions(t *testing.T) {
	tests := []struct {
		name     string
		root     grid.Rect
		minLeaf  int
		maxDepth int
	}{
		{"depth zero", grid.NewRect(0, 0, 100, 100), 4, 0},
		{"small on both axes", grid.NewRect(0, 0, 16, 16), 8, 5},
		{"smaller than min leaf", grid.NewRect(0, 0, 3, 5), 8, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// An empty script fails the test if anything is drawn
			leaves := Partition(tt.root, tt.minLeaf, tt.maxDepth, &script{t: t})
			if len(leaves) != 1 || leaves[0] != tt.root {
				t.Errorf("leaves = %v, want only the root", leaves)
			}
		})
	}
}

func TestPartitionCoverageAndMinimum(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		minLeaf       int
		maxDepth      int
	}{
		{"square", 40, 40, 8, 5},
		{"wide", 120, 30, 6, 6},
		{"tall", 25, 90, 5, 8},
		{"deep", 64, 64, 3, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := grid.NewRect(0, 0, tt.width, tt.height)
			for seed := int64(0); seed < 10; seed++ {
				leaves := Partition(root, tt.minLeaf, tt.maxDepth, rng.New(seed))
				checkCoverage(t, root, leaves)

				for _, l := range leaves {
					if l.Width() < tt.minLeaf || l.Height() < tt.minLeaf {
						t.Errorf("seed %d: leaf %v below min size %d", seed, l, tt.minLeaf)
					}
				}
			}
		})
	}
}

func TestCarveRoomsDrawOrder(t *testing.T) {
	leaf := grid.NewRect(0, 0, 10, 10)
	s := &script{t: t, vals: []int{2, 3, 1, 4}}

	rooms := CarveRooms([]grid.Rect{leaf}, 0, 5, s)
	if len(rooms) != 1 {
		t.Fatalf("rooms = %v, want one", rooms)
	}
	// left 2, right 3, bottom 1, top 4
	if want := grid.NewRect(2, 1, 7, 6); rooms[0] != want {
		t.Errorf("room = %v, want %v", rooms[0], want)
	}
}

func TestCarveRoomsClampsPadding(t *testing.T) {
	leaf := grid.NewRect(10, 20, 13, 22) // 3x2
	s := &script{t: t, vals: []int{5, 5, 5, 5}}

	rooms := CarveRooms([]grid.Rect{leaf}, 0, 5, s)
	if len(rooms) != 1 {
		t.Fatalf("rooms = %v, want one", rooms)
	}
	// left clamps to 2, right to 0, bottom to 1, top to 0
	if want := grid.NewRect(12, 21, 13, 22); rooms[0] != want {
		t.Errorf("room = %v, want %v", rooms[0], want)
	}
}

func TestCarveRoomsSkipsEmptyLeaves(t *testing.T) {
	leaves := []grid.Rect{
		grid.NewRect(0, 0, 0, 5),
		grid.NewRect(4, 4, 2, 2),
	}
	rooms := CarveRooms(leaves, 1, 3, &script{t: t})
	if len(rooms) != 0 {
		t.Errorf("rooms = %v, want none", rooms)
	}
}

func TestGenerateRoomsInsideLeaves(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Generate(cfg, rng.New(5))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(res.Rooms) != len(res.Leaves) {
		t.Errorf("rooms = %d, leaves = %d; every leaf of a 40x40 map fits a room", len(res.Rooms), len(res.Leaves))
	}
	floor := 0
	for i, room := range res.Rooms {
		if !res.Leaves[i].ContainsRect(room) {
			t.Errorf("room %v escapes leaf %v", room, res.Leaves[i])
		}
		floor += room.Area()
	}
	if got := res.Grid.Count(grid.Floor); got != floor {
		t.Errorf("grid floor = %d, room area = %d", got, floor)
	}
	if res.Report != nil {
		t.Error("Report should be nil without Connect")
	}
}

func TestGenerateConnect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connect = true

	for seed := int64(0); seed < 10; seed++ {
		res, err := Generate(cfg, rng.New(seed))
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if res.Report == nil {
			t.Fatal("Report should be set with Connect")
		}
		if res.Report.RegionsBefore != len(res.Rooms) {
			t.Errorf("seed %d: RegionsBefore = %d, rooms = %d", seed, res.Report.RegionsBefore, len(res.Rooms))
		}
		if n, err := connectivity.Verify(res.Grid); err != nil || n != 1 {
			t.Errorf("seed %d: Verify = %d, %v", seed, n, err)
		}
	}
}

// 40x40 root, min leaf 8, depth 5
// Recorded with seed 42 on a 40x40 map, min leaf 8, depth 5, padding 1..3.
// Any change to split order, axis choice or padding draw order shows up here.
var (
	referenceLeaves = []grid.Rect{
		{Min: grid.Point{X: 0, Y: 0}, Max: grid.Point{X: 11, Y: 13}},
		{Min: grid.Point{X: 11, Y: 0}, Max: grid.Point{X: 20, Y: 13}},
		{Min: grid.Point{X: 0, Y: 13}, Max: grid.Point{X: 8, Y: 26}},
		{Min: grid.Point{X: 8, Y: 13}, Max: grid.Point{X: 20, Y: 26}},
		{Min: grid.Point{X: 0, Y: 26}, Max: grid.Point{X: 10, Y: 40}},
		{Min: grid.Point{X: 10, Y: 26}, Max: grid.Point{X: 20, Y: 40}},
		{Min: grid.Point{X: 20, Y: 0}, Max: grid.Point{X: 31, Y: 9}},
		{Min: grid.Point{X: 31, Y: 0}, Max: grid.Point{X: 40, Y: 9}},
		{Min: grid.Point{X: 20, Y: 9}, Max: grid.Point{X: 32, Y: 20}},
		{Min: grid.Point{X: 32, Y: 9}, Max: grid.Point{X: 40, Y: 20}},
		{Min: grid.Point{X: 20, Y: 20}, Max: grid.Point{X: 28, Y: 31}},
		{Min: grid.Point{X: 20, Y: 31}, Max: grid.Point{X: 28, Y: 40}},
		{Min: grid.Point{X: 28, Y: 20}, Max: grid.Point{X: 40, Y: 30}},
		{Min: grid.Point{X: 28, Y: 30}, Max: grid.Point{X: 40, Y: 40}},
	}
	referenceRooms = []grid.Rect{
		{Min: grid.Point{X: 1, Y: 3}, Max: grid.Point{X: 8, Y: 10}},
		{Min: grid.Point{X: 14, Y: 1}, Max: grid.Point{X: 18, Y: 11}},
		{Min: grid.Point{X: 1, Y: 16}, Max: grid.Point{X: 6, Y: 23}},
		{Min: grid.Point{X: 10, Y: 16}, Max: grid.Point{X: 18, Y: 25}},
		{Min: grid.Point{X: 3, Y: 27}, Max: grid.Point{X: 8, Y: 37}},
		{Min: grid.Point{X: 12, Y: 28}, Max: grid.Point{X: 19, Y: 39}},
		{Min: grid.Point{X: 23, Y: 2}, Max: grid.Point{X: 28, Y: 6}},
		{Min: grid.Point{X: 34, Y: 2}, Max: grid.Point{X: 37, Y: 8}},
		{Min: grid.Point{X: 21, Y: 10}, Max: grid.Point{X: 31, Y: 18}},
		{Min: grid.Point{X: 34, Y: 10}, Max: grid.Point{X: 37, Y: 17}},
		{Min: grid.Point{X: 21, Y: 21}, Max: grid.Point{X: 27, Y: 30}},
		{Min: grid.Point{X: 23, Y: 32}, Max: grid.Point{X: 26, Y: 39}},
		{Min: grid.Point{X: 31, Y: 22}, Max: grid.Point{X: 39, Y: 27}},
		{Min: grid.Point{X: 31, Y: 32}, Max: grid.Point{X: 38, Y: 38}},
	}
)

func TestScenarioReferencePartition(t *testing.T) {
	root := grid.NewRect(0, 0, 40, 40)
	leaves := Partition(root, 8, 5, rng.New(42))

	if len(leaves) != len(referenceLeaves) {
		t.Fatalf("got %d leaves, reference has %d: %v", len(leaves), len(referenceLeaves), leaves)
	}
	for i := range leaves {
		if leaves[i] != referenceLeaves[i] {
			t.Errorf("leaf %d = %v, want %v", i, leaves[i], referenceLeaves[i])
		}
	}
	checkCoverage(t, root, leaves)
}

func TestScenarioReferenceRooms(t *testing.T) {
	res, err := Generate(DefaultConfig(), rng.New(42))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(res.Leaves) != len(referenceLeaves) {
		t.Fatalf("got %d leaves, want %d", len(res.Leaves), len(referenceLeaves))
	}
	if len(res.Rooms) != len(referenceRooms) {
		t.Fatalf("got %d rooms, reference has %d: %v", len(res.Rooms), len(referenceRooms), res.Rooms)
	}
	area := 0
	for i := range res.Rooms {
		if res.Rooms[i] != referenceRooms[i] {
			t.Errorf("room %d = %v, want %v", i, res.Rooms[i], referenceRooms[i])
		}
		area += referenceRooms[i].Area()
	}
	if got := res.Grid.Count(grid.Floor); got != area || area != 619 {
		t.Errorf("floor cells = %d, room area = %d, want 619", got, area)
	}
	if res.Report != nil {
		t.Error("Report should be nil without Connect")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := Generate(cfg, rng.New(99))
	b, _ := Generate(cfg, rng.New(99))

	if a.Grid.Fingerprint() != b.Grid.Fingerprint() {
		t.Error("same seed produced different grids")
	}
	if len(a.Rooms) != len(b.Rooms) {
		t.Fatalf("room counts differ: %d vs %d", len(a.Rooms), len(b.Rooms))
	}
	for i := range a.Rooms {
		if a.Rooms[i] != b.Rooms[i] {
			t.Errorf("room %d differs: %v vs %v", i, a.Rooms[i], b.Rooms[i])
		}
	}
}
