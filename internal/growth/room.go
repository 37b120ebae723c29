package growth

import (
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
	"github.com/zyedidia/generic/mapset"
)

// Oracle answers whether a position is already taken by something outside
// the room being grown
type Oracle interface {
	IsCellOccupied(p grid.Point) bool
}

// OracleFunc adapts a function to Oracle
type OracleFunc func(p grid.Point) bool

func (f OracleFunc) IsCellOccupied(p grid.Point) bool { return f(p) }

// OccupancySet is an Oracle backed by a set of blocked positions
type OccupancySet struct {
	cells mapset.Set[grid.Point]
}

// NewOccupancySet creates a set holding the given positions
func NewOccupancySet(points ...grid.Point) *OccupancySet {
	s := &OccupancySet{cells: mapset.New[grid.Point]()}
	for _, p := range points {
		s.cells.Put(p)
	}
	return s
}

// Block marks p as occupied
func (s *OccupancySet) Block(p grid.Point) {
	s.cells.Put(p)
}

func (s *OccupancySet) IsCellOccupied(p grid.Point) bool {
	return s.cells.Has(p)
}

func (s *OccupancySet) Len() int {
	return s.cells.Size()
}

// Room is a set of tiles grown on an unbounded plane
type Room struct {
	Tiles  []grid.Point // In placement order
	Target int
	member mapset.Set[grid.Point]
}

// GrowRoom places the origin tile and then makes attempts-1 further expansion
// attempts. Each attempt picks a random placed tile and, if it has any empty
// 4-neighbors, places one of them at random. A position is empty when it is
// neither in the room nor reported occupied by the oracle. Attempts that find
// no empty neighbor are spent without placing a tile.
func GrowRoom(origin grid.Point, attempts int, oracle Oracle, r rng.Random) *Room {
	room := newRoom(attempts)
	if attempts <= 0 {
		return room
	}
	if oracle == nil {
		oracle = NewOccupancySet()
	}

	room.add(origin)
	for i := 1; i < attempts; i++ {
		tile := room.Tiles[r.RandRange(0, len(room.Tiles)-1)]
		empty := room.emptyNeighbors(tile, oracle)
		if len(empty) == 0 {
			continue
		}
		room.add(empty[r.RandRange(0, len(empty)-1)])
	}
	return room
}

func newRoom(target int) *Room {
	return &Room{
		Target: target,
		member: mapset.New[grid.Point](),
	}
}

func (r *Room) add(p grid.Point) {
	r.Tiles = append(r.Tiles, p)
	r.member.Put(p)
}

// Contains reports whether p is a tile of the room
func (r *Room) Contains(p grid.Point) bool {
	return r.member.Has(p)
}

func (r *Room) emptyNeighbors(p grid.Point, oracle Oracle) []grid.Point {
	var empty []grid.Point
	for _, d := range grid.Cardinals {
		n := p.Add(d)
		if r.member.Has(n) || oracle.IsCellOccupied(n) {
			continue
		}
		empty = append(empty, n)
	}
	return empty
}

// Center returns the mean tile position. An empty room centers on the origin.
func (r *Room) Center() (x, y float64) {
	if len(r.Tiles) == 0 {
		return 0, 0
	}
	for _, t := range r.Tiles {
		x += float64(t.X)
		y += float64(t.Y)
	}
	n := float64(len(r.Tiles))
	return x / n, y / n
}

// EdgeTiles returns the tiles with between one and three empty neighbors
func (r *Room) EdgeTiles(oracle Oracle) []grid.Point {
	if oracle == nil {
		oracle = NewOccupancySet()
	}
	var edges []grid.Point
	for _, t := range r.Tiles {
		if n := len(r.emptyNeighbors(t, oracle)); n > 0 && n < 4 {
			edges = append(edges, t)
		}
	}
	return edges
}

// Bounds returns the smallest rectangle covering every tile
func (r *Room) Bounds() grid.Rect {
	if len(r.Tiles) == 0 {
		return grid.Rect{}
	}
	b := grid.Rect{Min: r.Tiles[0], Max: r.Tiles[0].Add(grid.Point{X: 1, Y: 1})}
	for _, t := range r.Tiles[1:] {
		b.Min.X = min(b.Min.X, t.X)
		b.Min.Y = min(b.Min.Y, t.Y)
		b.Max.X = max(b.Max.X, t.X+1)
		b.Max.Y = max(b.Max.Y, t.Y+1)
	}
	return b
}

// Stamp carves the room into g, offset so that room.Bounds().Min lands on at.
// Tiles falling outside g are dropped.
func (r *Room) Stamp(g *grid.Grid, at grid.Point) int {
	b := r.Bounds()
	stamped := 0
	for _, t := range r.Tiles {
		p := grid.Point{X: t.X - b.Min.X + at.X, Y: t.Y - b.Min.Y + at.Y}
		if g.SetPoint(p, grid.Floor) {
			stamped++
		}
	}
	return stamped
}
