// Package grid holds the logical wall/floor field shared by every generator.
package grid

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrInvalidSize = errors.New("grid: width and height must be positive")
	ErrBadRow      = errors.New("grid: rows must be non-empty and equal length")
)

// Grid is a width x height field of cells stored row-major (index = y*width + x).
// Accesses outside the grid fail closed: reads see Wall, writes are dropped.
type Grid struct {
	width, height int
	cells         []Cell
}

// New allocates a grid with every cell set to Wall
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Parse builds a grid from rows of '#' (wall) and '.' (floor).
// Any other glyph is read as wall.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadRow
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadRow, y, len(row), g.width)
		}
		for x := 0; x < len(row); x++ {
			if row[x] == '.' {
				g.cells[y*g.width+x] = Floor
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x, y) addresses a cell of g
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index returns the flat index of (x, y), or false when out of bounds
func (g *Grid) Index(x, y int) (int, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return y*g.width + x, true
}

// At returns the cell at (x, y). Out of bounds reads return Wall.
func (g *Grid) At(x, y int) Cell {
	i, ok := g.Index(x, y)
	if !ok {
		return Wall
	}
	return g.cells[i]
}

// AtPoint is At for a Point
func (g *Grid) AtPoint(p Point) Cell {
	return g.At(p.X, p.Y)
}

// Set writes c at (x, y) and reports whether the write happened
func (g *Grid) Set(x, y int, c Cell) bool {
	i, ok := g.Index(x, y)
	if !ok {
		return false
	}
	g.cells[i] = c
	return true
}

// SetPoint is Set for a Point
func (g *Grid) SetPoint(p Point, c Cell) bool {
	return g.Set(p.X, p.Y, c)
}

// IsFloor reports whether (x, y) is an in-bounds floor cell
func (g *Grid) IsFloor(x, y int) bool {
	return g.At(x, y) == Floor
}

// Fill overwrites every cell with c
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// FillRect sets every in-bounds cell of r to c
func (g *Grid) FillRect(r Rect, c Cell) {
	for y := max(r.Min.Y, 0); y < min(r.Max.Y, g.height); y++ {
		for x := max(r.Min.X, 0); x < min(r.Max.X, g.width); x++ {
			g.cells[y*g.width+x] = c
		}
	}
}

// CopyFrom overwrites g with the cells of src. Both grids must be the same size.
func (g *Grid) CopyFrom(src *Grid) {
	if src.width != g.width || src.height != g.height {
		panic(fmt.Sprintf("grid: copy %dx%d into %dx%d", src.width, src.height, g.width, g.height))
	}
	copy(g.cells, src.cells)
}

// Clone returns an independent copy of g
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether g and o have the same size and cells
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells equal c
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Points returns the coordinates of every cell equal to c in row-major order
func (g *Grid) Points(c Cell) []Point {
	var pts []Point
	for i, v := range g.cells {
		if v == c {
			pts = append(pts, Point{X: i % g.width, Y: i / g.width})
		}
	}
	return pts
}

// Values returns a [][]int copy with floor as 1 and wall as 0
func (g *Grid) Values() [][]int {
	rows := make([][]int, g.height)
	for y := 0; y < g.height; y++ {
		rows[y] = make([]int, g.width)
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] == Floor {
				rows[y][x] = 1
			}
		}
	}
	return rows
}

// Fingerprint returns a stable hex digest of the grid size and contents
func (g *Grid) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(g.width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(g.height))
	h.Write(dims[:])
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return hex.EncodeToString(h.Sum(nil))
}

// String renders the grid as ASCII rows, '#' for wall and '.' for floor
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[y*g.width+x].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
