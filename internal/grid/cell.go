package grid

// Cell is the state of a single grid cell
type Cell uint8

const (
	Wall  Cell = iota // Solid, not walkable
	Floor             // Carved, walkable
)

// String returns the string representation of a Cell
func (c Cell) String() string {
	switch c {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	default:
		return "unknown"
	}
}

// Rune returns the ASCII glyph used when printing a grid
func (c Cell) Rune() rune {
	if c == Floor {
		return '.'
	}
	return '#'
}

// Point is an integer cell coordinate
type Point struct {
	X, Y int
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Manhattan returns |dx| + |dy| between p and q
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Cardinal offsets in +x, -x, +y, -y order
var Cardinals = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Rect is an axis-aligned rectangle covering [Min, Max) in cell units
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from its corner coordinates
func NewRect(minX, minY, maxX, maxY int) Rect {
	return Rect{Min: Point{minX, minY}, Max: Point{maxX, maxY}}
}

func (r Rect) Width() int  { return r.Max.X - r.Min.X }
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Area returns the cell count of r, or 0 for an inverted rectangle
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRect reports whether o lies entirely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Max.X <= r.Max.X && o.Min.Y >= r.Min.Y && o.Max.Y <= r.Max.Y
}

// Overlaps reports whether r and o share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Center returns the cell at the middle of r (rounded toward Min)
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Width()/2, Y: r.Min.Y + r.Height()/2}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
