package connectivity

import (
	"fmt"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/zyedidia/generic/stack"
)

const unlabeled = -1

// Region is a 4-connected component of floor cells
type Region struct {
	ID    int
	Cells []grid.Point
}

// Size returns the number of member cells
func (r Region) Size() int {
	return len(r.Cells)
}

// Labels is the result of a labeling pass. Regions are in discovery order.
type Labels struct {
	Width, Height int
	Regions       []Region
	ids           []int
}

// RegionAt returns the region id of (x, y), or -1 for walls and out of bounds cells
func (l *Labels) RegionAt(x, y int) int {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return unlabeled
	}
	return l.ids[y*l.Width+x]
}

// Largest returns the index of the first region with the strictly greatest size,
// or -1 when there are no regions
func (l *Labels) Largest() int {
	best := -1
	for i, r := range l.Regions {
		if best == -1 || r.Size() > l.Regions[best].Size() {
			best = i
		}
	}
	return best
}

// Label assigns every floor cell of g to exactly one region. Cells are scanned
// in row-major order and each new region is flooded with an explicit work stack.
func Label(g *grid.Grid) *Labels {
	w, h := g.Width(), g.Height()
	l := &Labels{
		Width:  w,
		Height: h,
		ids:    make([]int, w*h),
	}
	for i := range l.ids {
		l.ids[i] = unlabeled
	}

	work := stack.New[grid.Point]()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !g.IsFloor(x, y) || l.ids[y*w+x] != unlabeled {
				continue
			}
			id := len(l.Regions)
			l.Regions = append(l.Regions, Region{ID: id, Cells: flood(g, l.ids, work, grid.Point{X: x, Y: y}, id)})
		}
	}
	return l
}

// flood labels the component containing start. A cell is labeled when pushed
// so it is never pushed twice.
func flood(g *grid.Grid, ids []int, work *stack.Stack[grid.Point], start grid.Point, id int) []grid.Point {
	w := g.Width()
	var cells []grid.Point

	ids[start.Y*w+start.X] = id
	work.Push(start)
	for work.Size() > 0 {
		p := work.Pop()
		cells = append(cells, p)

		for _, n := range [4]grid.Point{{X: p.X - 1, Y: p.Y}, {X: p.X + 1, Y: p.Y}, {X: p.X, Y: p.Y - 1}, {X: p.X, Y: p.Y + 1}} {
			i, ok := g.Index(n.X, n.Y)
			if !ok || ids[i] != unlabeled || !g.IsFloor(n.X, n.Y) {
				continue
			}
			ids[i] = id
			work.Push(n)
		}
	}

	if len(cells) == 0 {
		panic(fmt.Sprintf("connectivity: region %d flooded from %v has no cells", id, start))
	}
	return cells
}
