// Package connectivity merges every floor region of a grid into one
// 4-connected component by carving L-shaped corridors.
package connectivity

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"
)

var (
	ErrDisconnected = errors.New("connectivity: floor is not a single connected component")
)

// Corridor records one carved connection
type Corridor struct {
	From, To grid.Point // Nearest cells of the connected network and the joined region
	Length   int        // Manhattan distance between From and To
	Carved   int        // Cells that were wall before carving
}

// Report describes what a Resolve pass did
type Report struct {
	RegionsBefore int
	MainSize      int
	Corridors     []Corridor
	CellsCarved   int
}

// Resolve connects every floor region of g to the largest one, mutating g in place.
// Grids with zero or one region are left untouched.
func Resolve(g *grid.Grid) Report {
	labels := Label(g)
	report := Report{RegionsBefore: len(labels.Regions)}
	if len(labels.Regions) == 0 {
		return report
	}

	main := labels.Largest()
	report.MainSize = labels.Regions[main].Size()
	if len(labels.Regions) == 1 {
		return report
	}

	// Joined regions extend the network so later regions can attach to them
	network := make([]grid.Point, 0, g.Count(grid.Floor))
	network = append(network, labels.Regions[main].Cells...)

	for i, region := range labels.Regions {
		if i == main {
			continue
		}
		if region.Size() == 0 {
			panic(fmt.Sprintf("connectivity: region %d has no cells", region.ID))
		}

		a, b := nearestPair(network, region.Cells)
		carved := carveCorridor(g, a, b)
		report.Corridors = append(report.Corridors, Corridor{
			From:   a,
			To:     b,
			Length: a.Manhattan(b),
			Carved: carved,
		})
		report.CellsCarved += carved
		network = append(network, region.Cells...)
	}

	return report
}

// nearestPair scans every (a, b) pair and returns the first with minimum
// Manhattan distance
func nearestPair(as, bs []grid.Point) (grid.Point, grid.Point) {
	bestA, bestB := as[0], bs[0]
	best := bestA.Manhattan(bestB)
	for _, a := range as {
		for _, b := range bs {
			if d := a.Manhattan(b); d < best {
				best, bestA, bestB = d, a, b
				if best == 1 {
					return bestA, bestB
				}
			}
		}
	}
	return bestA, bestB
}

// carveCorridor walks from a to b along X first, then Y, setting every cell on the
// way (b included) to floor. It returns how many wall cells were opened.
func carveCorridor(g *grid.Grid, a, b grid.Point) int {
	carved := 0
	open := func(p grid.Point) {
		if !g.InBounds(p.X, p.Y) {
			panic(fmt.Sprintf("connectivity: corridor cell %v outside %dx%d grid", p, g.Width(), g.Height()))
		}
		if g.AtPoint(p) != grid.Floor {
			g.SetPoint(p, grid.Floor)
			carved++
		}
	}

	p := a
	for p.X != b.X {
		p.X += sign(b.X - p.X)
		open(p)
	}
	for p.Y != b.Y {
		p.Y += sign(b.Y - p.Y)
		open(p)
	}
	open(b)
	return carved
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Verify counts the 4-connected floor components of g with an independent
// graph implementation. It returns ErrDisconnected when more than one remains.
func Verify(g *grid.Grid) (int, error) {
	cells := g.Values()
	graph := core.NewGraph(false, false)

	var floor []string
	for y, row := range cells {
		for x, v := range row {
			if v == 0 {
				continue
			}
			id := vertexID(x, y)
			floor = append(floor, id)
			graph.AddVertex(&core.Vertex{ID: id})
			if x > 0 && row[x-1] != 0 {
				graph.AddEdge(vertexID(x-1, y), id, 0)
			}
			if y > 0 && cells[y-1][x] != 0 {
				graph.AddEdge(vertexID(x, y-1), id, 0)
			}
		}
	}

	seen := make(map[string]bool, len(floor))
	components := 0
	for _, id := range floor {
		if seen[id] {
			continue
		}
		res, err := algorithms.BFS(graph, id, nil)
		if err != nil {
			return components, fmt.Errorf("connectivity: walk from %s: %w", id, err)
		}
		for v := range res.Visited {
			seen[v] = true
		}
		components++
	}

	if components > 1 {
		return components, fmt.Errorf("%w: %d components", ErrDisconnected, components)
	}
	return components, nil
}

func vertexID(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}
