// Package features derives placement data from a finished grid: the wall
// segments that bound the floor, free-standing pillars and room outlines.
package features

import (
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
)

// Side is the face of a floor cell an edge wall sits on
type Side int

const (
	East Side = iota
	West
	North
	South
)

// String returns the string representation of a Side
func (s Side) String() string {
	switch s {
	case East:
		return "east"
	case West:
		return "west"
	case North:
		return "north"
	case South:
		return "south"
	default:
		return "unknown"
	}
}

// Offset returns the neighbor direction of the side. North is -y.
func (s Side) Offset() grid.Point {
	switch s {
	case East:
		return grid.Point{X: 1}
	case West:
		return grid.Point{X: -1}
	case North:
		return grid.Point{Y: -1}
	default:
		return grid.Point{Y: 1}
	}
}

// Edge is a wall face on one side of a floor cell
type Edge struct {
	Cell grid.Point
	Side Side
}

var sides = [4]Side{East, West, North, South}

// EdgeWalls returns one edge for every side of a floor cell whose neighbor is
// not floor, scanning cells in row-major order. The grid border counts as wall.
func EdgeWalls(g *grid.Grid) []Edge {
	var edges []Edge
	for _, p := range g.Points(grid.Floor) {
		for _, s := range sides {
			if g.AtPoint(p.Add(s.Offset())) != grid.Floor {
				edges = append(edges, Edge{Cell: p, Side: s})
			}
		}
	}
	return edges
}

// Pillars returns the wall cells with at least three floor 4-neighbors
func Pillars(g *grid.Grid) []grid.Point {
	var pillars []grid.Point
	for _, p := range g.Points(grid.Wall) {
		floors := 0
		for _, d := range grid.Cardinals {
			if g.AtPoint(p.Add(d)) == grid.Floor {
				floors++
			}
		}
		if floors >= 3 {
			pillars = append(pillars, p)
		}
	}
	return pillars
}

// Outline returns the perimeter cells of r clockwise from r.Min, each once
func Outline(r grid.Rect) []grid.Point {
	if r.Empty() {
		return nil
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1

	var pts []grid.Point
	for x := x0; x <= x1; x++ {
		pts = append(pts, grid.Point{X: x, Y: y0})
	}
	for y := y0 + 1; y <= y1; y++ {
		pts = append(pts, grid.Point{X: x1, Y: y})
	}
	if y1 > y0 {
		for x := x1 - 1; x >= x0; x-- {
			pts = append(pts, grid.Point{X: x, Y: y1})
		}
	}
	if x1 > x0 {
		for y := y1 - 1; y > y0; y-- {
			pts = append(pts, grid.Point{X: x0, Y: y})
		}
	}
	return pts
}
