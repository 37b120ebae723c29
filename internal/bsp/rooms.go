package bsp

import (
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/rng"
)

// CarveRooms shrinks each leaf by a random padding on every side.
// Paddings are drawn left, right, bottom, top and clamped so the room never
// inverts; a leaf that would leave no room is skipped.
func CarveRooms(leaves []grid.Rect, padMin, padMax int, r rng.Random) []grid.Rect {
	rooms := make([]grid.Rect, 0, len(leaves))
	for _, leaf := range leaves {
		w, h := leaf.Width(), leaf.Height()
		if w <= 0 || h <= 0 {
			continue
		}

		left := r.RandRange(padMin, padMax)
		right := r.RandRange(padMin, padMax)
		bottom := r.RandRange(padMin, padMax)
		top := r.RandRange(padMin, padMax)

		left = clamp(left, 0, w-1)
		right = clamp(right, 0, w-1-left)
		bottom = clamp(bottom, 0, h-1)
		top = clamp(top, 0, h-1-bottom)

		room := grid.NewRect(leaf.Min.X+left, leaf.Min.Y+bottom, leaf.Max.X-right, leaf.Max.Y-top)
		if room.Width() <= 0 || room.Height() <= 0 {
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// Rasterize carves rooms as floor into a width x height wall grid
func Rasterize(width, height int, rooms []grid.Rect) (*grid.Grid, error) {
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		g.FillRect(room, grid.Floor)
	}
	return g, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
