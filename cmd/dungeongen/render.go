package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/dungeon"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/features"
	"github.com/KyleHolmquist/ProceduralDungeonGenerator/internal/grid"
)

const defaultWidth = 80

const (
	pillarRune   = 'o'
	roomWallRune = '+'
)

var (
	colorWall   = color.Style{color.FgGray}
	colorFloor  = color.Style{color.FgWhite, color.OpBold}
	colorPillar = color.Style{color.FgYellow, color.OpBold}
	colorRoom   = color.Style{color.FgBlue}
	colorHeader = color.Style{color.FgCyan, color.OpBold}
	colorWarn   = color.Style{color.FgRed, color.OpBold}
)

// terminalWidth returns the width of stdout, or defaultWidth when stdout is
// not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

type renderOptions struct {
	Color    bool
	MaxWidth int  // 0 renders every column
	Features bool // Mark room walls and pillars
}

// renderLevel writes a header and the grid rows of one level
func renderLevel(out *strings.Builder, l *dungeon.Layout, opts renderOptions) {
	header := fmt.Sprintf("Level %d (%s, seed %d)", l.Level, l.Generator, l.Seed)
	if opts.Color {
		header = colorHeader.Sprint(header)
	}
	out.WriteString(header + "\n")

	var marks map[grid.Point]rune
	if opts.Features {
		marks = featureMarks(l)
	}

	width := l.Grid.Width()
	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		width = opts.MaxWidth
	}

	for y := 0; y < l.Grid.Height(); y++ {
		out.WriteString(renderRow(l.Grid, y, width, marks, opts.Color))
		out.WriteString("\n")
	}
	if width < l.Grid.Width() {
		out.WriteString(fmt.Sprintf("(cropped to %d of %d columns)\n", width, l.Grid.Width()))
	}
}

// featureMarks marks the wall ring around each room, then pillars on top
func featureMarks(l *dungeon.Layout) map[grid.Point]rune {
	marks := make(map[grid.Point]rune)
	for _, room := range l.Rooms {
		ring := grid.NewRect(room.Min.X-1, room.Min.Y-1, room.Max.X+1, room.Max.Y+1)
		for _, p := range features.Outline(ring) {
			if l.Grid.InBounds(p.X, p.Y) && l.Grid.AtPoint(p) == grid.Wall {
				marks[p] = roomWallRune
			}
		}
	}
	for _, p := range features.Pillars(l.Grid) {
		marks[p] = pillarRune
	}
	return marks
}

// renderRow renders columns [0, width) of row y. Runs of the same glyph share
// one color escape.
func renderRow(g *grid.Grid, y, width int, marks map[grid.Point]rune, useColor bool) string {
	var row strings.Builder
	var run []rune
	var runStyle color.Style

	flush := func() {
		if len(run) == 0 {
			return
		}
		if useColor {
			row.WriteString(runStyle.Sprint(string(run)))
		} else {
			row.WriteString(string(run))
		}
		run = run[:0]
	}

	for x := 0; x < width; x++ {
		r := g.At(x, y).Rune()
		style := colorWall
		if g.IsFloor(x, y) {
			style = colorFloor
		}
		if m, ok := marks[grid.Point{X: x, Y: y}]; ok {
			r = m
			style = colorPillar
			if m == roomWallRune {
				style = colorRoom
			}
		}
		if len(run) > 0 && !sameStyle(style, runStyle) {
			flush()
		}
		runStyle = style
		run = append(run, r)
	}
	flush()
	return row.String()
}

func sameStyle(a, b color.Style) bool {
	return a.String() == b.String()
}

// summary is the one-line description printed after each level
func summary(l *dungeon.Layout) string {
	parts := []string{
		fmt.Sprintf("generator=%s", l.Generator),
		fmt.Sprintf("seed=%d", l.Seed),
		fmt.Sprintf("size=%dx%d", l.Grid.Width(), l.Grid.Height()),
		fmt.Sprintf("floor=%d", l.Grid.Count(grid.Floor)),
	}
	if len(l.Rooms) > 0 {
		parts = append(parts, fmt.Sprintf("rooms=%d", len(l.Rooms)))
	}
	if l.RoomsSkipped > 0 {
		parts = append(parts, fmt.Sprintf("rooms_skipped=%d", l.RoomsSkipped))
	}
	if l.Target > 0 {
		parts = append(parts, fmt.Sprintf("placed=%d/%d", l.Placed, l.Target))
	}
	if l.Report != nil {
		parts = append(parts,
			fmt.Sprintf("regions=%d", l.Report.RegionsBefore),
			fmt.Sprintf("corridors=%d", len(l.Report.Corridors)),
		)
	}
	if l.EdgeWalls != nil {
		parts = append(parts, fmt.Sprintf("edge_walls=%d", len(l.EdgeWalls)))
	}
	if l.Skipped {
		parts = append(parts, "skipped")
	}
	parts = append(parts, "fingerprint="+l.Grid.Fingerprint()[:16])
	return strings.Join(parts, " ")
}
