package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"maze-rl-go/internal/engine"
	"maze-rl-go/internal/maze"
)

// renderMaze draws the grid as ASCII with S at the start, E at the goal and
// * on every other cell of path.
func renderMaze(w io.Writer, grid *maze.Grid, start, goal maze.Point, path engine.Path, color bool) error {
	au := aurora.NewAurora(color)
	onPath := make(map[maze.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("+" + strings.Repeat("---+", grid.Width()) + "\n")
	for y := 0; y < grid.Height(); y++ {
		bw.WriteString("|")
		for x := 0; x < grid.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			cell := grid.CellAt(x, y)
			switch {
			case p == start:
				bw.WriteString(" " + au.Bold(au.Green("S")).String() + " ")
			case p == goal:
				bw.WriteString(" " + au.Bold(au.Red("E")).String() + " ")
			case onPath[p]:
				bw.WriteString(" " + au.Blue("*").String() + " ")
			default:
				bw.WriteString("   ")
			}
			if cell.HasWall(maze.Right) {
				bw.WriteString("|")
			} else {
				bw.WriteString(" ")
			}
		}
		bw.WriteString("\n+")
		for x := 0; x < grid.Width(); x++ {
			if grid.CellAt(x, y).HasWall(maze.Down) {
				bw.WriteString("---+")
			} else {
				bw.WriteString("   +")
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
