package maze

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// Direction indexes both agent moves and cell walls.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in enumeration order. Greedy tie-breaks
// depend on this order.
var Directions = [4]Direction{Up, Right, Down, Left}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

type Point struct {
	X int
	Y int
}

// Add returns p moved one cell in direction d. The result may lie outside
// any grid.
func (p Point) Add(d Direction) Point {
	dx, dy := d.delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell holds the four wall flags of one grid slot, ordered top, right,
// bottom, left.
type Cell struct {
	Walls [4]bool
}

func (c Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

func (c Cell) closed() bool {
	return c.Walls[Up] && c.Walls[Right] && c.Walls[Down] && c.Walls[Left]
}

// OutOfBoundsError reports an access outside the grid. Methods that cannot
// return an error panic with it.
type OutOfBoundsError struct {
	Point  Point
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v outside %dx%d grid", e.Point, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// Grid is a width x height maze stored in row-major order.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New returns a grid with every wall present.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Walls: [4]bool{true, true, true, true}}
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Index maps p to its row-major slot. It panics with *OutOfBoundsError when
// p is outside the grid.
func (g *Grid) Index(p Point) int {
	if !g.InBounds(p) {
		panic(g.outOfBounds(p))
	}
	return p.Y*g.width + p.X
}

// CellAt panics with *OutOfBoundsError when (x, y) is outside the grid.
func (g *Grid) CellAt(x, y int) Cell {
	return g.cells[g.Index(Point{X: x, Y: y})]
}

// Lookup is the non-panicking form of CellAt.
func (g *Grid) Lookup(p Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return g.cells[p.Y*g.width+p.X], true
}

// Neighbor returns the adjacent cell in direction d, if it exists.
func (g *Grid) Neighbor(p Point, d Direction) (Point, bool) {
	n := p.Add(d)
	if !g.InBounds(n) {
		return p, false
	}
	return n, true
}

// CanMove reports whether a step from p in direction d crosses an open
// wall and stays on the grid.
func (g *Grid) CanMove(p Point, d Direction) bool {
	cell, ok := g.Lookup(p)
	if !ok || cell.HasWall(d) {
		return false
	}
	_, ok = g.Neighbor(p, d)
	return ok
}

// OpenPassages counts open wall pairs between adjacent cells.
func (g *Grid) OpenPassages() int {
	open := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := g.cells[y*g.width+x]
			// count each pair once, from its left or top cell
			if x < g.width-1 && !cell.HasWall(Right) {
				open++
			}
			if y < g.height-1 && !cell.HasWall(Down) {
				open++
			}
		}
	}
	return open
}

// removeWall opens the wall between p and its neighbour in direction d on
// both cells.
func (g *Grid) removeWall(p Point, d Direction) {
	n := p.Add(d)
	g.cells[g.Index(p)].Walls[d] = false
	g.cells[g.Index(n)].Walls[d.Opposite()] = false
}

func (g *Grid) outOfBounds(p Point) *OutOfBoundsError {
	return &OutOfBoundsError{Point: p, Width: g.width, Height: g.height}
}
