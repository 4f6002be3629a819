package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrAlreadyCarved = errors.New("grid already has open walls")

// frame is one pending cell of the depth-first carve: the directions it
// still has to try, in the order they were shuffled.
type frame struct {
	cell Point
	dirs [4]Direction
	next int
}

// Generate carves g into a perfect maze with randomized depth-first
// backtracking starting at start. Direction order is shuffled per cell
// using rng, so a fixed seed always yields the same maze.
//
// The walk keeps an explicit stack instead of recursing. Each frame is
// shuffled when pushed, the point at which a recursive carve would shuffle,
// so both forms consume rng identically.
func Generate(g *Grid, start Point, rng *rand.Rand) error {
	if !g.InBounds(start) {
		return fmt.Errorf("generate from %v: %w", start, g.outOfBounds(start))
	}
	for _, cell := range g.cells {
		if !cell.closed() {
			return ErrAlreadyCarved
		}
	}

	visited := make([]bool, len(g.cells))
	visited[g.Index(start)] = true
	stack := []frame{newFrame(start, rng)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		dir := top.dirs[top.next]
		top.next++

		neighbor, ok := g.Neighbor(top.cell, dir)
		if !ok {
			continue
		}
		idx := g.Index(neighbor)
		if visited[idx] {
			continue
		}
		g.removeWall(top.cell, dir)
		visited[idx] = true
		// top is invalid once the stack grows
		stack = append(stack, newFrame(neighbor, rng))
	}
	return nil
}

// NewPerfect allocates a width x height grid and carves it from start.
func NewPerfect(width, height int, start Point, rng *rand.Rand) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if err := Generate(g, start, rng); err != nil {
		return nil, err
	}
	return g, nil
}

func newFrame(cell Point, rng *rand.Rand) frame {
	f := frame{cell: cell, dirs: Directions}
	rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}
