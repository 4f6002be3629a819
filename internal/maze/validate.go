package maze

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrAsymmetricWall = errors.New("wall differs between adjacent cells")
	ErrOpenBoundary   = errors.New("boundary wall is open")
	ErrNotPerfect     = errors.New("maze is not a spanning tree")
)

// Validate checks the paired-wall invariant and the perfect-maze property:
// exactly Size()-1 open passages and every cell reachable from (0,0). A
// connected graph with n-1 edges has no cycles.
func Validate(g *Grid) error {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			cell := g.cells[g.Index(p)]
			for _, d := range Directions {
				n, ok := g.Neighbor(p, d)
				if !ok {
					if !cell.HasWall(d) {
						return fmt.Errorf("%w: %v %v", ErrOpenBoundary, p, d)
					}
					continue
				}
				if cell.HasWall(d) != g.cells[g.Index(n)].HasWall(d.Opposite()) {
					return fmt.Errorf("%w: %v %v", ErrAsymmetricWall, p, d)
				}
			}
		}
	}

	if open, want := g.OpenPassages(), g.Size()-1; open != want {
		return fmt.Errorf("%w: %d open passages, want %d", ErrNotPerfect, open, want)
	}
	if reached := len(reachable(g, Point{})); reached != g.Size() {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, reached, g.Size())
	}
	return nil
}

func reachable(g *Grid, from Point) []Point {
	visited := mapset.New[Point]()
	visited.Put(from)
	order := []Point{from}
	for i := 0; i < len(order); i++ {
		for _, d := range Directions {
			if !g.CanMove(order[i], d) {
				continue
			}
			n := order[i].Add(d)
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			order = append(order, n)
		}
	}
	return order
}
