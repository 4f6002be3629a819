package maze

import "github.com/zyedidia/generic/mapset"

// ShortestPath runs a breadth-first search through open passages. The
// returned path includes both endpoints. ok is false when either endpoint
// is off the grid or to is unreachable.
func ShortestPath(g *Grid, from, to Point) ([]Point, bool) {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil, false
	}
	parents := make(map[Point]Point, g.Size())
	visited := mapset.New[Point]()
	visited.Put(from)
	queue := []Point{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return unwind(parents, from, to), true
		}
		for _, d := range Directions {
			if !g.CanMove(current, d) {
				continue
			}
			next := current.Add(d)
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			parents[next] = current
			queue = append(queue, next)
		}
	}
	return nil, false
}

func unwind(parents map[Point]Point, from, to Point) []Point {
	var reversed []Point
	for p := to; p != from; p = parents[p] {
		reversed = append(reversed, p)
	}
	reversed = append(reversed, from)
	path := make([]Point, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}
