package engine

import (
	"github.com/zyedidia/generic/mapset"

	"maze-rl-go/internal/maze"
)

// StopReason explains why a greedy rollout ended.
type StopReason int

const (
	StopGoal StopReason = iota
	// StopRevisit covers cycles and no-op moves, since the current cell
	// is itself already visited.
	StopRevisit
	StopBlocked
)

func (r StopReason) String() string {
	switch r {
	case StopGoal:
		return "goal"
	case StopRevisit:
		return "revisit"
	case StopBlocked:
		return "blocked"
	}
	return "unknown"
}

// Path is an ordered sequence of visited cells.
type Path []maze.Point

func (p Path) End() maze.Point {
	if len(p) == 0 {
		return maze.Point{}
	}
	return p[len(p)-1]
}

// Prefixes returns p[:1], p[:2], ..., p for frame-by-frame rendering.
func (p Path) Prefixes() []Path {
	prefixes := make([]Path, len(p))
	for i := range p {
		prefixes[i] = p[: i+1 : i+1]
	}
	return prefixes
}

// ExtractPath follows the greedy policy of q from the environment start.
// It stops on reaching the goal, on a candidate cell that was already
// visited, or on a move blocked by a wall. A path that misses the goal is a
// valid result.
func ExtractPath(q *QTable, env *Environment) (Path, StopReason) {
	current := env.Start()
	path := Path{current}
	visited := mapset.New[maze.Point]()

	for !env.IsGoal(current) {
		visited.Put(current)
		action := q.Best(current)
		next := env.candidate(current, action)
		if visited.Has(next) {
			return path, StopRevisit
		}
		if !env.Grid().CanMove(current, action) {
			return path, StopBlocked
		}
		path = append(path, next)
		current = next
	}
	return path, StopGoal
}
