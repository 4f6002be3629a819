package engine

import (
	"math"

	"maze-rl-go/internal/maze"
)

// Action is a move attempted by the agent. Its values share the wall-flag
// ordering: up, right, down, left.
type Action = maze.Direction

type qKey struct {
	state  maze.Point
	action Action
}

// QTable is a sparse action-value store. Entries that were never written
// read as zero and are not materialized by reads.
type QTable struct {
	data map[qKey]float64
}

func NewQTable() *QTable {
	return &QTable{data: make(map[qKey]float64)}
}

func (q *QTable) Get(state maze.Point, action Action) float64 {
	return q.data[qKey{state: state, action: action}]
}

func (q *QTable) Set(state maze.Point, action Action, value float64) {
	q.data[qKey{state: state, action: action}] = value
}

// Len is the number of materialized entries.
func (q *QTable) Len() int {
	return len(q.data)
}

func (q *QTable) MaxValue(state maze.Point) float64 {
	_, value := q.best(state)
	return value
}

// Best returns the highest valued action for state. Ties go to the first
// action in enumeration order.
func (q *QTable) Best(state maze.Point) Action {
	action, _ := q.best(state)
	return action
}

func (q *QTable) best(state maze.Point) (Action, float64) {
	bestAction := maze.Up
	bestScore := math.Inf(-1)
	for _, action := range maze.Directions {
		score := q.Get(state, action)
		if score > bestScore {
			bestScore = score
			bestAction = action
		}
	}
	return bestAction, bestScore
}

// StateValues returns max_a Q(s, a) per cell as [row][col].
func (q *QTable) StateValues(width, height int) [][]float64 {
	values := make([][]float64, height)
	for y := 0; y < height; y++ {
		values[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			values[y][x] = q.MaxValue(maze.Point{X: x, Y: y})
		}
	}
	return values
}
