package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"maze-rl-go/internal/maze"
)

const (
	GoalReward = 100.0
	StepReward = -0.1
)

var ErrInvalidEndpoint = errors.New("endpoint outside the maze")

// Environment binds a finished maze to the start and goal cells of a run.
// The grid is treated as read-only.
type Environment struct {
	grid  *maze.Grid
	start maze.Point
	goal  maze.Point
}

func NewEnvironment(grid *maze.Grid, start, goal maze.Point) (*Environment, error) {
	if !grid.InBounds(start) {
		return nil, fmt.Errorf("start %v: %w", start, ErrInvalidEndpoint)
	}
	if !grid.InBounds(goal) {
		return nil, fmt.Errorf("goal %v: %w", goal, ErrInvalidEndpoint)
	}
	return &Environment{grid: grid, start: start, goal: goal}, nil
}

// RandomEndpoints places the start on the left edge and the goal on the
// right edge, each at a random row.
func RandomEndpoints(grid *maze.Grid, rng *rand.Rand) (start, goal maze.Point) {
	start = maze.Point{X: 0, Y: rng.Intn(grid.Height())}
	goal = maze.Point{X: grid.Width() - 1, Y: rng.Intn(grid.Height())}
	return start, goal
}

func (e *Environment) Grid() *maze.Grid {
	return e.grid
}

func (e *Environment) Start() maze.Point {
	return e.start
}

func (e *Environment) Goal() maze.Point {
	return e.goal
}

func (e *Environment) IsGoal(p maze.Point) bool {
	return p == e.goal
}

// Transition applies action at state. Moves through a wall or off the grid
// leave the state unchanged.
func (e *Environment) Transition(state maze.Point, action Action) maze.Point {
	if !e.grid.CanMove(state, action) {
		return state
	}
	return state.Add(action)
}

// Reward scores arriving at next. Bumping into a wall costs a normal step.
func (e *Environment) Reward(next maze.Point) float64 {
	if e.IsGoal(next) {
		return GoalReward
	}
	return StepReward
}

// candidate is the geometric move used by greedy rollouts. Leaving the grid
// yields the same cell; walls are not consulted.
func (e *Environment) candidate(state maze.Point, action Action) maze.Point {
	if next, ok := e.grid.Neighbor(state, action); ok {
		return next
	}
	return state
}
