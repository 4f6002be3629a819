package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"maze-rl-go/internal/maze"
)

var ErrInvalidHyperparameter = errors.New("hyperparameter must be between 0 and 1")

// Transition records one environment step taken by the agent.
type Transition struct {
	State  maze.Point
	Action Action
	Next   maze.Point
	Reward float64
}

// Agent is an epsilon-greedy Q-learning agent. Its hyperparameters are
// fixed for its lifetime; the Q-table accumulates across episodes.
type Agent struct {
	rng      *rand.Rand
	qvalues  *QTable
	position maze.Point
	alpha    float64
	gamma    float64
	epsilon  float64
}

func NewAgent(rng *rand.Rand, alpha, gamma, epsilon float64) (*Agent, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{{"alpha", alpha}, {"gamma", gamma}, {"epsilon", epsilon}} {
		if p.value < 0 || p.value > 1 {
			return nil, fmt.Errorf("%s=%.2f: %w", p.name, p.value, ErrInvalidHyperparameter)
		}
	}
	return &Agent{
		rng:     rng,
		qvalues: NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
	}, nil
}

func (a *Agent) QTable() *QTable {
	return a.qvalues
}

func (a *Agent) Position() maze.Point {
	return a.position
}

func (a *Agent) Reset(p maze.Point) {
	a.position = p
}

// ChooseAction explores with probability epsilon, otherwise it exploits the
// current estimates with a first-wins tie-break.
func (a *Agent) ChooseAction(state maze.Point) Action {
	if a.rng.Float64() < a.epsilon {
		return maze.Directions[a.rng.Intn(len(maze.Directions))]
	}
	return a.qvalues.Best(state)
}

// Update applies the Q-learning rule. The target always uses the best
// next-state value, whichever action is taken next.
func (a *Agent) Update(state maze.Point, action Action, reward float64, next maze.Point) {
	current := a.qvalues.Get(state, action)
	target := reward + a.gamma*a.qvalues.MaxValue(next)
	a.qvalues.Set(state, action, current+a.alpha*(target-current))
}

// Step chooses an action at the current position, applies it to env, and
// learns from the outcome.
func (a *Agent) Step(env *Environment) Transition {
	state := a.position
	action := a.ChooseAction(state)
	next := env.Transition(state, action)
	reward := env.Reward(next)
	a.Update(state, action, reward, next)
	a.position = next
	return Transition{State: state, Action: action, Next: next, Reward: reward}
}
