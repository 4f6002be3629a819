package engine

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"maze-rl-go/internal/maze"
)

const (
	StatusEpisodeComplete = "episode_complete"
	StatusDone            = "done"
	StatusCancelled       = "cancelled"
)

const (
	DefaultEpisodes = 500
	DefaultMaxSteps = 1000
	DefaultAlpha    = 0.1
	DefaultGamma    = 0.9
	DefaultEpsilon  = 0.2
)

type Config struct {
	Episodes int
	// MaxSteps caps a single episode. Hitting it ends the episode early.
	MaxSteps int
	Seed     int64
	Alpha    float64
	Gamma    float64
	Epsilon  float64
	Start    maze.Point
	Goal     maze.Point
	// RandomEndpoints replaces Start and Goal with a random left-edge start
	// and right-edge goal drawn from the trainer's random source.
	RandomEndpoints bool
	// Rand is the random source for exploration. When nil one is seeded
	// from Seed.
	Rand   *rand.Rand         `json:"-"`
	Logger logrus.FieldLogger `json:"-"`
}

// DefaultConfig returns the standard hyperparameters with the goal in the
// cell opposite the origin.
func DefaultConfig(width, height int) Config {
	return Config{
		Episodes: DefaultEpisodes,
		MaxSteps: DefaultMaxSteps,
		Seed:     1,
		Alpha:    DefaultAlpha,
		Gamma:    DefaultGamma,
		Epsilon:  DefaultEpsilon,
		Start:    maze.Point{},
		Goal:     maze.Point{X: width - 1, Y: height - 1},
	}
}

// EpisodeStats summarizes one finished episode.
type EpisodeStats struct {
	Episode     int
	Steps       int
	Reward      float64
	ReachedGoal bool
	Capped      bool
}

type Summary struct {
	Episodes       int
	Successes      int
	CappedEpisodes int
	TotalSteps     int
	TotalReward    float64
	History        []EpisodeStats
}

type Snapshot struct {
	RunID             string
	Episode           int
	EpisodeSteps      int
	EpisodeReward     float64
	ReachedGoal       bool
	Position          maze.Point
	ValueMap          [][]float64
	SuccessCount      int
	EpisodesCompleted int
	TotalReward       float64
	TotalSteps        int
	Config            Config
	Status            string
}

type Trainer struct {
	cfg     Config
	runID   uuid.UUID
	log     logrus.FieldLogger
	env     *Environment
	agent   *Agent
	summary Summary
}

func NewTrainer(grid *maze.Grid, cfg Config) (*Trainer, error) {
	if cfg.Episodes < 0 {
		cfg.Episodes = 0
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if cfg.RandomEndpoints {
		cfg.Start, cfg.Goal = RandomEndpoints(grid, rng)
	}
	env, err := NewEnvironment(grid, cfg.Start, cfg.Goal)
	if err != nil {
		return nil, err
	}
	agent, err := NewAgent(rng, cfg.Alpha, cfg.Gamma, cfg.Epsilon)
	if err != nil {
		return nil, err
	}
	runID := uuid.New()
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cfg.Rand = nil
	cfg.Logger = nil
	return &Trainer{
		cfg:   cfg,
		runID: runID,
		log:   logger.WithField("run_id", runID.String()),
		env:   env,
		agent: agent,
	}, nil
}

func (t *Trainer) RunID() string {
	return t.runID.String()
}

func (t *Trainer) Config() Config {
	return t.cfg
}

func (t *Trainer) Agent() *Agent {
	return t.agent
}

func (t *Trainer) Environment() *Environment {
	return t.env
}

// Summary returns the totals of all episodes run so far.
func (t *Trainer) Summary() Summary {
	s := t.summary
	s.History = append([]EpisodeStats(nil), t.summary.History...)
	return s
}

// Train runs every configured episode on the calling goroutine. The context
// is checked between episodes; on cancellation the partial summary is
// returned with ctx.Err().
func (t *Trainer) Train(ctx context.Context) (Summary, error) {
	for episode := t.summary.Episodes + 1; episode <= t.cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			t.log.WithField("episode", episode).Warn("training cancelled")
			return t.Summary(), err
		}
		t.runEpisode(episode)
	}
	t.logSummary()
	return t.Summary(), nil
}

// Run trains on a separate goroutine and streams one snapshot per episode,
// followed by a final done or cancelled snapshot. The goroutine is the only
// writer of the Q-table while the channel is open.
func (t *Trainer) Run(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for episode := t.summary.Episodes + 1; episode <= t.cfg.Episodes; episode++ {
			select {
			case <-ctx.Done():
				out <- t.snapshot(StatusCancelled, EpisodeStats{Episode: episode})
				return
			default:
			}
			stats := t.runEpisode(episode)
			select {
			case out <- t.snapshot(StatusEpisodeComplete, stats):
			case <-ctx.Done():
				return
			}
		}
		t.logSummary()
		out <- t.snapshot(StatusDone, EpisodeStats{Episode: t.cfg.Episodes})
	}()
	return out
}

// ExtractPath rolls out the greedy policy learned so far.
func (t *Trainer) ExtractPath() (Path, StopReason) {
	return ExtractPath(t.agent.QTable(), t.env)
}

func (t *Trainer) runEpisode(episode int) EpisodeStats {
	t.agent.Reset(t.env.Start())
	stats := EpisodeStats{Episode: episode}
	for !t.env.IsGoal(t.agent.Position()) && stats.Steps < t.cfg.MaxSteps {
		tr := t.agent.Step(t.env)
		stats.Reward += tr.Reward
		stats.Steps++
	}
	stats.ReachedGoal = t.env.IsGoal(t.agent.Position())
	stats.Capped = !stats.ReachedGoal

	t.summary.Episodes++
	t.summary.TotalSteps += stats.Steps
	t.summary.TotalReward += stats.Reward
	if stats.ReachedGoal {
		t.summary.Successes++
	}
	if stats.Capped {
		t.summary.CappedEpisodes++
	}
	t.summary.History = append(t.summary.History, stats)

	entry := t.log.WithFields(logrus.Fields{
		"episode":      episode,
		"steps":        stats.Steps,
		"reward":       stats.Reward,
		"reached_goal": stats.ReachedGoal,
	})
	if stats.Capped {
		entry.WithField("max_steps", t.cfg.MaxSteps).Debug("episode hit step cap")
	} else {
		entry.Debug("episode completed")
	}
	return stats
}

func (t *Trainer) logSummary() {
	t.log.WithFields(logrus.Fields{
		"episodes":    t.summary.Episodes,
		"successes":   t.summary.Successes,
		"capped":      t.summary.CappedEpisodes,
		"total_steps": t.summary.TotalSteps,
		"q_entries":   t.agent.QTable().Len(),
	}).Info("training completed")
}

func (t *Trainer) snapshot(status string, stats EpisodeStats) Snapshot {
	grid := t.env.Grid()
	return Snapshot{
		RunID:             t.runID.String(),
		Episode:           stats.Episode,
		EpisodeSteps:      stats.Steps,
		EpisodeReward:     stats.Reward,
		ReachedGoal:       stats.ReachedGoal,
		Position:          t.agent.Position(),
		ValueMap:          t.agent.QTable().StateValues(grid.Width(), grid.Height()),
		SuccessCount:      t.summary.Successes,
		EpisodesCompleted: t.summary.Episodes,
		TotalReward:       t.summary.TotalReward,
		TotalSteps:        t.summary.TotalSteps,
		Config:            t.cfg,
		Status:            status,
	}
}
