package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maze-rl-go/internal/engine"
	"maze-rl-go/internal/maze"
)

func TestEnvDefaults(t *testing.T) {
	env := map[string]string{
		"MAZERL_WIDTH":    "7",
		"MAZERL_EPISODES": "30",
		"MAZERL_SEED":     "5",
		"MAZERL_EPSILON":  "0",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	opts, err := envDefaults(lookup)
	require.NoError(t, err)
	assert.Equal(t, 7, opts.width)
	assert.Equal(t, 20, opts.height)
	assert.Equal(t, 30, opts.episodes)
	assert.Equal(t, int64(5), opts.seed)
	assert.Equal(t, 0.0, opts.epsilon)
	assert.Equal(t, engine.DefaultAlpha, opts.alpha)
	assert.Equal(t, engine.DefaultMaxSteps, opts.maxSteps)

	env["MAZERL_GAMMA"] = "high"
	_, err = envDefaults(lookup)
	assert.ErrorContains(t, err, "MAZERL_GAMMA")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("MAZERL_HEIGHT=9\n"), 0o600))
	t.Setenv("MAZERL_HEIGHT", "")
	os.Unsetenv("MAZERL_HEIGHT")

	require.NoError(t, loadDotEnv(file))
	assert.Equal(t, "9", os.Getenv("MAZERL_HEIGHT"))
	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestTrainOptionsValidate(t *testing.T) {
	valid, err := envDefaults(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	require.NoError(t, valid.validate())

	cases := map[string]func(o *trainOptions){
		"epsilon must be between 0 and 1":  func(o *trainOptions) { o.epsilon = 1.2 },
		"alpha must be between 0 and 1":    func(o *trainOptions) { o.alpha = -0.1 },
		"gamma must be between 0 and 1":    func(o *trainOptions) { o.gamma = 2 },
		"episodes must be positive":        func(o *trainOptions) { o.episodes = 0 },
		"maze dimensions must be positive": func(o *trainOptions) { o.width = 0 },
	}
	for msg, mutate := range cases {
		o := valid
		mutate(&o)
		assert.ErrorContains(t, o.validate(), msg)
	}
}

func TestRenderMaze(t *testing.T) {
	grid, err := maze.NewPerfect(3, 1, maze.Point{}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var buf bytes.Buffer
	path := engine.Path{{X: 0}, {X: 1}, {X: 2}}
	require.NoError(t, renderMaze(&buf, grid, maze.Point{}, maze.Point{X: 2}, path, false))
	want := "" +
		"+---+---+---+\n" +
		"| S   *   E |\n" +
		"+---+---+---+\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderMazeShape(t *testing.T) {
	grid, err := maze.NewPerfect(5, 4, maze.Point{}, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderMaze(&buf, grid, maze.Point{}, maze.Point{X: 4, Y: 3}, nil, false))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2*4+1)
	for _, line := range lines {
		assert.Len(t, line, 4*5+1)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "S"))
	assert.Equal(t, 1, strings.Count(buf.String(), "E"))
}

func TestRenderReport(t *testing.T) {
	summary := engine.Summary{
		Episodes:  2,
		Successes: 1,
		History: []engine.EpisodeStats{
			{Episode: 1, Steps: 1000, Reward: -100, Capped: true},
			{Episode: 2, Steps: 12, Reward: 98.9, ReachedGoal: true},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, summary))
	html := buf.String()
	assert.Contains(t, html, "steps per episode")
	assert.Contains(t, html, "reward per episode")
	assert.Contains(t, html, "1 of 2 episodes reached the goal")
}

func TestRunTrain(t *testing.T) {
	for _, key := range []string{"MAZERL_WIDTH", "MAZERL_HEIGHT", "MAZERL_EPISODES", "MAZERL_SEED", "MAZERL_ALPHA", "MAZERL_GAMMA", "MAZERL_EPSILON", "MAZERL_MAX_STEPS"} {
		t.Setenv(key, "")
	}
	report := filepath.Join(t.TempDir(), "out", "report.html")

	var buf bytes.Buffer
	err := runTrain([]string{"-width", "4", "-height", "3", "-episodes", "50", "-seed", "3", "-no-color", "-report", report}, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "summary: success_rate=")
	assert.Contains(t, output, "path: start=(0,0) goal=(3,2)")
	_, err = os.Stat(report)
	assert.NoError(t, err)

	buf.Reset()
	err = runTrain([]string{"-width", "3", "-height", "3", "-episodes", "20", "-frames", "-no-color"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "frame 000\n")
}

func TestRunTrainRejectsBadFlags(t *testing.T) {
	var buf bytes.Buffer
	err := runTrain([]string{"-epsilon", "3"}, &buf)
	assert.ErrorContains(t, err, "epsilon must be between 0 and 1")
	assert.Empty(t, buf.String())
}
