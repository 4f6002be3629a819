package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"

	"maze-rl-go/internal/engine"
)

// trainOptions holds the train subcommand settings. Environment variables
// provide the flag defaults.
type trainOptions struct {
	width           int
	height          int
	episodes        int
	maxSteps        int
	seed            int64
	alpha           float64
	gamma           float64
	epsilon         float64
	randomEndpoints bool
	report          string
	frames          bool
	noColor         bool
	verbose         bool
}

// loadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func envDefaults(lookup func(string) (string, bool)) (trainOptions, error) {
	opts := trainOptions{
		width:    20,
		height:   20,
		episodes: engine.DefaultEpisodes,
		maxSteps: engine.DefaultMaxSteps,
		alpha:    engine.DefaultAlpha,
		gamma:    engine.DefaultGamma,
		epsilon:  engine.DefaultEpsilon,
	}
	var err error
	if opts.width, err = envInt(lookup, "MAZERL_WIDTH", opts.width); err != nil {
		return opts, err
	}
	if opts.height, err = envInt(lookup, "MAZERL_HEIGHT", opts.height); err != nil {
		return opts, err
	}
	if opts.episodes, err = envInt(lookup, "MAZERL_EPISODES", opts.episodes); err != nil {
		return opts, err
	}
	if opts.maxSteps, err = envInt(lookup, "MAZERL_MAX_STEPS", opts.maxSteps); err != nil {
		return opts, err
	}
	seed, err := envInt(lookup, "MAZERL_SEED", 0)
	if err != nil {
		return opts, err
	}
	opts.seed = int64(seed)
	if opts.alpha, err = envFloat(lookup, "MAZERL_ALPHA", opts.alpha); err != nil {
		return opts, err
	}
	if opts.gamma, err = envFloat(lookup, "MAZERL_GAMMA", opts.gamma); err != nil {
		return opts, err
	}
	if opts.epsilon, err = envFloat(lookup, "MAZERL_EPSILON", opts.epsilon); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o trainOptions) validate() error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("maze dimensions must be positive (got %dx%d)", o.width, o.height)
	}
	if o.episodes <= 0 {
		return fmt.Errorf("episodes must be positive (got %d)", o.episodes)
	}
	if o.epsilon < 0 || o.epsilon > 1 {
		return fmt.Errorf("epsilon must be between 0 and 1 (got %.2f)", o.epsilon)
	}
	if o.alpha < 0 || o.alpha > 1 {
		return fmt.Errorf("alpha must be between 0 and 1 (got %.2f)", o.alpha)
	}
	if o.gamma < 0 || o.gamma > 1 {
		return fmt.Errorf("gamma must be between 0 and 1 (got %.2f)", o.gamma)
	}
	return nil
}

func envInt(lookup func(string) (string, bool), key string, fallback int) (int, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func envFloat(lookup func(string) (string, bool), key string, fallback float64) (float64, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}
