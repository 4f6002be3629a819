package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"maze-rl-go/internal/engine"
	"maze-rl-go/internal/maze"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mazerl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("missing subcommand; try 'train'")
	}
	if err := loadDotEnv(); err != nil {
		return err
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "train":
		return runTrain(os.Args[2:], os.Stdout)
	default:
		return fmt.Errorf("unknown subcommand %q", subcommand)
	}
}

func parseTrainFlags(args []string) (trainOptions, error) {
	defaults, err := envDefaults(os.LookupEnv)
	if err != nil {
		return defaults, err
	}

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := defaults
	fs.IntVar(&opts.width, "width", defaults.width, "maze width in cells")
	fs.IntVar(&opts.height, "height", defaults.height, "maze height in cells")
	fs.IntVar(&opts.episodes, "episodes", defaults.episodes, "number of training episodes")
	fs.IntVar(&opts.maxSteps, "max-steps", defaults.maxSteps, "step cap per episode")
	fs.Int64Var(&opts.seed, "seed", defaults.seed, "deterministic seed (0 for default)")
	fs.Float64Var(&opts.alpha, "alpha", defaults.alpha, "learning rate (0-1)")
	fs.Float64Var(&opts.gamma, "gamma", defaults.gamma, "discount factor (0-1)")
	fs.Float64Var(&opts.epsilon, "epsilon", defaults.epsilon, "exploration rate (0-1)")
	fs.BoolVar(&opts.randomEndpoints, "random-endpoints", false, "start on a random left-edge cell and finish on a random right-edge cell")
	fs.StringVar(&opts.report, "report", "", "write an HTML training report to this file")
	fs.BoolVar(&opts.frames, "frames", false, "print one maze frame per step of the learned path")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable ANSI colours")
	fs.BoolVar(&opts.verbose, "v", false, "log every episode")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, opts.validate()
}

func runTrain(args []string, out io.Writer) error {
	opts, err := parseTrainFlags(args)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: opts.noColor})
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	seed := normalizeSeed(opts.seed)
	logger.WithFields(logrus.Fields{
		"width":    opts.width,
		"height":   opts.height,
		"episodes": opts.episodes,
		"seed":     seed,
		"alpha":    opts.alpha,
		"gamma":    opts.gamma,
		"epsilon":  opts.epsilon,
	}).Info("train config")

	rng := rand.New(rand.NewSource(seed))
	grid, err := maze.NewPerfect(opts.width, opts.height, maze.Point{}, rng)
	if err != nil {
		return err
	}
	if err := maze.Validate(grid); err != nil {
		return fmt.Errorf("generated maze: %w", err)
	}

	cfg := engine.DefaultConfig(opts.width, opts.height)
	cfg.Episodes = opts.episodes
	cfg.MaxSteps = opts.maxSteps
	cfg.Seed = seed
	cfg.Alpha = opts.alpha
	cfg.Gamma = opts.gamma
	cfg.Epsilon = opts.epsilon
	cfg.RandomEndpoints = opts.randomEndpoints
	cfg.Rand = rng
	cfg.Logger = logger

	trainer, err := engine.NewTrainer(grid, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	summary, err := trainer.Train(ctx)
	if err != nil {
		return err
	}

	env := trainer.Environment()
	path, reason := trainer.ExtractPath()
	color := !opts.noColor
	if opts.frames {
		for i, frame := range path.Prefixes() {
			fmt.Fprintf(out, "frame %03d\n", i)
			if err := renderMaze(out, grid, env.Start(), env.Goal(), frame, color); err != nil {
				return err
			}
		}
	} else if err := renderMaze(out, grid, env.Start(), env.Goal(), path, color); err != nil {
		return err
	}

	shortest, _ := maze.ShortestPath(grid, env.Start(), env.Goal())
	successRate := float64(summary.Successes) / float64(summary.Episodes)
	avgSteps := float64(summary.TotalSteps) / float64(summary.Episodes)
	fmt.Fprintf(out, "summary: success_rate=%.2f avg_steps=%.2f capped=%d\n", successRate, avgSteps, summary.CappedEpisodes)
	fmt.Fprintf(out, "path: start=%v goal=%v moves=%d stop=%s shortest=%d\n", env.Start(), env.Goal(), len(path)-1, reason, len(shortest)-1)

	if opts.report != "" {
		if err := writeReport(opts.report, summary); err != nil {
			return err
		}
		logger.WithField("file", opts.report).Info("report written")
	}
	return nil
}

func normalizeSeed(seed int64) int64 {
	if seed == 0 {
		return 1
	}
	return seed
}
