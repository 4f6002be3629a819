package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"maze-rl-go/internal/engine"
)

func writeReport(path string, summary engine.Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := renderReport(f, summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderReport writes an HTML page charting steps and reward per episode.
func renderReport(w io.Writer, summary engine.Summary) error {
	episodes := make([]string, 0, len(summary.History))
	steps := make([]opts.LineData, 0, len(summary.History))
	rewards := make([]opts.LineData, 0, len(summary.History))
	for _, ep := range summary.History {
		episodes = append(episodes, fmt.Sprintf("%d", ep.Episode))
		steps = append(steps, opts.LineData{Value: ep.Steps})
		rewards = append(rewards, opts.LineData{Value: ep.Reward})
	}

	stepsChart := charts.NewLine()
	stepsChart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "steps per episode",
			Subtitle: fmt.Sprintf("%d of %d episodes reached the goal", summary.Successes, summary.Episodes),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	stepsChart.SetXAxis(episodes).AddSeries("steps", steps)

	rewardChart := charts.NewLine()
	rewardChart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "reward per episode",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	rewardChart.SetXAxis(episodes).AddSeries("reward", rewards)

	page := components.NewPage()
	page.AddCharts(stepsChart, rewardChart)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
