//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"syscall/js"

	"maze-rl-go/internal/engine"
	"maze-rl-go/internal/maze"
)

var (
	startFnOnce sync.Once
	trainerMu   sync.Mutex
	currentCtx  context.CancelFunc
	onSnapshot  js.Value
)

// trainRequest is the JSON payload accepted by mazerlStartTraining.
type trainRequest struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Config engine.Config `json:"config"`
}

func main() {
	registerCallbacks()
	// Prevent the program from exiting.
	select {}
}

func registerCallbacks() {
	startFnOnce.Do(func() {
		js.Global().Set("mazerlRegisterSnapshotHandler", js.FuncOf(registerSnapshotHandler))
		js.Global().Set("mazerlStartTraining", js.FuncOf(startTraining))
		js.Global().Set("mazerlStopTraining", js.FuncOf(stopTraining))
	})
}

func registerSnapshotHandler(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 || args[0].Type() != js.TypeFunction {
		fmt.Println("registerSnapshotHandler requires a function argument")
		return nil
	}
	onSnapshot = args[0]
	return nil
}

func startTraining(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		fmt.Println("startTraining requires a JSON config string")
		return nil
	}
	var req trainRequest
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		fmt.Printf("invalid config: %v\n", err)
		return nil
	}
	if onSnapshot.IsUndefined() || onSnapshot.IsNull() {
		fmt.Println("snapshot handler not registered")
		return nil
	}

	seed := req.Config.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))
	grid, err := maze.NewPerfect(req.Width, req.Height, maze.Point{}, rng)
	if err != nil {
		fmt.Printf("invalid maze: %v\n", err)
		return nil
	}
	cfg := req.Config
	cfg.Rand = rng
	trainer, err := engine.NewTrainer(grid, cfg)
	if err != nil {
		fmt.Printf("invalid config: %v\n", err)
		return nil
	}

	trainerMu.Lock()
	if currentCtx != nil {
		currentCtx()
	}
	ctx, cancel := context.WithCancel(context.Background())
	currentCtx = cancel
	trainerMu.Unlock()

	go func() {
		for snapshot := range trainer.Run(ctx) {
			payload := snapshotToJS(snapshot)
			if snapshot.Status == engine.StatusDone {
				path, reason := trainer.ExtractPath()
				payload.Set("maze", mazeToJS(grid))
				payload.Set("path", pathToJS(path))
				payload.Set("pathStop", reason.String())
			}
			onSnapshot.Invoke(payload)
		}
	}()
	return nil
}

func stopTraining(this js.Value, args []js.Value) interface{} {
	trainerMu.Lock()
	if currentCtx != nil {
		currentCtx()
		currentCtx = nil
	}
	trainerMu.Unlock()
	return nil
}

func pointToJS(p maze.Point) map[string]interface{} {
	return map[string]interface{}{"x": p.X, "y": p.Y}
}

func pathToJS(path engine.Path) []interface{} {
	points := make([]interface{}, len(path))
	for i, p := range path {
		points[i] = pointToJS(p)
	}
	return points
}

// mazeToJS encodes walls as [row][col][top, right, bottom, left].
func mazeToJS(grid *maze.Grid) []interface{} {
	rows := make([]interface{}, grid.Height())
	for y := 0; y < grid.Height(); y++ {
		cols := make([]interface{}, grid.Width())
		for x := 0; x < grid.Width(); x++ {
			walls := grid.CellAt(x, y).Walls
			cols[x] = []interface{}{walls[0], walls[1], walls[2], walls[3]}
		}
		rows[y] = cols
	}
	return rows
}

func snapshotToJS(snapshot engine.Snapshot) js.Value {
	valueMap := make([]interface{}, len(snapshot.ValueMap))
	for i, row := range snapshot.ValueMap {
		rowCopy := make([]interface{}, len(row))
		for j, v := range row {
			rowCopy[j] = v
		}
		valueMap[i] = rowCopy
	}
	config := map[string]interface{}{
		"episodes": snapshot.Config.Episodes,
		"maxSteps": snapshot.Config.MaxSteps,
		"seed":     snapshot.Config.Seed,
		"epsilon":  snapshot.Config.Epsilon,
		"alpha":    snapshot.Config.Alpha,
		"gamma":    snapshot.Config.Gamma,
		"start":    pointToJS(snapshot.Config.Start),
		"goal":     pointToJS(snapshot.Config.Goal),
	}
	payload := map[string]interface{}{
		"runId":             snapshot.RunID,
		"episode":           snapshot.Episode,
		"episodeSteps":      snapshot.EpisodeSteps,
		"episodeReward":     snapshot.EpisodeReward,
		"reachedGoal":       snapshot.ReachedGoal,
		"position":          pointToJS(snapshot.Position),
		"valueMap":          valueMap,
		"successCount":      snapshot.SuccessCount,
		"episodesCompleted": snapshot.EpisodesCompleted,
		"totalReward":       snapshot.TotalReward,
		"totalSteps":        snapshot.TotalSteps,
		"config":            config,
		"status":            snapshot.Status,
	}
	return js.ValueOf(payload)
}
