// Command run_benchmarks loads generated scenarios and runs both the bare
// CBS solver and the auction controller over each, writing a CSV of
// per-instance, per-solver results.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/elektrokombinacija/airspace-planner/internal/algo"
	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

type agentFile struct {
	ID    string `json:"id"`
	Start [2]int `json:"start"`
	Goal  [2]int `json:"goal"`
}

type instanceFile struct {
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Cells  [][]int     `json:"cells"`
	Agents []agentFile `json:"agents"`
}

type benchmarkResult struct {
	Timestamp string
	GoVersion string
	OS        string
	Arch      string
	Instance  string
	NumAgents int
	GridSize  string
	Solver    string
	RuntimeMs float64
	Success   bool
	Cost      int
	Rounds    int
}

func loadInstance(path string) (*core.Instance, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var f instanceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", err
	}

	cells := make([][]core.CellKind, len(f.Cells))
	for y, row := range f.Cells {
		cells[y] = make([]core.CellKind, len(row))
		for x, v := range row {
			if v != 0 {
				cells[y][x] = core.StaticObstacle
			}
		}
	}

	grid, err := core.NewGrid(cells)
	if err != nil {
		return nil, "", err
	}

	inst := core.NewInstance(grid)
	for _, a := range f.Agents {
		inst.AddAgent(core.AgentID(a.ID),
			core.Cell{X: a.Start[0], Y: a.Start[1]},
			core.Cell{X: a.Goal[0], Y: a.Goal[1]})
	}
	return inst, f.Name, nil
}

func runCBS(inst *core.Instance, name string) benchmarkResult {
	result := newResult(inst, name, "CBS")
	start := time.Now()
	sol := algo.NewCBS(algo.DefaultCBSOptions()).Solve(context.Background(), inst)
	result.RuntimeMs = msSince(start)
	if sol != nil {
		result.Success = true
		result.Cost = sol.Cost
	}
	return result
}

func runAuction(inst *core.Instance, name string, seed int64) benchmarkResult {
	result := newResult(inst, name, "Auction")
	rng := rand.New(rand.NewSource(seed))
	start := time.Now()
	outcome := algo.Auction(context.Background(), inst, rng, algo.DefaultAuctionOptions())
	result.RuntimeMs = msSince(start)
	result.Rounds = len(outcome.History)
	if outcome.Solution != nil {
		result.Success = true
		result.Cost = outcome.Solution.Cost
	}
	return result
}

func newResult(inst *core.Instance, name, solver string) benchmarkResult {
	return benchmarkResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Instance:  name,
		NumAgents: len(inst.Agents),
		GridSize:  fmt.Sprintf("%dx%d", inst.Grid.Width(), inst.Grid.Height()),
		Solver:    solver,
	}
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func writeCSV(results []benchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch", "instance", "num_agents",
		"grid_size", "solver", "runtime_ms", "success", "cost", "auction_rounds",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch, r.Instance,
			fmt.Sprintf("%d", r.NumAgents), r.GridSize, r.Solver,
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Success),
			fmt.Sprintf("%d", r.Cost), fmt.Sprintf("%d", r.Rounds),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []benchmarkResult) {
	type agg struct {
		runs, successes int
		totalMs         float64
	}
	bySolver := make(map[string]*agg)
	for _, r := range results {
		a, ok := bySolver[r.Solver]
		if !ok {
			a = &agg{}
			bySolver[r.Solver] = a
		}
		a.runs++
		if r.Success {
			a.successes++
			a.totalMs += r.RuntimeMs
		}
	}

	var names []string
	for name := range bySolver {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-10s %6s %10s %12s\n", "Solver", "Runs", "Success", "AvgTime(ms)")
	for _, name := range names {
		a := bySolver[name]
		avg := 0.0
		if a.successes > 0 {
			avg = a.totalMs / float64(a.successes)
		}
		fmt.Printf("%-10s %6d %10d %12.2f\n", name, a.runs, a.successes, avg)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "directory containing instance JSON files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "output CSV file")
	seed := flag.Int64("seed", 7, "auction bid simulation seed")

	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error finding instance files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no instance files found in %s; run gen_instances first\n", *inputDir)
		os.Exit(1)
	}

	var results []benchmarkResult
	for _, file := range files {
		inst, name, err := loadInstance(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading %s: %v\n", file, err)
			continue
		}
		results = append(results, runCBS(inst, name))
		results = append(results, runAuction(inst, name, *seed))
	}

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("results written to: %s\n", *outputFile)
	printSummary(results)
}
