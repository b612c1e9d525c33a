// Command gen_instances generates deterministic grid-planning scenarios
// for benchmarking, writing one JSON file per instance.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
)

// agentFile is the on-disk shape of one agent's start/goal pair.
type agentFile struct {
	ID    string `json:"id"`
	Start [2]int `json:"start"`
	Goal  [2]int `json:"goal"`
}

// instanceFile is the on-disk shape of a generated scenario: a rectangular
// grid of 0 (open) / 1 (static obstacle) cells, plus an agent list.
type instanceFile struct {
	Name            string      `json:"name"`
	Seed            int64       `json:"seed"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	ObstacleDensity float64     `json:"obstacle_density"`
	Cells           [][]int     `json:"cells"` // cells[y][x], 0 = open, 1 = obstacle
	Agents          []agentFile `json:"agents"`
}

func generateInstance(seed int64, width, height, numAgents int, obstacleDensity float64) *instanceFile {
	rng := rand.New(rand.NewSource(seed))

	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
		for x := range cells[y] {
			if rng.Float64() < obstacleDensity {
				cells[y][x] = 1
			}
		}
	}

	inst := &instanceFile{
		Name:            fmt.Sprintf("scenario_%dx%d_%da_%d", width, height, numAgents, seed),
		Seed:            seed,
		Width:           width,
		Height:          height,
		ObstacleDensity: obstacleDensity,
		Cells:           cells,
	}

	used := make(map[[2]int]bool)
	openCell := func() [2]int {
		for {
			x, y := rng.Intn(width), rng.Intn(height)
			if cells[y][x] == 1 || used[[2]int{x, y}] {
				continue
			}
			return [2]int{x, y}
		}
	}

	for i := 0; i < numAgents; i++ {
		start := openCell()
		used[start] = true
		goal := openCell()
		used[goal] = true
		inst.Agents = append(inst.Agents, agentFile{
			ID:    fmt.Sprintf("agent-%d", i),
			Start: start,
			Goal:  goal,
		})
	}

	return inst
}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	numAgents := flag.Int("agents", 8, "number of agents")
	width := flag.Int("width", 16, "grid width")
	height := flag.Int("height", 16, "grid height")
	obstacleDensity := flag.Float64("obstacles", 0.1, "fraction of cells that are static obstacles")
	outputDir := flag.String("output", "testdata", "output directory")
	scaling := flag.Bool("scaling", false, "generate a scaling suite (4, 16, 64, 256 agents)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var instances []*instanceFile
	if *scaling {
		for _, n := range []int{4, 16, 64, 256} {
			side := int(math.Ceil(math.Sqrt(float64(n)) * 4))
			instances = append(instances, generateInstance(*seed, side, side, n, *obstacleDensity))
		}
	} else {
		instances = append(instances, generateInstance(*seed, *width, *height, *numAgents, *obstacleDensity))
	}

	for _, inst := range instances {
		name := filepath.Join(*outputDir, inst.Name+".json")
		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error marshaling %s: %v\n", inst.Name, err)
			continue
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", name, err)
			continue
		}
		fmt.Printf("generated: %s (%d agents, %dx%d grid)\n", name, len(inst.Agents), inst.Width, inst.Height)
	}
}
