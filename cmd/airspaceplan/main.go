// Command airspaceplan runs a demonstration scenario through the grid
// planner: bare CBS first, falling back to the congestion-pricing auction
// rounds when bare CBS finds no plan.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/airspace-planner/internal/algo"
	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "airspaceplan",
		Usage: "demonstration runner for the grid path planner and auction controller",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 8, Usage: "grid width"},
			&cli.IntFlag{Name: "height", Value: 8, Usage: "grid height"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "auction bid simulation seed"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			width, height := c.Int("width"), c.Int("height")

			logger := zap.NewNop()
			if c.Bool("verbose") {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}
			defer logger.Sync() //nolint:errcheck

			inst, err := crossingInstance(width, height)
			if err != nil {
				return err
			}

			fmt.Printf("=== airspaceplan: %dx%d grid, %d agents ===\n", width, height, len(inst.Agents))

			rng := rand.New(rand.NewSource(c.Int64("seed")))
			opts := algo.DefaultAuctionOptions()
			opts.Logger = logger

			outcome := algo.Auction(c.Context, inst, rng, opts)
			printOutcome(outcome)
			return nil
		},
	}
}

// crossingInstance builds a small scenario where every agent crosses
// through the grid's center cell (width/2, height/2).
func crossingInstance(width, height int) (*core.Instance, error) {
	grid, err := core.NewOpenGrid(width, height)
	if err != nil {
		return nil, err
	}

	inst := core.NewInstance(grid)
	cx, cy := width/2, height/2

	inst.AddAgent("agent-n", core.Cell{X: cx, Y: 0}, core.Cell{X: cx, Y: height - 1})
	inst.AddAgent("agent-s", core.Cell{X: cx, Y: height - 1}, core.Cell{X: cx, Y: 0})
	inst.AddAgent("agent-e", core.Cell{X: width - 1, Y: cy}, core.Cell{X: 0, Y: cy})
	inst.AddAgent("agent-w", core.Cell{X: 0, Y: cy}, core.Cell{X: width - 1, Y: cy})

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func printOutcome(outcome algo.AuctionOutcome) {
	if outcome.NoPath {
		fmt.Printf("agent %q has no unconstrained path\n", outcome.AgentNoPath)
		return
	}
	if outcome.Solution == nil {
		fmt.Printf("no solution: %s (after %d auction round(s))\n", reasonString(outcome.Reason), len(outcome.History))
		return
	}

	fmt.Printf("solved: cost=%d, auction rounds=%d\n", outcome.Solution.Cost, len(outcome.History))
	for _, round := range outcome.History {
		fmt.Printf("  round %d [%s]: %d priced cell(s), %d bid(s)\n",
			round.RoundID, round.CorrelationID, len(round.Prices), len(round.Bids))
	}
	for _, id := range sortedAgentIDsForPrint(outcome.Solution) {
		fmt.Printf("  %s: %v\n", id, outcome.Solution.Paths[id])
	}
}

func sortedAgentIDsForPrint(sol *core.Solution) []core.AgentID {
	ids := make([]core.AgentID, 0, len(sol.Paths))
	for id := range sol.Paths {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func reasonString(r algo.AuctionReason) string {
	switch r {
	case algo.ReasonNoCongestion:
		return "no-congestion"
	case algo.ReasonNoBidders:
		return "no-bidders"
	case algo.ReasonExceededMaxRounds:
		return "exceeded-max-rounds"
	default:
		return "unknown"
	}
}
