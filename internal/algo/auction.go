package algo

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/airspace-planner/internal/core"
)

// AuctionReason explains why the auction outer loop ended without
// returning a solution.
type AuctionReason int

const (
	// ReasonNone means a solution was found (see AuctionOutcome.Solution).
	ReasonNone AuctionReason = iota
	// ReasonNoCongestion means unconstrained paths had no conflicts at all.
	ReasonNoCongestion
	// ReasonNoBidders means every priced cell drew no bid this round.
	ReasonNoBidders
	// ReasonExceededMaxRounds means all rounds ran out without a solution.
	ReasonExceededMaxRounds
)

// CellPrice is one priced hot cell in a round.
type CellPrice struct {
	Pos   core.Cell
	Count int
	Price float64
}

// AuctionRound is one round's history entry (§3's "auction round record").
type AuctionRound struct {
	RoundID       int
	CorrelationID uuid.UUID
	Prices        []CellPrice
	Bids          map[core.Cell]float64 // winning bid amount per cell that drew one
}

// AuctionOutcome is the result of running the auction controller. A non-nil
// Solution means success. Otherwise NoPath distinguishes a hard failure (an
// agent has no unconstrained path at all, named in AgentNoPath) from a soft
// stop named by Reason.
type AuctionOutcome struct {
	Solution    *core.Solution
	History     []AuctionRound
	Reason      AuctionReason
	AgentNoPath core.AgentID
	NoPath      bool
}

// Auction runs the congestion-mitigation outer loop described in the spec's
// §4.4: try CBS bare first, then price and auction off hot cells for up to
// opts.MaxRounds rounds, feeding winning bids back into CBS as global
// vertex constraints.
//
// rng must be supplied by the caller for reproducibility (§9's design note
// calls for an injectable generator); passing rand.New(rand.NewSource(seed))
// with a fixed seed makes a run's prices, bids, and constraints
// reproducible run to run.
//
// ctx is forwarded to every CBS call and is checked once per popped CBS
// node, never inside A*'s inner loop.
func Auction(ctx context.Context, inst *core.Instance, rng *rand.Rand, opts AuctionOptions) AuctionOutcome {
	log := opts.logger()
	cbs := NewCBS(CBSOptions{Logger: opts.Logger})

	if sol := cbs.Solve(ctx, inst); sol != nil {
		log.Info("auction: bare CBS succeeded, no auction needed")
		return AuctionOutcome{Solution: sol}
	}

	var history []AuctionRound
	var auctionConstraints []core.Constraint
	basePrice := opts.BasePrice
	agentIDs := inst.SortedAgentIDs()
	tMax := inst.EffectiveTMax()

	for round := 1; round <= opts.MaxRounds; round++ {
		unconstrained, failedAgent, ok := planUnconstrained(inst, agentIDs, tMax)
		if !ok {
			log.Info("auction: agent has no unconstrained path", zap.String("agent", string(failedAgent)))
			return AuctionOutcome{History: history, AgentNoPath: failedAgent, NoPath: true}
		}

		counter := congestionCounter(unconstrained)
		if len(counter) == 0 {
			log.Info("auction: no congestion detected", zap.Int("round", round))
			return AuctionOutcome{History: history, Reason: ReasonNoCongestion}
		}

		prices := priceHotCells(counter, basePrice, opts.Strategy)
		bids := simulateBids(prices, rng, opts)

		roundRecord := AuctionRound{
			RoundID:       round,
			CorrelationID: roundCorrelationID(rng),
			Prices:        prices,
			Bids:          bids,
		}
		history = append(history, roundRecord)
		log.Debug("auction round", zap.Int("round", round), zap.Int("priced_cells", len(prices)), zap.Int("bids", len(bids)))

		if len(bids) == 0 {
			log.Info("auction: no bidders", zap.Int("round", round))
			return AuctionOutcome{History: history, Reason: ReasonNoBidders}
		}

		basePrice = smoothedBasePrice(basePrice, prices, bids)

		for pos := range bids {
			for t := 0; t < opts.Horizon; t++ {
				auctionConstraints = append(auctionConstraints, core.Constraint{
					Agent: core.GlobalAgent, Time: t, Kind: core.VertexConstraint, Pos: pos,
				})
			}
		}

		if sol := cbs.SolveWithConstraints(ctx, inst, auctionConstraints); sol != nil {
			log.Info("auction: solved after auction constraints", zap.Int("round", round))
			return AuctionOutcome{Solution: sol, History: history}
		}
	}

	log.Info("auction: exceeded max rounds", zap.Int("rounds", opts.MaxRounds))
	return AuctionOutcome{History: history, Reason: ReasonExceededMaxRounds}
}

// planUnconstrained replans every agent independently with no inter-agent
// constraints, to probe where agents would naturally collide.
func planUnconstrained(inst *core.Instance, agentIDs []core.AgentID, tMax int) (map[core.AgentID]core.Path, core.AgentID, bool) {
	paths := make(map[core.AgentID]core.Path, len(agentIDs))
	for _, id := range agentIDs {
		spec := inst.Agents[id]
		path := SpaceTimeAStar(inst.Grid, id, spec.Start, spec.Goal, nil, tMax, DefaultAStarOptions())
		if path == nil {
			return nil, id, false
		}
		paths[id] = path
	}
	return paths, "", true
}

// congestionCounter builds a per-cell hot-count from unconstrained
// conflicts: a vertex conflict increments its cell once; an edge conflict
// increments both destination cells (§4.4.b).
func congestionCounter(paths map[core.AgentID]core.Path) map[core.Cell]int {
	conflicts := FindAllConflicts(paths, DefaultLandingHold)
	counter := make(map[core.Cell]int)
	for _, c := range conflicts {
		switch c.Kind {
		case VertexConflict:
			counter[c.Pos]++
		case EdgeConflict:
			counter[c.To]++
			counter[c.From]++
		}
	}
	return counter
}

// priceHotCells converts a congestion counter into a priced-cell list,
// ordered deterministically by cell so bid simulation consumes the RNG in
// a stable sequence across runs.
func priceHotCells(counter map[core.Cell]int, basePrice float64, strategy PricingStrategy) []CellPrice {
	cells := make([]core.Cell, 0, len(counter))
	for c := range counter {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})

	out := make([]CellPrice, 0, len(cells))
	for _, c := range cells {
		count := counter[c]
		var price float64
		switch strategy {
		case LogPricing:
			price = basePrice * math.Log(1+float64(count))
		default: // LinearPricing
			price = basePrice * float64(count)
		}
		out = append(out, CellPrice{Pos: c, Count: count, Price: price})
	}
	return out
}

// simulateBids is the stub external-bidding mechanism (§4.4.d): each priced
// cell independently draws a bid with probability opts.BidProbability, at
// price * U(BidMultiplierMin, BidMultiplierMax).
func simulateBids(prices []CellPrice, rng *rand.Rand, opts AuctionOptions) map[core.Cell]float64 {
	bids := make(map[core.Cell]float64)
	for _, cp := range prices {
		if rng.Float64() >= opts.BidProbability {
			continue
		}
		span := opts.BidMultiplierMax - opts.BidMultiplierMin
		multiplier := opts.BidMultiplierMin + rng.Float64()*span
		bids[cp.Pos] = cp.Price * multiplier
	}
	return bids
}

// smoothedBasePrice implements §4.4.f's (possibly-buggy, deliberately
// preserved) update rule: the new base price is smoothed against the
// maximum *priced* amount among cells that actually drew a bid, not the
// maximum among all priced cells. See the spec's open question on this.
func smoothedBasePrice(basePrice float64, prices []CellPrice, bids map[core.Cell]float64) float64 {
	priceByCell := make(map[core.Cell]float64, len(prices))
	for _, cp := range prices {
		priceByCell[cp.Pos] = cp.Price
	}
	maxBidCellPrice := 0.0
	first := true
	for pos := range bids {
		p := priceByCell[pos]
		if first || p > maxBidCellPrice {
			maxBidCellPrice = p
			first = false
		}
	}
	return 0.5*basePrice + 0.5*maxBidCellPrice
}

// roundCorrelationID derives a deterministic-per-rng-stream UUID for log
// correlation. Deriving it from rng (rather than uuid.New(), which reads
// crypto/rand) keeps an entire auction run reproducible from a single seed.
func roundCorrelationID(rng *rand.Rand) uuid.UUID {
	var id uuid.UUID
	for i := range id {
		id[i] = byte(rng.Intn(256))
	}
	id[6] = (id[6] & 0x0f) | 0x40 // version 4
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}
