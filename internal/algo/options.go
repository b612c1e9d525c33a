// Package algo implements the grid-based time-extended A* planner, the
// CBS high-level solver, the conflict detector, and the congestion-pricing
// auction controller described by the planning spec.
package algo

import "go.uber.org/zap"

// AStarOptions tunes the low-level time-extended search.
// Grounding: the functional-options-struct-with-defaults shape mirrors
// katalvlaran/lvlath's gridgraph.GridOptions / DefaultGridOptions.
type AStarOptions struct {
	// Logger receives Debug-level events for goal acceptance and for an
	// exhausted open set (individual expansions are not logged). Defaults to a no-op
	// logger so the planner is silent unless a caller opts in.
	Logger *zap.Logger
}

// DefaultAStarOptions returns the zero-tuning defaults.
func DefaultAStarOptions() AStarOptions {
	return AStarOptions{Logger: zap.NewNop()}
}

func (o AStarOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// CBSOptions tunes the high-level solver.
type CBSOptions struct {
	Logger *zap.Logger
}

// DefaultCBSOptions returns the zero-tuning defaults.
func DefaultCBSOptions() CBSOptions {
	return CBSOptions{Logger: zap.NewNop()}
}

func (o CBSOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// PricingStrategy selects how the auction converts a cell's congestion
// count into an asking price.
type PricingStrategy int

const (
	// LinearPricing charges base_price * count.
	LinearPricing PricingStrategy = iota
	// LogPricing charges base_price * ln(1 + count).
	LogPricing
)

// AuctionOptions tunes the congestion-mitigation outer loop. All fields
// have the same defaults and meaning as the spec's §4.4 parameters.
type AuctionOptions struct {
	MaxRounds int
	BasePrice float64
	Strategy  PricingStrategy
	// BidProbability is the chance a priced cell attracts a bid (spec: 0.7).
	BidProbability float64
	// BidMultiplierMin/Max bound the uniform multiplier applied to a
	// cell's price to produce its bid (spec: U(1.0, 1.5)).
	BidMultiplierMin, BidMultiplierMax float64
	// Horizon is the number of timesteps a winning bid's global vertex
	// constraint is applied over (spec default: 50).
	Horizon int
	Logger  *zap.Logger
}

// DefaultAuctionOptions returns the spec's defaults: 5 rounds, base price
// 10.0, linear pricing, 0.7 bid probability, U(1.0,1.5) multiplier, and a
// horizon of 50 timesteps.
func DefaultAuctionOptions() AuctionOptions {
	return AuctionOptions{
		MaxRounds:        5,
		BasePrice:        10.0,
		Strategy:         LinearPricing,
		BidProbability:   0.7,
		BidMultiplierMin: 1.0,
		BidMultiplierMax: 1.5,
		Horizon:          50,
		Logger:           zap.NewNop(),
	}
}

func (o AuctionOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
