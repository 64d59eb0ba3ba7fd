// Package simulator drives the round engine for N rounds and aggregates the
// results. Per-round seeds are derived from the master seed, so a run is
// reproducible at any worker count.
package simulator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Rules   rules.Rules
	Seed    int64
	Workers int // 0 or 1 runs in-process without goroutines
	Logger  *log.Logger
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	actor  game.Actor
}

// New creates a new simulator with the given configuration. The actor makes
// every decision; the CLI passes the basic strategy actor.
func New(config Config, actor game.Actor) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, actor: actor}
}

// Run executes the simulation and returns the trackers and summary.
func (s *Simulator) Run() (*statistics.Trackers, statistics.Summary, error) {
	if err := s.config.Rules.Validate(); err != nil {
		return nil, statistics.Summary{}, err
	}
	if s.config.Rounds <= 0 {
		return nil, statistics.Summary{}, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}

	workers := s.config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > s.config.Rounds {
		workers = s.config.Rounds
	}

	s.config.Logger.Debug("starting simulation",
		"rounds", s.config.Rounds,
		"rule", s.config.Rules.Label(),
		"seed", s.config.Seed,
		"workers", workers)

	var trackers *statistics.Trackers
	var err error
	if workers == 1 {
		trackers, err = s.runRange(0, s.config.Rounds)
	} else {
		trackers, err = s.runParallel(workers)
	}
	if err != nil {
		return nil, statistics.Summary{}, err
	}

	if err := trackers.Validate(); err != nil {
		return nil, statistics.Summary{}, fmt.Errorf("trackers validation failed: %w", err)
	}

	summary := trackers.Summarize(s.config.Rules.Label(), s.config.Seed)
	s.config.Logger.Debug("simulation complete",
		"hands", trackers.Hands,
		"ev_per_round", summary.EVPerRound)
	return trackers, summary, nil
}

// runRange plays rounds [from, to) into a fresh Trackers.
func (s *Simulator) runRange(from, to int) (*statistics.Trackers, error) {
	trackers := statistics.New()
	for n := from; n < to; n++ {
		result, err := s.playRound(n)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n, err)
		}
		trackers.Record(result)
	}
	return trackers, nil
}

// runParallel shards the round range across workers, each with its own
// trackers, and merges afterwards. Merging is summation, so the totals match
// a single-worker run exactly.
func (s *Simulator) runParallel(workers int) (*statistics.Trackers, error) {
	results := make([]*statistics.Trackers, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		from := w * s.config.Rounds / workers
		to := (w + 1) * s.config.Rounds / workers
		g.Go(func() error {
			trackers, err := s.runRange(from, to)
			if err != nil {
				return err
			}
			results[w] = trackers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := statistics.New()
	for _, trackers := range results {
		merged.Merge(trackers)
	}
	return merged, nil
}

// playRound plays round n with its own deterministically derived draw
// source, so the result does not depend on which worker ran it.
func (s *Simulator) playRound(n int) (*game.Result, error) {
	rng := randutil.New(randutil.RoundSeed(s.config.Seed, n))
	source := deck.NewInfinite(rng)
	return game.PlayRound(source, s.config.Rules, s.actor)
}

// Simulate is a convenience function that runs a full simulation with the
// basic rule knobs the CLI exposes.
func Simulate(rounds int, r rules.Rules, seed int64, logger *log.Logger) (*statistics.Trackers, statistics.Summary, error) {
	sim := New(Config{
		Rounds: rounds,
		Rules:  r,
		Seed:   seed,
		Logger: logger,
	}, strategy.NewActor())
	return sim.Run()
}
