package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/lox/blackjacksim/internal/display"
	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
)

// SimulateCmd runs the Monte Carlo simulation
type SimulateCmd struct {
	Rounds  int    `kong:"default='300000',help='Number of rounds to simulate'"`
	Seed    int64  `kong:"default='7',help='Master RNG seed'"`
	S17     bool   `kong:"help='Dealer stands on soft 17 (default: hits)'"`
	Rules   string `kong:"type='path',help='Path to an HCL rules file'"`
	Workers int    `kong:"default='0',help='Worker goroutines (0 = one per CPU)'"`
	Output  string `kong:"type='path',help='Write results as JSON to this file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	r, err := loadRules(c.Rules, c.S17)
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger.Info("starting simulation",
		"rounds", c.Rounds,
		"rule", r.Label(),
		"seed", c.Seed,
		"workers", workers)

	sim := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Rules:   r,
		Seed:    c.Seed,
		Workers: workers,
		Logger:  logger,
	}, strategy.NewActor())

	started := time.Now()
	trackers, summary, err := sim.Run()
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	logger.Info("simulation complete",
		"hands", trackers.Hands,
		"elapsed", time.Since(started).Round(time.Millisecond))

	fmt.Println(display.Summary(summary, trackers))

	if c.Output != "" {
		if err := writeResults(c.Output, summary, trackers); err != nil {
			return err
		}
		logger.Info("results written", "path", c.Output)
	}
	return nil
}

// writeResults writes the machine-readable results file. The write is atomic
// so a watcher tailing the path never sees a partial document.
func writeResults(path string, summary statistics.Summary, trackers *statistics.Trackers) error {
	doc := struct {
		Summary  statistics.Summary   `json:"summary"`
		Trackers *statistics.Trackers `json:"trackers"`
	}{summary, trackers}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// loadRules resolves the table rules from an optional HCL file plus the
// command line override.
func loadRules(path string, s17 bool) (rules.Rules, error) {
	r := rules.Default()
	if path != "" {
		loaded, err := rules.LoadFile(path)
		if err != nil {
			return rules.Rules{}, fmt.Errorf("loading rules: %w", err)
		}
		r = loaded
	}
	if s17 {
		r.HitSoft17 = false
	}
	return r, nil
}
