package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-casino/internal/config"
	"github.com/lox/holdem-casino/internal/fileutil"
	"github.com/lox/holdem-casino/internal/simulator"
)

const defaultSimulationRounds = 10000

// SimulateCmd runs every table in parallel and reports outcomes
type SimulateCmd struct {
	Output string `short:"o" help:"Write the summary to this file instead of stdout" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	rounds := g.Rounds
	if rounds == 0 {
		rounds = defaultSimulationRounds
	}

	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	registry, err := config.Build(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds: rounds,
		Seed:   cfg.Casino.Seed,
		Logger: logger,
	})
	report, err := sim.Run(ctx, registry.Tables())
	if err != nil {
		return err
	}

	if c.Output == "" {
		return simulator.WriteSummary(os.Stdout, report)
	}
	if err := fileutil.WriteAtomic(c.Output, 0644, func(w io.Writer) error {
		return simulator.WriteSummary(w, report)
	}); err != nil {
		return err
	}
	logger.Info("Summary written", "file", c.Output)
	return nil
}
