package main

import (
	"errors"
	"os"

	"github.com/lox/holdem-casino/internal/casino"
	"github.com/lox/holdem-casino/internal/config"
	"github.com/lox/holdem-casino/internal/randutil"
	"github.com/lox/holdem-casino/poker"
)

// PlayCmd seats players and plays rounds, printing every announcement
type PlayCmd struct {
	ShowCards bool `help:"Show every player's hole cards"`
	ShowRanks bool `help:"Show every player's hand rank, not just the leaders"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	bus := casino.NewEventBus()
	bus.Subscribe(casino.NewTextSubscriber(os.Stdout, casino.FormattingOptions{
		ShowHoleCards: c.ShowCards,
		ShowRanks:     c.ShowRanks,
		Color:         !cfg.Casino.NoColor,
	}))
	bus.Subscribe(casino.NewLogSubscriber(logger))

	registry, err := config.Build(cfg, logger, casino.WithEventBus(bus))
	if err != nil {
		return err
	}

	for i, table := range registry.Tables() {
		if table.PlayerCount() < 2 {
			logger.Warn("Not enough players to deal", "table", table.Name(), "seated", table.PlayerCount())
			continue
		}

		logger.Info("Dealing", "table", table.Name(), "game", table.Game(), "rounds", cfg.Casino.Rounds)
		engine := table.NewEngine(casino.EngineConfig{
			Deck:      poker.NewDeck(randutil.New(randutil.Derive(cfg.Casino.Seed, i))),
			MaxRounds: cfg.Casino.Rounds,
		})

		if _, err := engine.Play(); err != nil {
			if errors.Is(err, casino.ErrDeckExhausted) {
				logger.Error("Table stopped", "table", table.Name(), "error", err)
				continue
			}
			return err
		}
	}

	return nil
}
