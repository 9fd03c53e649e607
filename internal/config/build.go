package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-casino/internal/casino"
)

// Build creates a registry holding every configured table, then creates
// each player and seats them at their tables. A rejected admission is
// logged and skipped; only an invalid table or a duplicate under the
// reject policy fails the build. Unset fields take their defaults, so a
// Config assembled in code needs no parsing step.
func Build(cfg *Config, logger *log.Logger, opts ...casino.Option) (*casino.Registry, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logger.WithPrefix("config")
	opts = append(opts, casino.WithLogger(logger))
	registry := casino.NewRegistry(casino.RegistryConfig{DuplicateTables: cfg.DuplicateTablePolicy()}, opts...)

	for _, tc := range cfg.Tables {
		table, err := registry.NewTable(tc.casinoConfig())
		if err != nil {
			return nil, err
		}
		if err := registry.AddTable(table); err != nil {
			return nil, err
		}
	}

	for _, pc := range cfg.Players {
		player := registry.AddPlayerWithChips(pc.Name, *pc.Chips)

		for _, tc := range cfg.TablesFor(pc) {
			table, err := registry.Table(tc.Name, casino.GameType(tc.Game))
			if err != nil {
				return nil, err
			}

			if err := table.Join(player); err != nil {
				var chipsErr *casino.InsufficientChipsError
				switch {
				case errors.As(err, &chipsErr):
					logger.Warn("Skipping table, not enough chips",
						"player", player.Name, "table", table.Name(), "deficit", chipsErr.Deficit())
				case errors.Is(err, casino.ErrTableFull):
					logger.Warn("Skipping table, no free seat", "player", player.Name, "table", table.Name())
				default:
					return nil, err
				}
			}
		}
	}

	return registry, nil
}
