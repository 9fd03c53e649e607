package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-casino/internal/config"
	"github.com/lox/holdem-casino/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command. Set flags override the
// config file.
type Globals struct {
	Config   string `short:"c" default:"casino.hcl" help:"Path to HCL configuration file"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	Rounds   int    `short:"r" help:"Rounds to play per table (overrides config)"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Seat the configured players and play rounds at every table"`
	Tables   TablesCmd        `cmd:"" help:"List game types, tables and seated players"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds on every table in parallel and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("casino"),
		kong.Description("Multi-table Texas Hold 'Em casino"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setup loads the config, applies flag overrides and builds the logger.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if g.Seed != nil {
		cfg.Casino.Seed = *g.Seed
	}
	if g.Rounds > 0 {
		cfg.Casino.Rounds = g.Rounds
	}
	if g.LogLevel != "" {
		cfg.Casino.LogLevel = g.LogLevel
	}
	if g.NoColor {
		cfg.Casino.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})

	if cfg.Casino.Seed == 0 {
		cfg.Casino.Seed = randutil.Seed()
		logger.Info("Using random seed", "seed", cfg.Casino.Seed)
	} else {
		logger.Info("Using deterministic seed", "seed", cfg.Casino.Seed)
	}

	return cfg, logger, nil
}
