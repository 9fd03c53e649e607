// Package config loads the casino layout from HCL and builds a populated
// registry from it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-casino/internal/casino"
)

const (
	defaultLogLevel   = "info"
	defaultRounds     = 1
	defaultMaxPlayers = 6
)

// Config represents the complete casino configuration
type Config struct {
	Casino  *CasinoSettings `hcl:"casino,block"`
	Tables  []TableConfig   `hcl:"table,block"`
	Players []PlayerConfig  `hcl:"player,block"`
}

// CasinoSettings contains casino-wide configuration
type CasinoSettings struct {
	LogLevel        string `hcl:"log_level,optional"`
	Seed            int64  `hcl:"seed,optional"` // 0 picks a fresh seed per run
	Rounds          int    `hcl:"rounds,optional"`
	DuplicateTables string `hcl:"duplicate_tables,optional"`
	NoColor         bool   `hcl:"no_color,optional"`
}

// TableConfig defines a table
type TableConfig struct {
	Name       string `hcl:"name,label"`
	Game       string `hcl:"game,optional"`
	MinBuyIn   int    `hcl:"min_buy_in,optional"`
	MaxPlayers int    `hcl:"max_players,optional"`
}

// PlayerConfig defines a player and the tables they try to join
type PlayerConfig struct {
	Name   string   `hcl:"name,label"`
	Chips  *int     `hcl:"chips,optional"`
	Tables []string `hcl:"tables,optional"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	chips := func(n int) *int { return &n }
	cfg := &Config{
		Tables: []TableConfig{
			{Name: "Main", MinBuyIn: 100, MaxPlayers: defaultMaxPlayers},
			{Name: "High Rollers", MinBuyIn: 500, MaxPlayers: 4},
		},
		Players: []PlayerConfig{
			{Name: "Alice", Chips: chips(1000)},
			{Name: "Bob", Chips: chips(250)},
			{Name: "Carol", Chips: chips(100)},
			{Name: "Dave", Chips: chips(40)},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from an HCL file, falling back to the
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// ParseConfig parses configuration from HCL source.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Casino == nil {
		c.Casino = &CasinoSettings{}
	}
	if c.Casino.LogLevel == "" {
		c.Casino.LogLevel = defaultLogLevel
	}
	if c.Casino.Rounds == 0 {
		c.Casino.Rounds = defaultRounds
	}
	if c.Casino.DuplicateTables == "" {
		c.Casino.DuplicateTables = casino.RejectDuplicateTables.String()
	}

	for i := range c.Tables {
		if c.Tables[i].Game == "" {
			c.Tables[i].Game = string(casino.TexasHoldEm)
		}
		if c.Tables[i].MaxPlayers == 0 {
			c.Tables[i].MaxPlayers = defaultMaxPlayers
		}
	}

	for i := range c.Players {
		if c.Players[i].Chips == nil {
			chips := casino.DefaultBuyInChips
			c.Players[i].Chips = &chips
		}
		if c.Players[i].Tables == nil {
			// Omitted means try every table; an explicit empty list means none
			for _, table := range c.Tables {
				c.Players[i].Tables = append(c.Players[i].Tables, table.Name)
			}
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Casino == nil {
		return fmt.Errorf("casino settings are required")
	}
	if _, err := log.ParseLevel(c.Casino.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Casino.LogLevel)
	}
	if c.Casino.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Casino.Rounds)
	}
	if _, err := casino.ParseDuplicateTablePolicy(c.Casino.DuplicateTables); err != nil {
		return err
	}

	tableNames := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if err := table.casinoConfig().Validate(); err != nil {
			return err
		}
		tableNames[table.Name] = true
	}

	for _, player := range c.Players {
		if player.Name == "" {
			return fmt.Errorf("player name is required")
		}
		if player.Chips != nil && *player.Chips < 0 {
			return fmt.Errorf("player %s: chips must not be negative", player.Name)
		}
		for _, name := range player.Tables {
			if !tableNames[name] {
				return fmt.Errorf("player %s: unknown table %q", player.Name, name)
			}
		}
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	if c.Casino == nil {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(c.Casino.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// DuplicateTablePolicy returns the configured duplicate-table behaviour.
func (c *Config) DuplicateTablePolicy() casino.DuplicateTablePolicy {
	if c.Casino == nil {
		return casino.RejectDuplicateTables
	}
	policy, _ := casino.ParseDuplicateTablePolicy(c.Casino.DuplicateTables)
	return policy
}

// TablesFor returns the table configs a player is set to join.
func (c *Config) TablesFor(player PlayerConfig) []TableConfig {
	var tables []TableConfig
	for _, name := range player.Tables {
		for _, table := range c.Tables {
			if table.Name == name {
				tables = append(tables, table)
			}
		}
	}
	return tables
}

func (t TableConfig) casinoConfig() casino.TableConfig {
	return casino.TableConfig{
		Name:         t.Name,
		Game:         casino.GameType(t.Game),
		MinimumBuyIn: t.MinBuyIn,
		MaxPlayers:   t.MaxPlayers,
	}
}
