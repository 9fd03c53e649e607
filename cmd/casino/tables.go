package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-casino/internal/config"
)

// TablesCmd lists the registry
type TablesCmd struct{}

func (c *TablesCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	registry, err := config.Build(cfg, logger)
	if err != nil {
		return err
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	if cfg.Casino.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	gameStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	games := registry.Games()
	for _, game := range slices.Sorted(maps.Keys(games)) {
		fmt.Println(gameStyle.Render(game.String()))

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Table\tMin buy-in\tSeats\tPlayers")
		for _, name := range games[game] {
			table, err := registry.Table(name, game)
			if err != nil {
				return err
			}
			var seated []string
			for _, p := range table.Players() {
				seated = append(seated, fmt.Sprintf("%s (%d)", p.Name, p.Chips))
			}
			fmt.Fprintf(tw, "  %s\t%d\t%d/%d\t%s\n",
				table.Name(), table.MinimumBuyIn(), table.PlayerCount(), table.MaxPlayers(), strings.Join(seated, ", "))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}
