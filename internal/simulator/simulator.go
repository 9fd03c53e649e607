package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-casino/internal/casino"
	"github.com/lox/holdem-casino/internal/randutil"
	"github.com/lox/holdem-casino/internal/statistics"
	"github.com/lox/holdem-casino/poker"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds int           // rounds per table
	Seed   int64         // base seed; each table derives its own stream
	Ranker casino.Ranker // nil uses the standard evaluator
	Logger *log.Logger
}

// TableReport holds the statistics for one table
type TableReport struct {
	Table string
	Game  casino.GameType
	Stats *statistics.Statistics // rounds completed before any stop
	Err   error                  // why the table stopped early, if it did
}

// Report is the outcome of a simulation run
type Report struct {
	Seed   int64
	Tables []TableReport // in the order the tables were given
	Total  *statistics.Statistics
}

// Simulator plays many rounds on many tables at once
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Rounds <= 0 {
		config.Rounds = 1
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays the configured number of rounds on every table with at least
// two seated players, one goroutine per table. A table that runs out of
// cards is logged and reported with the rounds it completed; any other
// error cancels the remaining tables.
func (s *Simulator) Run(ctx context.Context, tables []*casino.Table) (*Report, error) {
	logger := s.config.Logger.WithPrefix("simulator")

	var playable []*casino.Table
	for _, table := range tables {
		if table.PlayerCount() < 2 {
			logger.Info("Skipping table", "table", table.Name(), "seated", table.PlayerCount())
			continue
		}
		playable = append(playable, table)
	}

	reports := make([]TableReport, len(playable))
	g, ctx := errgroup.WithContext(ctx)

	for i, table := range playable {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			stats, err := s.runTable(ctx, table, seed)
			switch {
			case errors.Is(err, casino.ErrDeckExhausted):
				logger.Error("Table stopped", "table", table.Name(), "rounds", stats.Rounds, "error", err)
			case err != nil:
				return fmt.Errorf("table %s: %w", table.Name(), err)
			}
			reports[i] = TableReport{Table: table.Name(), Game: table.Game(), Stats: stats, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range reports {
		total.Merge(r.Stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "tables", len(reports), "rounds", total.Rounds)
	return &Report{Seed: s.config.Seed, Tables: reports, Total: total}, nil
}

func (s *Simulator) runTable(ctx context.Context, table *casino.Table, seed int64) (*statistics.Statistics, error) {
	engine := table.NewEngine(casino.EngineConfig{
		Deck:      poker.NewDeck(randutil.New(seed)),
		Ranker:    s.config.Ranker,
		MaxRounds: s.config.Rounds,
	})

	stats := &statistics.Statistics{}
	for range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := engine.PlayRound()
		if err != nil {
			return stats, err
		}
		stats.Add(toRoundResult(result))
	}
	return stats, nil
}

func toRoundResult(result casino.RoundResult) statistics.RoundResult {
	r := statistics.RoundResult{}
	for _, s := range result.Standings {
		r.Players = append(r.Players, participant(s.Player))
	}
	for _, s := range result.Leaders {
		r.Leaders = append(r.Leaders, participant(s.Player))
		r.StartingHands = append(r.StartingHands, string(poker.Categorize(s.Hand)))
	}
	if len(result.Leaders) > 0 {
		r.WinningHand = result.Leaders[0].Rank.Type().String()
	}
	return r
}

func participant(p casino.Player) statistics.Participant {
	return statistics.Participant{ID: string(p.ID), Name: p.Name}
}

// WriteSummary prints a summary of the report
func WriteSummary(w io.Writer, report *Report) error {
	total := report.Total

	fmt.Fprintf(w, "\n=== SIMULATION RESULTS (seed %d) ===\n", report.Seed)
	fmt.Fprintf(w, "Tables: %d  Rounds: %d  Wins: %d  Pushes: %d (%.1f%%)\n",
		len(report.Tables), total.Rounds, total.Wins, total.Pushes, total.PushRate()*100)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== PER TABLE ===\n")
	fmt.Fprintln(tw, "Table\tGame\tRounds\tWins\tPushes\tStatus")
	for _, t := range report.Tables {
		status := "complete"
		if t.Err != nil {
			status = "stopped: " + t.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", t.Table, t.Game, t.Stats.Rounds, t.Stats.Wins, t.Stats.Pushes, status)
	}

	fmt.Fprintf(tw, "\n=== PER PLAYER ===\n")
	fmt.Fprintln(tw, "Player\tID\tRounds\tWins\tPushes\tWin rate\t95% CI")
	for _, id := range total.PlayerIDs() {
		ps := total.Players[id]
		low, high := total.WinRateCI95(id)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f%%\t[%.1f%%, %.1f%%]\n",
			ps.Name, id, ps.Rounds, ps.Wins, ps.Pushes, total.WinRate(id)*100, low*100, high*100)
	}

	fmt.Fprintf(tw, "\n=== WINNING HANDS ===\n")
	decided := total.Wins + total.Pushes
	for _, hc := range total.WinningHandCounts() {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", hc.Hand, hc.Count, float64(hc.Count)/float64(decided)*100)
	}

	fmt.Fprintf(tw, "\n=== LEADING STARTING HANDS ===\n")
	leaders := 0
	for _, n := range total.StartingHands {
		leaders += n
	}
	for _, hc := range total.StartingHandCounts() {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", hc.Hand, hc.Count, float64(hc.Count)/float64(leaders)*100)
	}

	return tw.Flush()
}
