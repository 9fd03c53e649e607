package simulator

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-casino/internal/casino"
	"github.com/lox/holdem-casino/poker"
)

func newTable(t *testing.T, name string, players ...string) *casino.Table {
	t.Helper()
	var seated []casino.Player
	for _, p := range players {
		seated = append(seated, casino.NewPlayer(nil, p, 100))
	}
	return seatTable(t, name, seated...)
}

func seatTable(t *testing.T, name string, players ...casino.Player) *casino.Table {
	t.Helper()
	table := casino.NewTable(casino.TableConfig{
		Name:       name,
		Game:       casino.TexasHoldEm,
		MaxPlayers: 30,
	})
	for _, p := range players {
		require.NoError(t, table.Join(p))
	}
	return table
}

func TestSimulator_Run(t *testing.T) {
	t.Parallel()
	alice := casino.NewPlayer(nil, "Alice", 100)
	dave := casino.NewPlayer(nil, "Dave", 100)
	eve := casino.NewPlayer(nil, "Eve", 100)
	tables := []*casino.Table{
		seatTable(t, "Main", alice, casino.NewPlayer(nil, "Bob", 100), casino.NewPlayer(nil, "Carol", 100)),
		seatTable(t, "Side", alice, dave),
		seatTable(t, "Empty", eve),
	}

	report, err := New(Config{Rounds: 200, Seed: 42}).Run(context.Background(), tables)
	require.NoError(t, err)

	require.Len(t, report.Tables, 2, "tables with fewer than two players are skipped")
	assert.Equal(t, "Main", report.Tables[0].Table)
	assert.Equal(t, "Side", report.Tables[1].Table)

	total := report.Total
	assert.Equal(t, 400, total.Rounds)
	assert.Equal(t, 400, total.Wins+total.Pushes)
	assert.Zero(t, total.NoContests)
	assert.Equal(t, 400, total.Players[string(alice.ID)].Rounds, "one player seated at two tables")
	assert.Equal(t, 200, total.Players[string(dave.ID)].Rounds)
	assert.Equal(t, "Dave", total.Players[string(dave.ID)].Name)
	assert.NotContains(t, total.Players, string(eve.ID))
	assert.NoError(t, total.Validate())
}

func TestSimulator_SameNameDistinctPlayers(t *testing.T) {
	t.Parallel()
	first := casino.NewPlayer(nil, "Sam", 100)
	second := casino.NewPlayer(nil, "Sam", 100)

	report, err := New(Config{Rounds: 10, Seed: 5}).Run(context.Background(),
		[]*casino.Table{seatTable(t, "Main", first, second)})
	require.NoError(t, err)

	total := report.Total
	require.Len(t, total.Players, 2)
	assert.Equal(t, 10, total.Players[string(first.ID)].Rounds)
	assert.Equal(t, 10, total.Players[string(second.ID)].Rounds)
	assert.NoError(t, total.Validate())
}

func TestSimulator_Deterministic(t *testing.T) {
	t.Parallel()
	players := []casino.Player{
		casino.NewPlayer(nil, "Alice", 100),
		casino.NewPlayer(nil, "Bob", 100),
		casino.NewPlayer(nil, "Carol", 100),
		casino.NewPlayer(nil, "Dave", 100),
		casino.NewPlayer(nil, "Erin", 100),
	}
	run := func() *Report {
		tables := []*casino.Table{
			seatTable(t, "Main", players[:3]...),
			seatTable(t, "Side", players[3:]...),
		}
		report, err := New(Config{Rounds: 50, Seed: 7}).Run(context.Background(), tables)
		require.NoError(t, err)
		return report
	}

	assert.Equal(t, run(), run())
}

func TestSimulator_DeckExhaustion(t *testing.T) {
	t.Parallel()
	var players []string
	for i := range 27 {
		players = append(players, fmt.Sprintf("P%02d", i))
	}
	tables := []*casino.Table{
		newTable(t, "Crowded", players...),
		newTable(t, "Main", "Alice", "Bob"),
	}

	report, err := New(Config{Rounds: 10, Seed: 1}).Run(context.Background(), tables)
	require.NoError(t, err, "an exhausted table does not stop the others")
	require.Len(t, report.Tables, 2)

	crowded := report.Tables[0]
	assert.Equal(t, "Crowded", crowded.Table)
	assert.ErrorIs(t, crowded.Err, casino.ErrDeckExhausted)
	assert.Zero(t, crowded.Stats.Rounds)

	mainTable := report.Tables[1]
	assert.NoError(t, mainTable.Err)
	assert.Equal(t, 10, mainTable.Stats.Rounds)
	assert.Equal(t, 10, report.Total.Rounds)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, report))
	assert.Contains(t, buf.String(), "stopped: ")
}

func TestSimulator_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Rounds: 10}).Run(ctx, []*casino.Table{newTable(t, "Main", "Alice", "Bob")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_FixedRankerAlwaysPushes(t *testing.T) {
	t.Parallel()
	tables := []*casino.Table{newTable(t, "Main", "Alice", "Bob")}
	ranker := casino.RankerFunc(func([]poker.Card) poker.HandRank { return 1 })

	report, err := New(Config{Rounds: 20, Ranker: ranker}).Run(context.Background(), tables)
	require.NoError(t, err)
	assert.Equal(t, 20, report.Total.Pushes)
	assert.Equal(t, 1.0, report.Total.PushRate())
	for _, id := range report.Total.PlayerIDs() {
		assert.Zero(t, report.Total.WinRate(id))
	}
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	tables := []*casino.Table{newTable(t, "Main", "Alice", "Bob")}
	report, err := New(Config{Rounds: 10, Seed: 3}).Run(context.Background(), tables)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "SIMULATION RESULTS (seed 3)")
	assert.Contains(t, out, "Rounds: 10")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "WINNING HANDS")
}
