package casino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, policy DuplicateTablePolicy) (*Registry, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewRegistry(RegistryConfig{DuplicateTables: policy}, env.opts...), env
}

func mustTable(t *testing.T, r *Registry, name string, game GameType) *Table {
	t.Helper()
	table, err := r.NewTable(TableConfig{Name: name, Game: game, MinimumBuyIn: 50, MaxPlayers: 6})
	require.NoError(t, err)
	return table
}

func TestRegistry_AddAndGetTable(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)

	table := mustTable(t, r, "High Rollers", TexasHoldEm)
	require.NoError(t, r.AddTable(table))

	got, err := r.Table("High Rollers", TexasHoldEm)
	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Equal(t, map[GameType][]string{TexasHoldEm: {"High Rollers"}}, r.Games())
}

func TestRegistry_TableNotFound(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	require.NoError(t, r.AddTable(mustTable(t, r, "Main", TexasHoldEm)))

	_, err := r.Table("Side", TexasHoldEm)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.True(t, IsNotFound(err))

	_, err = r.Table("Main", GameType("Omaha"))
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestRegistry_RemoveLastTablePrunesGame(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	require.NoError(t, r.AddTable(mustTable(t, r, "Main", TexasHoldEm)))

	require.NoError(t, r.RemoveTable("Main", TexasHoldEm))
	assert.Empty(t, r.Games())

	_, err := r.Table("Main", TexasHoldEm)
	assert.ErrorIs(t, err, ErrTableNotFound)

	err = r.RemoveTable("Main", TexasHoldEm)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestRegistry_RemoveNonLastTableKeepsGame(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	main := mustTable(t, r, "Main", TexasHoldEm)
	side := mustTable(t, r, "Side", TexasHoldEm)
	require.NoError(t, r.AddTable(main))
	require.NoError(t, r.AddTable(side))

	require.NoError(t, r.RemoveTable("Main", TexasHoldEm))

	assert.Equal(t, map[GameType][]string{TexasHoldEm: {"Side"}}, r.Games())
	got, err := r.Table("Side", TexasHoldEm)
	require.NoError(t, err)
	assert.Same(t, side, got)
}

func TestRegistry_RemoveMissingNameUnderKnownGame(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	require.NoError(t, r.AddTable(mustTable(t, r, "Main", TexasHoldEm)))

	assert.NoError(t, r.RemoveTable("Nope", TexasHoldEm))
	assert.Equal(t, map[GameType][]string{TexasHoldEm: {"Main"}}, r.Games())
}

func TestRegistry_RemoveFromUnknownGame(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)

	err := r.RemoveTable("Main", TexasHoldEm)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.True(t, IsNotFound(err))
}

func TestRegistry_DuplicateTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  DuplicateTablePolicy
		wantErr error
	}{
		{name: "reject", policy: RejectDuplicateTables, wantErr: ErrTableExists},
		{name: "ignore", policy: IgnoreDuplicateTables},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newRegistry(t, tt.policy)
			first := mustTable(t, r, "Main", TexasHoldEm)
			second := mustTable(t, r, "Main", TexasHoldEm)

			require.NoError(t, r.AddTable(first))
			err := r.AddTable(second)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			got, err := r.Table("Main", TexasHoldEm)
			require.NoError(t, err)
			assert.Same(t, first, got, "existing table must never be replaced")
		})
	}
}

func TestRegistry_TablesOrdered(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	for _, tc := range []struct {
		name string
		game GameType
	}{
		{"Zeta", TexasHoldEm},
		{"Alpha", TexasHoldEm},
		{"Beta", GameType("Omaha")},
	} {
		require.NoError(t, r.AddTable(mustTable(t, r, tc.name, tc.game)))
	}

	var names []string
	for _, table := range r.Tables() {
		names = append(names, table.Name())
	}
	assert.Equal(t, []string{"Beta", "Alpha", "Zeta"}, names)
}

func TestRegistry_NewTableValidates(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)

	_, err := r.NewTable(TableConfig{Name: "Main", Game: TexasHoldEm, MaxPlayers: 0})
	assert.Error(t, err)

	_, err = r.NewTable(TableConfig{Game: TexasHoldEm, MaxPlayers: 2})
	assert.Error(t, err)
}

func TestRegistry_Players(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)

	bob := r.AddPlayer("Bob")
	alice := r.AddPlayerWithChips("Alice", 250)
	assert.Equal(t, DefaultBuyInChips, bob.Chips)
	assert.Equal(t, 250, alice.Chips)
	assert.NotEqual(t, alice.ID, bob.ID)

	got, err := r.Player(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Equal(t, []Player{alice, bob}, r.Players())

	removed, err := r.RemovePlayer(alice)
	require.NoError(t, err)
	assert.Equal(t, alice, removed)

	_, err = r.RemovePlayer(alice)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, err = r.Player(alice.ID)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, []Player{bob}, r.Players())
}

func TestRegistry_SameNameDistinctPlayers(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)

	a := r.AddPlayer("Sam")
	b := r.AddPlayer("Sam")
	assert.False(t, a.Equal(b))
	assert.Len(t, r.Players(), 2)
}

func TestRegistry_RemovePlayerKeepsSeat(t *testing.T) {
	t.Parallel()
	r, _ := newRegistry(t, RejectDuplicateTables)
	table := mustTable(t, r, "Main", TexasHoldEm)
	require.NoError(t, r.AddTable(table))

	p := r.AddPlayer("Ann")
	require.NoError(t, table.Join(p))
	_, err := r.RemovePlayer(p)
	require.NoError(t, err)

	assert.True(t, table.IsSeated(p))
}

func TestParseDuplicateTablePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseDuplicateTablePolicy("")
	require.NoError(t, err)
	assert.Equal(t, RejectDuplicateTables, p)

	p, err = ParseDuplicateTablePolicy("ignore")
	require.NoError(t, err)
	assert.Equal(t, IgnoreDuplicateTables, p)
	assert.Equal(t, "ignore", p.String())

	_, err = ParseDuplicateTablePolicy("replace")
	assert.Error(t, err)
}
