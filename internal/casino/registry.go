package casino

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// DuplicateTablePolicy decides what AddTable does when the (game, name)
// slot is already taken. The existing table is never replaced.
type DuplicateTablePolicy int

const (
	// RejectDuplicateTables makes AddTable return ErrTableExists.
	RejectDuplicateTables DuplicateTablePolicy = iota
	// IgnoreDuplicateTables silently keeps the existing table.
	IgnoreDuplicateTables
)

// String returns the config spelling of the policy.
func (p DuplicateTablePolicy) String() string {
	switch p {
	case RejectDuplicateTables:
		return "reject"
	case IgnoreDuplicateTables:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseDuplicateTablePolicy parses "reject" or "ignore".
func ParseDuplicateTablePolicy(s string) (DuplicateTablePolicy, error) {
	switch s {
	case "", "reject":
		return RejectDuplicateTables, nil
	case "ignore":
		return IgnoreDuplicateTables, nil
	default:
		return 0, fmt.Errorf("invalid duplicate table policy %q (want reject or ignore)", s)
	}
}

// RegistryConfig holds registry behaviour switches.
type RegistryConfig struct {
	DuplicateTables DuplicateTablePolicy
}

// Registry is the casino: the single owner of every table, keyed by game
// type and then table name, plus the set of all known players.
//
// A game type is present exactly when at least one table is registered
// under it. The player set is independent of table seating: removing a
// player here does not unseat them anywhere.
type Registry struct {
	cfg RegistryConfig
	rt  runtime

	mu      sync.RWMutex
	games   map[GameType]map[string]*Table
	players map[PlayerID]Player
	logger  *log.Logger
}

// NewRegistry creates an empty casino.
func NewRegistry(cfg RegistryConfig, opts ...Option) *Registry {
	rt := newRuntime(opts)
	return &Registry{
		cfg:     cfg,
		rt:      rt,
		games:   make(map[GameType]map[string]*Table),
		players: make(map[PlayerID]Player),
		logger:  rt.logger.WithPrefix("registry"),
	}
}

// NewTable builds a table that shares the registry's event bus, clock and
// logger. The table is not registered until AddTable is called.
func (r *Registry) NewTable(cfg TableConfig) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewTable(cfg, r.rt.options()...), nil
}

// AddTable registers a table under its game type, creating the game type
// on demand. An occupied slot is never overwritten.
func (r *Registry) AddTable(table *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables, ok := r.games[table.Game()]
	if !ok {
		tables = make(map[string]*Table)
		r.games[table.Game()] = tables
	}

	if _, exists := tables[table.Name()]; exists {
		if r.cfg.DuplicateTables == IgnoreDuplicateTables {
			r.logger.Debug("Ignoring duplicate table", "game", table.Game(), "table", table.Name())
			return nil
		}
		return fmt.Errorf("add table %s/%s: %w", table.Game(), table.Name(), ErrTableExists)
	}

	tables[table.Name()] = table
	r.logger.Info("Added table", "game", table.Game(), "table", table.Name(),
		"minBuyIn", table.MinimumBuyIn(), "maxPlayers", table.MaxPlayers())
	return nil
}

// RemoveTable unregisters a table. It fails with ErrGameNotFound when the
// game type has no tables; a missing name under an existing game type is
// not an error. The game type is dropped along with its last table.
func (r *Registry) RemoveTable(name string, game GameType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables, ok := r.games[game]
	if !ok {
		return fmt.Errorf("remove table %s/%s: %w", game, name, ErrGameNotFound)
	}

	delete(tables, name)
	if len(tables) == 0 {
		delete(r.games, game)
		r.logger.Debug("Pruned empty game type", "game", game)
	}

	r.logger.Info("Removed table", "game", game, "table", name)
	return nil
}

// Table looks up a table by name and game type.
func (r *Registry) Table(name string, game GameType) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tables, ok := r.games[game]; ok {
		if table, ok := tables[name]; ok {
			return table, nil
		}
	}
	return nil, fmt.Errorf("get table %s/%s: %w", game, name, ErrTableNotFound)
}

// Games returns a snapshot of the registry: every game type with the
// sorted names of its tables.
func (r *Registry) Games() map[GameType][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make(map[GameType][]string, len(r.games))
	for game, tables := range r.games {
		games[game] = slices.Sorted(maps.Keys(tables))
	}
	return games
}

// Tables returns every registered table ordered by game type, then name.
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*Table
	for _, tables := range r.games {
		for _, table := range tables {
			all = append(all, table)
		}
	}
	slices.SortFunc(all, func(a, b *Table) int {
		return cmp.Or(cmp.Compare(a.Game(), b.Game()), cmp.Compare(a.Name(), b.Name()))
	})
	return all
}

// AddPlayer creates a player with the default buy-in chips.
func (r *Registry) AddPlayer(name string) Player {
	return r.AddPlayerWithChips(name, DefaultBuyInChips)
}

// AddPlayerWithChips creates a player with a fresh identity and records it.
func (r *Registry) AddPlayerWithChips(name string, chips int) Player {
	player := NewPlayer(r.rt.ids, name, chips)

	r.mu.Lock()
	r.players[player.ID] = player
	r.mu.Unlock()

	r.logger.Info("Added player", "player", player.Name, "id", player.ID, "chips", player.Chips)
	return player
}

// RemovePlayer forgets a player and returns the stored record.
func (r *Registry) RemovePlayer(player Player) (Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.players[player.ID]
	if !ok {
		return Player{}, fmt.Errorf("remove player %s: %w", player.Name, ErrPlayerNotFound)
	}
	delete(r.players, player.ID)

	r.logger.Info("Removed player", "player", stored.Name, "id", stored.ID)
	return stored, nil
}

// Player looks up a player by identity.
func (r *Registry) Player(id PlayerID) (Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[id]
	if !ok {
		return Player{}, fmt.Errorf("get player %s: %w", id, ErrPlayerNotFound)
	}
	return player, nil
}

// Players returns every known player ordered by name, then identity.
func (r *Registry) Players() []Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := slices.Collect(maps.Values(r.players))
	slices.SortFunc(players, func(a, b Player) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return players
}
