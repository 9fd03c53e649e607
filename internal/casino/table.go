package casino

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-casino/poker"
)

// GameType labels the card game variant a table hosts.
type GameType string

// TexasHoldEm is the only variant the round engine plays today.
const TexasHoldEm GameType = "Texas Hold 'Em"

func (g GameType) String() string {
	return string(g)
}

// MaxSeats is the most players a single deck can deal hole cards to.
const MaxSeats = poker.DeckSize / HoleCards

// TableConfig describes a table before it is created.
type TableConfig struct {
	Name         string
	Game         GameType
	MinimumBuyIn int
	MaxPlayers   int
}

// Validate checks the configuration is usable.
func (c TableConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if c.Game == "" {
		return fmt.Errorf("table %s: game type is required", c.Name)
	}
	if c.MinimumBuyIn < 0 {
		return fmt.Errorf("table %s: minimum buy-in must not be negative", c.Name)
	}
	if c.MaxPlayers < 1 {
		return fmt.Errorf("table %s: max players must be at least 1", c.Name)
	}
	if c.MaxPlayers > MaxSeats {
		return fmt.Errorf("table %s: max players must be at most %d, got %d", c.Name, MaxSeats, c.MaxPlayers)
	}
	return nil
}

// Table is a named seating arena for one game type. Players are admitted
// through Join, which enforces capacity and the minimum buy-in, and
// released through Leave.
type Table struct {
	cfg TableConfig
	rt  runtime

	mu     sync.RWMutex
	seated map[PlayerID]Player
	order  []PlayerID // join order
	logger *log.Logger
}

// NewTable creates an empty table.
func NewTable(cfg TableConfig, opts ...Option) *Table {
	rt := newRuntime(opts)
	return &Table{
		cfg:    cfg,
		rt:     rt,
		seated: make(map[PlayerID]Player, cfg.MaxPlayers),
		logger: rt.logger.WithPrefix("table").With("table", cfg.Name, "game", cfg.Game),
	}
}

// Name returns the table name, unique within its game type.
func (t *Table) Name() string { return t.cfg.Name }

// Game returns the game type the table hosts.
func (t *Table) Game() GameType { return t.cfg.Game }

// MinimumBuyIn returns the chips a player needs to sit down.
func (t *Table) MinimumBuyIn() int { return t.cfg.MinimumBuyIn }

// MaxPlayers returns the number of seats.
func (t *Table) MaxPlayers() int { return t.cfg.MaxPlayers }

// Config returns the table's configuration.
func (t *Table) Config() TableConfig { return t.cfg }

// Join seats a player. It fails with ErrTableFull once every seat is taken
// and with an *InsufficientChipsError when the player's chips are below the
// minimum buy-in. Joining while already seated is a no-op.
func (t *Table) Join(player Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seated[player.ID]; ok {
		t.logger.Debug("Player already seated", "player", player.Name)
		return nil
	}

	if len(t.seated) >= t.cfg.MaxPlayers {
		t.reject(player, ErrTableFull)
		return fmt.Errorf("join %s: %w", t.cfg.Name, ErrTableFull)
	}

	if player.Chips < t.cfg.MinimumBuyIn {
		err := &InsufficientChipsError{
			Table:     t.cfg.Name,
			Required:  t.cfg.MinimumBuyIn,
			Available: player.Chips,
		}
		t.reject(player, err)
		return err
	}

	t.seated[player.ID] = player
	t.order = append(t.order, player.ID)

	t.logger.Info("Player bought in", "player", player.Name, "chips", player.Chips, "seated", len(t.seated))
	t.rt.bus.Publish(PlayerSeatedEvent{
		Table:     t.cfg.Name,
		Game:      t.cfg.Game,
		Player:    player,
		Seated:    len(t.seated),
		timestamp: t.rt.clock.Now(),
	})
	return nil
}

func (t *Table) reject(player Player, reason error) {
	t.logger.Warn("Admission rejected", "player", player.Name, "chips", player.Chips, "reason", reason)
	t.rt.bus.Publish(AdmissionRejectedEvent{
		Table:     t.cfg.Name,
		Game:      t.cfg.Game,
		Player:    player,
		Reason:    reason,
		Required:  t.cfg.MinimumBuyIn,
		Available: player.Chips,
		timestamp: t.rt.clock.Now(),
	})
}

// Leave unseats a player and returns the seated record.
func (t *Table) Leave(player Player) (Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.seated) == 0 {
		return Player{}, fmt.Errorf("leave %s: %w", t.cfg.Name, ErrTableEmpty)
	}

	seated, ok := t.seated[player.ID]
	if !ok {
		return Player{}, fmt.Errorf("leave %s: %s: %w", t.cfg.Name, player.Name, ErrPlayerNotSeated)
	}

	delete(t.seated, player.ID)
	t.order = slices.DeleteFunc(t.order, func(id PlayerID) bool { return id == player.ID })

	t.logger.Info("Player left", "player", seated.Name, "seated", len(t.seated))
	t.rt.bus.Publish(PlayerLeftEvent{
		Table:     t.cfg.Name,
		Game:      t.cfg.Game,
		Player:    seated,
		Seated:    len(t.seated),
		timestamp: t.rt.clock.Now(),
	})
	return seated, nil
}

// IsSeated reports whether the player currently holds a seat.
func (t *Table) IsSeated(player Player) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.seated[player.ID]
	return ok
}

// PlayerCount returns the number of seated players.
func (t *Table) PlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.seated)
}

// Players returns the seated players in join order.
func (t *Table) Players() []Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	players := make([]Player, 0, len(t.order))
	for _, id := range t.order {
		players = append(players, t.seated[id])
	}
	return players
}
