package casino

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-casino/internal/randutil"
	"github.com/lox/holdem-casino/poker"
)

// HoleCards is the number of cards dealt to each player per round.
const HoleCards = 2

// Deck is the card source an engine deals from.
type Deck interface {
	// Reset returns every card to the deck and shuffles it.
	Reset()
	// DealOne removes and returns the top card, or ErrDeckExhausted.
	DealOne() (poker.Card, error)
}

// Ranker is the hand-ranking oracle. It must be deterministic and must
// not depend on the order of cards.
type Ranker interface {
	Rank(cards []poker.Card) poker.HandRank
}

// RankerFunc adapts a function to Ranker.
type RankerFunc func(cards []poker.Card) poker.HandRank

// Rank calls f(cards).
func (f RankerFunc) Rank(cards []poker.Card) poker.HandRank { return f(cards) }

// EngineState tracks where an engine is in its round cycle.
type EngineState int

const (
	Idle EngineState = iota
	Dealing
	Ranking
	Resolved
	Terminated
)

// String returns the string representation of an engine state
func (s EngineState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dealing:
		return "Dealing"
	case Ranking:
		return "Ranking"
	case Resolved:
		return "Resolved"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// EngineConfig configures a round engine. Zero values pick defaults: a
// freshly seeded 52-card deck, the standard evaluator and one round.
type EngineConfig struct {
	Deck      Deck
	Ranker    Ranker
	MaxRounds int
}

// RoundResult is the outcome of one round.
type RoundResult struct {
	Round     int
	Outcome   Outcome
	Leaders   []Standing // sole winner or every pushing player
	Standings []Standing // every player, in seat order
	Community []poker.Card
}

// Winner returns the outright winner, if there is one.
func (r RoundResult) Winner() (Standing, bool) {
	if r.Outcome != Win {
		return Standing{}, false
	}
	return r.Leaders[0], true
}

// Engine plays rounds for one set of seated players: shuffle, deal two
// cards each, rank, and resolve the leading set into a win or a push.
// An Engine is owned by a single goroutine.
type Engine struct {
	cfg EngineConfig
	rt  runtime

	players   []Player
	community []poker.Card // never dealt; no betting streets yet
	state     EngineState
	round     int
	logger    *log.Logger
}

// NewEngine creates an engine for the given players.
func NewEngine(players []Player, cfg EngineConfig, opts ...Option) *Engine {
	if cfg.Deck == nil {
		cfg.Deck = poker.NewDeck(randutil.New(randutil.Seed()))
	}
	if cfg.Ranker == nil {
		cfg.Ranker = poker.Evaluator{}
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 1
	}

	rt := newRuntime(opts)
	e := &Engine{
		cfg:    cfg,
		rt:     rt,
		logger: rt.logger.WithPrefix("engine"),
	}
	for _, p := range players {
		if !slices.ContainsFunc(e.players, p.Equal) {
			e.players = append(e.players, p)
		}
	}
	return e
}

// NewEngine creates an engine seated with the table's current players,
// sharing the table's event bus, clock and logger.
func (t *Table) NewEngine(cfg EngineConfig) *Engine {
	e := NewEngine(t.Players(), cfg, t.rt.options()...)
	e.logger = t.logger.WithPrefix("engine")
	return e
}

// AddPlayer seats a new player with the default buy-in chips.
func (e *Engine) AddPlayer(name string) Player {
	return e.AddPlayerWithChips(name, DefaultBuyInChips)
}

// AddPlayerWithChips seats a new player with a fresh identity.
func (e *Engine) AddPlayerWithChips(name string, chips int) Player {
	player := NewPlayer(e.rt.ids, name, chips)
	e.players = append(e.players, player)

	e.logger.Info("Player bought in", "player", player.Name, "chips", player.Chips)
	e.rt.bus.Publish(PlayerSeatedEvent{
		Game:      TexasHoldEm,
		Player:    player,
		Seated:    len(e.players),
		timestamp: e.rt.clock.Now(),
	})
	return player
}

// RemovePlayer unseats a player between rounds.
func (e *Engine) RemovePlayer(player Player) error {
	i := slices.IndexFunc(e.players, player.Equal)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", player.Name, ErrPlayerNotSeated)
	}
	e.players = slices.Delete(e.players, i, i+1)
	return nil
}

// Players returns the seated players in seat order.
func (e *Engine) Players() []Player {
	return slices.Clone(e.players)
}

// State returns the engine's current state.
func (e *Engine) State() EngineState {
	return e.state
}

// Rounds returns the number of rounds started so far.
func (e *Engine) Rounds() int {
	return e.round
}

// Play runs rounds until the game is over, the round limit is reached or
// the deck runs out. It returns the results of every completed round.
func (e *Engine) Play() ([]RoundResult, error) {
	var results []RoundResult
	for played := 0; played < e.cfg.MaxRounds; played++ {
		result, err := e.PlayRound()
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if over, reason := e.IsGameOver(); over {
			e.state = Terminated
			e.logger.Info("Game over", "reason", reason, "rounds", e.round)
			e.rt.bus.Publish(GameOverEvent{
				Reason:    reason,
				Remaining: len(e.players),
				Rounds:    e.round,
				timestamp: e.rt.clock.Now(),
			})
			return results, nil
		}
	}

	e.logger.Debug("Round limit reached", "rounds", e.round)
	return results, nil
}

// IsGameOver reports whether fewer than two players remain, and why.
func (e *Engine) IsGameOver() (bool, string) {
	switch len(e.players) {
	case 0:
		return true, "No players remaining"
	case 1:
		return true, "One player remaining"
	default:
		return false, ""
	}
}

// PlayRound plays a single round. Running out of cards while dealing
// terminates the engine: the error wraps ErrDeckExhausted and every later
// call fails with ErrEngineTerminated.
func (e *Engine) PlayRound() (RoundResult, error) {
	if e.state == Terminated {
		return RoundResult{}, ErrEngineTerminated
	}

	e.round++
	round := e.round
	logger := e.logger.With("round", round)

	e.state = Dealing
	e.cfg.Deck.Reset()
	logger.Debug("Deck shuffled")
	e.rt.bus.Publish(DeckShuffledEvent{Round: round, timestamp: e.rt.clock.Now()})

	hands := make(map[PlayerID][]poker.Card, len(e.players))
	for _, player := range e.players {
		hand, err := e.dealHand()
		if err != nil {
			e.state = Terminated
			logger.Error("Deck exhausted while dealing", "player", player.Name, "players", len(e.players))
			return RoundResult{}, fmt.Errorf("round %d: deal to %s: %w", round, player.Name, err)
		}
		hands[player.ID] = hand

		logger.Debug("Hand dealt", "player", player.Name)
		e.rt.bus.Publish(HandDealtEvent{
			Round:     round,
			Player:    player,
			Cards:     slices.Clone(hand),
			timestamp: e.rt.clock.Now(),
		})
	}

	e.state = Ranking
	standings := make([]Standing, 0, len(e.players))
	for _, player := range e.players {
		hand := hands[player.ID]
		cards := append(slices.Clone(e.community), hand...)
		rank := e.cfg.Ranker.Rank(cards)

		standings = append(standings, Standing{Player: player, Hand: hand, Rank: rank})
		logger.Debug("Hand ranked", "player", player.Name, "rank", rank.Describe())
		e.rt.bus.Publish(HandRankedEvent{
			Round:     round,
			Player:    player,
			Rank:      rank,
			timestamp: e.rt.clock.Now(),
		})
	}

	best, leaders := leadingSet(standings)
	result := RoundResult{
		Round:     round,
		Outcome:   outcomeFor(leaders),
		Leaders:   leaders,
		Standings: standings,
		Community: slices.Clone(e.community),
	}

	e.state = Resolved
	logger.Info("Round resolved", "outcome", result.Outcome, "leaders", len(leaders), "best", best.Describe())
	e.rt.bus.Publish(RoundResolvedEvent{
		Round:     round,
		Outcome:   result.Outcome,
		Leaders:   leaders,
		Community: result.Community,
		timestamp: e.rt.clock.Now(),
	})

	e.state = Idle
	return result, nil
}

func (e *Engine) dealHand() ([]poker.Card, error) {
	hand := make([]poker.Card, 0, HoleCards)
	for range HoleCards {
		card, err := e.cfg.Deck.DealOne()
		if err != nil {
			return nil, err
		}
		hand = append(hand, card)
	}
	return hand, nil
}
