package casino

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-casino/poker"
)

// sequentialIDs hands out readable, predictable identities.
type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("player-%02d", s.n)
}

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// stackedDeck deals its cards in a fixed order and never shuffles.
type stackedDeck struct {
	cards []poker.Card
	next  int
}

func newStackedDeck(s string) *stackedDeck {
	return &stackedDeck{cards: poker.MustParseCards(s)}
}

func (d *stackedDeck) Reset() { d.next = 0 }

func (d *stackedDeck) DealOne() (poker.Card, error) {
	if d.next >= len(d.cards) {
		return 0, poker.ErrDeckExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

type testEnv struct {
	clock *quartz.Mock
	rec   *recorder
	ids   *sequentialIDs
	opts  []Option
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		clock: quartz.NewMock(t),
		rec:   &recorder{},
		ids:   &sequentialIDs{},
	}
	bus := NewEventBus()
	bus.Subscribe(env.rec)
	env.opts = []Option{
		WithEventBus(bus),
		WithClock(env.clock),
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})),
		WithIDGenerator(env.ids),
	}
	return env
}

func (env *testEnv) player(name string, chips int) Player {
	return NewPlayer(env.ids, name, chips)
}
