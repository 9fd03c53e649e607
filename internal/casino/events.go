package casino

import (
	"reflect"
	"sync"
	"time"

	"github.com/lox/holdem-casino/poker"
)

// EventType represents a casino event type with type safety
type EventType string

// EventType constants for admission and round resolution
const (
	EventTypePlayerSeated      EventType = "player_seated"
	EventTypeAdmissionRejected EventType = "admission_rejected"
	EventTypePlayerLeft        EventType = "player_left"
	EventTypeDeckShuffled      EventType = "deck_shuffled"
	EventTypeHandDealt         EventType = "hand_dealt"
	EventTypeHandRanked        EventType = "hand_ranked"
	EventTypeRoundResolved     EventType = "round_resolved"
	EventTypeGameOver          EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a structured announcement produced by admission or round
// resolution. Rendering is left to subscribers.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PlayerSeatedEvent is published when a player buys in at a table
type PlayerSeatedEvent struct {
	Table     string
	Game      GameType
	Player    Player
	Seated    int
	timestamp time.Time
}

func (e PlayerSeatedEvent) EventType() EventType { return EventTypePlayerSeated }
func (e PlayerSeatedEvent) Timestamp() time.Time { return e.timestamp }

// AdmissionRejectedEvent is published when a join attempt fails
type AdmissionRejectedEvent struct {
	Table     string
	Game      GameType
	Player    Player
	Reason    error
	Required  int // minimum buy-in
	Available int // player's chips
	timestamp time.Time
}

func (e AdmissionRejectedEvent) EventType() EventType { return EventTypeAdmissionRejected }
func (e AdmissionRejectedEvent) Timestamp() time.Time { return e.timestamp }

// Deficit is the chip shortfall, zero when the rejection was not about chips.
func (e AdmissionRejectedEvent) Deficit() int {
	if e.Available >= e.Required {
		return 0
	}
	return e.Required - e.Available
}

// PlayerLeftEvent is published when a seated player leaves a table
type PlayerLeftEvent struct {
	Table     string
	Game      GameType
	Player    Player
	Seated    int
	timestamp time.Time
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }
func (e PlayerLeftEvent) Timestamp() time.Time { return e.timestamp }

// DeckShuffledEvent is published at the start of every round
type DeckShuffledEvent struct {
	Round     int
	timestamp time.Time
}

func (e DeckShuffledEvent) EventType() EventType { return EventTypeDeckShuffled }
func (e DeckShuffledEvent) Timestamp() time.Time { return e.timestamp }

// HandDealtEvent is published once per player after their hole cards are dealt
type HandDealtEvent struct {
	Round     int
	Player    Player
	Cards     []poker.Card
	timestamp time.Time
}

func (e HandDealtEvent) EventType() EventType { return EventTypeHandDealt }
func (e HandDealtEvent) Timestamp() time.Time { return e.timestamp }

// HandRankedEvent is published once per player after the oracle ranks their cards
type HandRankedEvent struct {
	Round     int
	Player    Player
	Rank      poker.HandRank
	timestamp time.Time
}

func (e HandRankedEvent) EventType() EventType { return EventTypeHandRanked }
func (e HandRankedEvent) Timestamp() time.Time { return e.timestamp }

// RoundResolvedEvent carries the outcome of a round. Leaders holds one
// standing for an outright win and two or more for a push.
type RoundResolvedEvent struct {
	Round     int
	Outcome   Outcome
	Leaders   []Standing
	Community []poker.Card
	timestamp time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when the engine stops playing rounds
type GameOverEvent struct {
	Reason    string
	Remaining int
	Rounds    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to casino events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(Event)

// OnEvent calls f(event).
func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers are
// called in subscription order on the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events. A nil subscriber is ignored.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	if subscriber == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Only comparable
// subscribers (pointers, not funcs) can be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if subscriber == nil || !reflect.TypeOf(subscriber).Comparable() {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if reflect.TypeOf(sub).Comparable() && sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := bus.subscribers
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

type nopBus struct{}

func (nopBus) Subscribe(EventSubscriber)   {}
func (nopBus) Unsubscribe(EventSubscriber) {}
func (nopBus) Publish(Event)               {}
