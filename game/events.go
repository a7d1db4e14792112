package game

import (
	"sync"
	"time"

	"github.com/lox/holdem/poker"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeNewRound     EventType = "new_round"
	EventTypeDeal         EventType = "deal"
	EventTypeTurn         EventType = "turn"
	EventTypePlayerAction EventType = "player_action"
	EventTypeGameOver     EventType = "game_over"
	EventTypePlayerJoined EventType = "player_joined"
	EventTypePlayerLeft   EventType = "player_left"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs at a table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// Blind records a forced bet posted at the start of a hand
type Blind struct {
	Player string
	Amount int
}

// NewRoundEvent is published when a hand begins, after blinds are posted
type NewRoundEvent struct {
	HandID     string
	HandNumber int
	Button     string
	SmallBlind Blind
	BigBlind   Blind
	Players    []PlayerState // stacks before the blinds
	Time       time.Time
}

func (e NewRoundEvent) EventType() EventType { return EventTypeNewRound }
func (e NewRoundEvent) Timestamp() time.Time { return e.Time }

// DealEvent is published when cards are dealt. Hole cards are private, so the
// preflop deal only carries the player names that received cards.
type DealEvent struct {
	HandID string
	Street Street
	Cards  []poker.Card // newly revealed board cards
	Board  []poker.Card
	Dealt  []string
	Time   time.Time
}

func (e DealEvent) EventType() EventType { return EventTypeDeal }
func (e DealEvent) Timestamp() time.Time { return e.Time }

// TurnEvent is published when a player becomes due to act
type TurnEvent struct {
	HandID       string
	Player       string
	Street       Street
	ToCall       int
	ValidActions []ValidAction
	Time         time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.Time }

// PlayerActionEvent is published when an action is accepted
type PlayerActionEvent struct {
	HandID    string
	Player    string
	Seat      int
	Street    Street
	Action    Action // as applied
	Requested Action
	Added     int // chips moved from the stack
	Total     int // the player's street total afterwards
	BetName   string
	PotAfter  int
	Time      time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.Time }

// GameOverEvent is published when a hand is settled
type GameOverEvent struct {
	Result HandResult
	Time   time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.Time }

// PlayerJoinedEvent is published when a player takes a seat
type PlayerJoinedEvent struct {
	Player string
	Seat   int
	Chips  int
	Time   time.Time
}

func (e PlayerJoinedEvent) EventType() EventType { return EventTypePlayerJoined }
func (e PlayerJoinedEvent) Timestamp() time.Time { return e.Time }

// Reasons a player leaves the table
const (
	LeftVoluntarily = "left"
	LeftBusted      = "busted"
)

// PlayerLeftEvent is published when a player leaves their seat
type PlayerLeftEvent struct {
	Player string
	Seat   int
	Chips  int
	Reason string
	Time   time.Time
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }
func (e PlayerLeftEvent) Timestamp() time.Time { return e.Time }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	// Subscribe registers a subscriber and returns a function removing it
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	id  int
	sub EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.nextID++
	id := bus.nextID
	bus.subscribers = append(bus.subscribers, subscription{id: id, sub: subscriber})

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		for i, s := range bus.subscribers {
			if s.id == id {
				bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]subscription, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, s := range subs {
		s.sub.OnEvent(event)
	}
}

// EventRecorder collects every event it receives. It is mostly useful in tests.
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GameEvent(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

// Reset discards recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
