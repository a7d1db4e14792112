package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusDeliversInOrder(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	var got []string
	unsubA := bus.Subscribe(SubscriberFunc(func(e GameEvent) { got = append(got, "a:"+e.EventType().String()) }))
	bus.Subscribe(SubscriberFunc(func(e GameEvent) { got = append(got, "b:"+e.EventType().String()) }))

	bus.Publish(TurnEvent{})
	unsubA()
	unsubA()
	bus.Publish(DealEvent{})

	assert.Equal(t, []string{"a:turn", "b:turn", "b:deal"}, got)
}

func TestEventsAreTimestampedByTableClock(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(start)

	table, rec := newTestTable(t, testConfig(), WithClock(clock))
	seatAll(t, table, 1000, "A", "B")
	clock.Advance(5 * time.Second)
	act(t, table, "A", Call, 0)

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, start, events[0].Timestamp())
	last := events[len(events)-1]
	assert.Equal(t, start.Add(5*time.Second), last.Timestamp())
}

func TestTurnEventCarriesValidActions(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	turns := eventsOf[TurnEvent](rec)
	require.Len(t, turns, 1)
	assert.Equal(t, "A", turns[0].Player)
	assert.Equal(t, 10, turns[0].ToCall)
	assert.Equal(t, table.ValidActions(), turns[0].ValidActions)
	assert.Equal(t, []ValidAction{
		{Action: Fold},
		{Action: Call, MinAmount: 20, MaxAmount: 20},
		{Action: Raise, MinAmount: 40, MaxAmount: 40},
	}, turns[0].ValidActions)
}

func TestPlayerActionEventDescribesAppliedAction(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")
	rec.Reset()

	act(t, table, "A", Raise, 0)
	actions := eventsOf[PlayerActionEvent](rec)
	require.Len(t, actions, 1)
	e := actions[0]
	assert.Equal(t, "A", e.Player)
	assert.Equal(t, Raise, e.Action)
	assert.Equal(t, 30, e.Added)
	assert.Equal(t, 40, e.Total)
	assert.Equal(t, "raise", e.BetName)
	assert.Equal(t, 60, e.PotAfter)
	assert.Equal(t, Preflop, e.Street)
}

func TestUnsubscribedTableListenerStopsReceiving(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testConfig())
	count := 0
	unsubscribe := table.Subscribe(SubscriberFunc(func(GameEvent) { count++ }))
	require.NoError(t, table.AddPlayer("A", 1000))
	assert.Equal(t, 1, count)

	unsubscribe()
	require.NoError(t, table.AddPlayer("B", 1000))
	assert.Equal(t, 1, count)
}
