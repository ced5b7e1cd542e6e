package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusDeliversToChannel(t *testing.T) {
	bus := NewEventBus(4)
	bus.Publish("card_moved", map[string]interface{}{"board_id": uint64(1)})

	select {
	case e := <-bus.SubscribeCh():
		assert.Equal(t, "card_moved", e.Event)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus(1)
	bus.Publish("a", nil)
	bus.Publish("b", nil) // dropped, must not block

	e := <-bus.SubscribeCh()
	require.Equal(t, "a", e.Event)

	select {
	case e := <-bus.SubscribeCh():
		t.Fatalf("unexpected second event %q", e.Event)
	default:
	}
}

func TestEventBusHandlers(t *testing.T) {
	bus := NewEventBus(1)
	var got []string
	bus.Subscribe("card_moved", func(e Event) { got = append(got, e.Event) })

	bus.Publish("card_moved", nil)
	bus.Publish("list_reordered", nil)

	assert.Equal(t, []string{"card_moved"}, got)
}
