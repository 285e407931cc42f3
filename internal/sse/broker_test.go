package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/bus"
)

func TestBrokerDeliversPublishedTopics(t *testing.T) {
	b := bus.New()
	broker := NewBroker(b)
	defer broker.Close()

	client := broker.Subscribe()
	defer broker.Unsubscribe(client)

	b.Publish(bus.TopicHeroUpdated)

	// Bus delivery is synchronous, so the event is already buffered.
	select {
	case event := <-client.Events:
		assert.Equal(t, bus.TopicHeroUpdated, event.Topic)
		assert.NotZero(t, event.At)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestBrokerMirrorsEveryTopic(t *testing.T) {
	b := bus.New()
	broker := NewBroker(b)
	defer broker.Close()

	client := broker.Subscribe()
	defer broker.Unsubscribe(client)

	for _, topic := range bus.Topics() {
		b.Publish(topic)
	}

	assert.Len(t, client.Events, len(bus.Topics()))
}

func TestBrokerUnsubscribeClosesDone(t *testing.T) {
	b := bus.New()
	broker := NewBroker(b)
	defer broker.Close()

	client := broker.Subscribe()
	require.Equal(t, 1, broker.ClientCount())

	broker.Unsubscribe(client)
	assert.Equal(t, 0, broker.ClientCount())

	select {
	case <-client.Done:
	default:
		t.Fatal("Done must be closed on unsubscribe")
	}

	assert.NotPanics(t, func() { broker.Unsubscribe(client) })
}

func TestBrokerDropsEventsForSlowClient(t *testing.T) {
	b := bus.New()
	broker := NewBroker(b)
	defer broker.Close()

	client := broker.Subscribe()
	defer broker.Unsubscribe(client)

	// Overflow the per-client buffer; publishes must not block.
	for i := 0; i < 150; i++ {
		b.Publish(bus.TopicHeroUpdated)
	}

	assert.Len(t, client.Events, 100)
}

func TestBrokerCloseDetachesFromBus(t *testing.T) {
	b := bus.New()
	broker := NewBroker(b)

	client := broker.Subscribe()
	broker.Close()

	select {
	case <-client.Done:
	default:
		t.Fatal("Close must release connected clients")
	}

	for _, topic := range bus.Topics() {
		assert.Equal(t, 0, b.SubscriberCount(topic))
	}

	assert.NotPanics(t, broker.Close)
}
