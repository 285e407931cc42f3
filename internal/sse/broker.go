// Package sse fans bus notifications out to connected pages. A browser tab
// holds one event-stream connection; when the admin saves content, every tab
// hears the topic and re-fetches the record it cares about.
package sse

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/metrics"
)

const HeartbeatInterval = 30 * time.Second

type Event struct {
	Topic bus.Topic `json:"topic"`
	At    int64     `json:"at"`
}

type Client struct {
	Events chan Event
	Done   chan struct{}
}

// Broker mirrors every bus topic to its SSE clients. Bus delivery is
// synchronous, so the broker only queues into per-client buffers and never
// blocks a publisher; a slow client drops events rather than stalling saves.
type Broker struct {
	mu          sync.Mutex
	clients     map[*Client]bool
	unsubscribe []func()
	closed      bool
}

func NewBroker(b *bus.Bus) *Broker {
	broker := &Broker{clients: make(map[*Client]bool)}
	for _, topic := range bus.Topics() {
		broker.unsubscribe = append(broker.unsubscribe, b.Subscribe(topic, broker.broadcast))
	}
	return broker
}

func (b *Broker) Subscribe() *Client {
	client := &Client{
		Events: make(chan Event, 100),
		Done:   make(chan struct{}),
	}

	b.mu.Lock()
	b.clients[client] = true
	count := len(b.clients)
	b.mu.Unlock()

	metrics.SSEClients.Set(float64(count))
	log.Info().Int("clientCount", count).Msg("sse client subscribed")
	return client
}

func (b *Broker) Unsubscribe(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.clients[client]; !ok {
		return
	}
	delete(b.clients, client)
	close(client.Done)

	metrics.SSEClients.Set(float64(len(b.clients)))
	log.Info().Int("clientCount", len(b.clients)).Msg("sse client unsubscribed")
}

func (b *Broker) broadcast(topic bus.Topic) {
	event := Event{Topic: topic, At: time.Now().UnixMilli()}

	b.mu.Lock()
	clients := make([]*Client, 0, len(b.clients))
	for client := range b.clients {
		clients = append(clients, client)
	}
	b.mu.Unlock()

	for _, client := range clients {
		select {
		case client.Events <- event:
		default:
			log.Warn().Str("topic", string(topic)).Msg("client event buffer full, dropping event")
		}
	}
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, unsub := range b.unsubscribe {
		unsub()
	}
	for client := range b.clients {
		close(client.Done)
	}
	b.clients = make(map[*Client]bool)
	metrics.SSEClients.Set(0)
}

func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
