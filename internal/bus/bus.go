// Package bus is the in-process publish/subscribe channel connecting admin
// edits to live readers. Delivery is synchronous and at-most-once: there is
// no queue and no replay, so a subscriber that attaches after a publish has
// to read current state itself. The bus does not cross process boundaries.
package bus

import "sync"

// Topic identifies one class of content change. Keep this a closed set;
// ad-hoc string topics drift.
type Topic string

const (
	TopicHeroUpdated        Topic = "hero.updated"
	TopicServicesUpdated    Topic = "services.updated"
	TopicCarouselUpdated    Topic = "carousel.updated"
	TopicSiteContentUpdated Topic = "site_content.updated"
	TopicContactInfoUpdated Topic = "contact_info.updated"
	TopicServiceSelected    Topic = "service.selected"
)

// Topics lists every topic, for consumers that mirror the whole bus.
func Topics() []Topic {
	return []Topic{
		TopicHeroUpdated,
		TopicServicesUpdated,
		TopicCarouselUpdated,
		TopicSiteContentUpdated,
		TopicContactInfoUpdated,
		TopicServiceSelected,
	}
}

type Handler func(Topic)

type subscription struct {
	id      uint64
	handler Handler
}

type Bus struct {
	mu   sync.Mutex
	next uint64
	subs map[Topic][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers handler for topic and returns an unsubscribe func.
// Handlers on one topic fire in subscription order.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}

// Publish invokes every handler subscribed to topic, synchronously, on the
// caller's goroutine. Handlers must not block.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.handler(topic)
	}
}

// SubscriberCount reports how many handlers are attached to topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
