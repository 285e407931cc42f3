// Package repository owns every piece of editable site content. Each
// repository reads its record from the shared store under a fixed key, falls
// back to built-in defaults when nothing usable is stored, writes the record
// back wholesale on every mutation, and announces the change on the bus.
package repository

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/metrics"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

// contentVersion tags persisted values so a future shape change has
// something to dispatch on. Values written before versioning load through
// the legacy path.
const contentVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Content is the generic repository for one content record of type T.
type Content[T any] struct {
	store    store.Store
	bus      *bus.Bus
	key      string
	topic    bus.Topic
	defaults func() T
}

func NewContent[T any](st store.Store, b *bus.Bus, key string, topic bus.Topic, defaults func() T) *Content[T] {
	return &Content[T]{store: st, bus: b, key: key, topic: topic, defaults: defaults}
}

// Load returns the stored record, or the defaults when the key is absent or
// holds something unparseable. It never fails: storage problems degrade to
// defaults so a corrupt value can't take the site down.
func (c *Content[T]) Load() T {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("content read failed, using defaults")
		return c.defaults()
	}
	if !ok {
		return c.defaults()
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version >= contentVersion && env.Data != nil {
		var value T
		if err := json.Unmarshal(env.Data, &value); err == nil {
			return value
		}
	}

	// Legacy path: the value predates the version envelope.
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("stored content unparseable, using defaults")
		return c.defaults()
	}
	return value
}

// Save replaces the stored record wholesale and publishes the change topic.
// Load immediately after a successful Save returns an equal value.
func (c *Content[T]) Save(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(envelope{Version: contentVersion, Data: data})
	if err != nil {
		return err
	}
	if err := c.store.Set(c.key, raw); err != nil {
		return err
	}
	metrics.ContentSavesTotal.WithLabelValues(c.key).Inc()
	c.bus.Publish(c.topic)
	return nil
}
