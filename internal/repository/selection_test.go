package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

func TestSelectionSelectAndConsume(t *testing.T) {
	r := NewSelectionRepository(store.NewMemoryStore(), bus.New())

	require.NoError(t, r.Select("Open Water Course", model.ServiceTypeCourse))

	sel, ok := r.Consume()
	require.True(t, ok)
	assert.Equal(t, "Open Water Course", sel.Service)
	assert.Equal(t, model.ServiceTypeCourse, sel.Type)
	assert.NotZero(t, sel.Timestamp)
}

func TestSelectionConsumeIsSingleUse(t *testing.T) {
	r := NewSelectionRepository(store.NewMemoryStore(), bus.New())

	require.NoError(t, r.Select("Beginner Package", model.ServiceTypePackage))

	_, ok := r.Consume()
	require.True(t, ok)

	_, ok = r.Consume()
	assert.False(t, ok)
}

func TestSelectionConsumeWithoutSelect(t *testing.T) {
	r := NewSelectionRepository(store.NewMemoryStore(), bus.New())

	_, ok := r.Consume()
	assert.False(t, ok)
}

func TestSelectionSelectPublishes(t *testing.T) {
	b := bus.New()
	r := NewSelectionRepository(store.NewMemoryStore(), b)

	published := 0
	b.Subscribe(bus.TopicServiceSelected, func(bus.Topic) { published++ })

	require.NoError(t, r.Select("Beginner Package", model.ServiceTypePackage))
	assert.Equal(t, 1, published)
}

func TestSelectionLaterSelectWins(t *testing.T) {
	r := NewSelectionRepository(store.NewMemoryStore(), bus.New())

	require.NoError(t, r.Select("Beginner Package", model.ServiceTypePackage))
	require.NoError(t, r.Select("Advanced Package", model.ServiceTypePackage))

	sel, ok := r.Consume()
	require.True(t, ok)
	assert.Equal(t, "Advanced Package", sel.Service)
}

func TestSelectionSweepStale(t *testing.T) {
	r := NewSelectionRepository(store.NewMemoryStore(), bus.New())

	now := time.Now()
	r.now = func() time.Time { return now }
	require.NoError(t, r.Select("Beginner Package", model.ServiceTypePackage))

	r.now = func() time.Time { return now.Add(30 * time.Minute) }
	removed, err := r.SweepStale(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	r.now = func() time.Time { return now.Add(2 * time.Hour) }
	removed, err = r.SweepStale(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok := r.Consume()
	assert.False(t, ok)
}
