package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

func newHeroContent(st store.Store, b *bus.Bus) *Content[model.HeroContent] {
	return NewContent(st, b, store.KeyHeroContent, bus.TopicHeroUpdated, model.DefaultHeroContent)
}

func TestContentLoadReturnsDefaultsWhenAbsent(t *testing.T) {
	c := newHeroContent(store.NewMemoryStore(), bus.New())

	assert.Equal(t, model.DefaultHeroContent(), c.Load())
}

func TestContentSaveThenLoadRoundTrip(t *testing.T) {
	c := newHeroContent(store.NewMemoryStore(), bus.New())

	saved := model.HeroContent{MainTitle: "New Title", Subtitle: "New Subtitle"}
	require.NoError(t, c.Save(saved))

	assert.Equal(t, saved, c.Load())
}

func TestContentSavePublishesTopic(t *testing.T) {
	b := bus.New()
	c := newHeroContent(store.NewMemoryStore(), b)

	var published []bus.Topic
	b.Subscribe(bus.TopicHeroUpdated, func(topic bus.Topic) { published = append(published, topic) })

	require.NoError(t, c.Save(model.HeroContent{MainTitle: "x"}))

	assert.Equal(t, []bus.Topic{bus.TopicHeroUpdated}, published)
}

func TestContentLoadFallsBackOnCorruptValue(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(store.KeyHeroContent, []byte("{not json")))

	c := newHeroContent(st, bus.New())

	assert.Equal(t, model.DefaultHeroContent(), c.Load())
}

func TestContentLoadAcceptsLegacyUnversionedValue(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(store.KeyHeroContent, []byte(`{"mainTitle":"Old","subtitle":"Format"}`)))

	c := newHeroContent(st, bus.New())

	assert.Equal(t, model.HeroContent{MainTitle: "Old", Subtitle: "Format"}, c.Load())
}

func TestContentSaveWritesVersionEnvelope(t *testing.T) {
	st := store.NewMemoryStore()
	c := newHeroContent(st, bus.New())

	require.NoError(t, c.Save(model.HeroContent{MainTitle: "x"}))

	raw, ok, err := st.Get(store.KeyHeroContent)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"version":1`)
}

func TestContentSaveSurfacesStoreError(t *testing.T) {
	c := newHeroContent(failingStore{}, bus.New())

	assert.Error(t, c.Save(model.HeroContent{MainTitle: "x"}))
}

func TestContentLoadDegradesToDefaultsOnStoreError(t *testing.T) {
	c := newHeroContent(failingStore{}, bus.New())

	assert.Equal(t, model.DefaultHeroContent(), c.Load())
}

type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, assert.AnError }
func (failingStore) Set(string, []byte) error         { return assert.AnError }
func (failingStore) Delete(string) error              { return assert.AnError }
