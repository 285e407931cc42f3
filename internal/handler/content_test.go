package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/media"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/repository"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

type contentFixture struct {
	handler     *ContentHandler
	hero        *repository.Content[model.HeroContent]
	contactInfo *repository.Content[model.ContactInfo]
	media       *repository.MediaRepository
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	st := store.NewMemoryStore()
	b := bus.New()

	hero := repository.NewContent(st, b, store.KeyHeroContent, bus.TopicHeroUpdated, model.DefaultHeroContent)
	site := repository.NewContent(st, b, store.KeySiteContent, bus.TopicSiteContentUpdated, model.DefaultSiteContent)
	contactInfo := repository.NewContent(st, b, store.KeyContactInfo, bus.TopicContactInfoUpdated, model.DefaultContactInfo)
	media := repository.NewMediaRepository(st, b, &fakeContentStorage{})

	return &contentFixture{
		handler:     NewContentHandler(hero, site, contactInfo, media),
		hero:        hero,
		contactInfo: contactInfo,
		media:       media,
	}
}

type fakeContentStorage struct{}

func (fakeContentStorage) Save(_ context.Context, name string, _ io.Reader) (*media.StoredFile, error) {
	return &media.StoredFile{URL: "/images/media/" + name, Filename: name}, nil
}

func (fakeContentStorage) Delete(context.Context, string) error { return nil }

func TestGetHeroReturnsDefaults(t *testing.T) {
	f := newContentFixture(t)

	rec := httptest.NewRecorder()
	f.handler.PublicRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hero", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var hero model.HeroContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hero))
	assert.Equal(t, model.DefaultHeroContent(), hero)
}

func TestSaveHeroRoundTrip(t *testing.T) {
	f := newContentFixture(t)

	payload := `{"mainTitle":"New Title","subtitle":"New Subtitle"}`
	rec := httptest.NewRecorder()
	f.handler.AdminRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/hero", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.HeroContent{MainTitle: "New Title", Subtitle: "New Subtitle"}, f.hero.Load())
}

func TestSaveHeroMalformedBody(t *testing.T) {
	f := newContentFixture(t)

	rec := httptest.NewRecorder()
	f.handler.AdminRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/hero", strings.NewReader(`{broken`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveSiteMirrorsContactInfo(t *testing.T) {
	f := newContentFixture(t)

	site := model.DefaultSiteContent()
	site.Contact.Phone = "+960 777-0000"
	payload, err := json.Marshal(site)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	f.handler.AdminRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/site", strings.NewReader(string(payload))))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+960 777-0000", f.contactInfo.Load().Phone)
}

func TestCarouselFallsBackToDefaults(t *testing.T) {
	f := newContentFixture(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/carousel", nil)
	f.handler.Carousel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Images []model.CarouselSlide `json:"images"`
		Custom bool                  `json:"custom"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Custom)
	assert.Equal(t, model.DefaultCarouselSlides(), body.Images)
}
