package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/audit"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/repository"
)

// ContentHandler serves the editable page sections: hero text, the wider
// site content record, and contact info. Reads are public; saves replace the
// record wholesale and require a session.
type ContentHandler struct {
	hero        *repository.Content[model.HeroContent]
	site        *repository.Content[model.SiteContent]
	contactInfo *repository.Content[model.ContactInfo]
	media       *repository.MediaRepository
}

func NewContentHandler(
	hero *repository.Content[model.HeroContent],
	site *repository.Content[model.SiteContent],
	contactInfo *repository.Content[model.ContactInfo],
	media *repository.MediaRepository,
) *ContentHandler {
	return &ContentHandler{hero: hero, site: site, contactInfo: contactInfo, media: media}
}

func (h *ContentHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/hero", h.GetHero)
	r.Get("/site", h.GetSite)
	r.Get("/contact-info", h.GetContactInfo)
	return r
}

func (h *ContentHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Put("/hero", h.SaveHero)
	r.Put("/site", h.SaveSite)
	r.Put("/contact-info", h.SaveContactInfo)
	return r
}

func (h *ContentHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hero.Load())
}

func (h *ContentHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.site.Load())
}

func (h *ContentHandler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.contactInfo.Load())
}

// Carousel returns the slides the hero should render. When no uploaded image
// is marked for the carousel the built-in set fills in; custom reports which
// case the client is looking at.
func (h *ContentHandler) Carousel(w http.ResponseWriter, r *http.Request) {
	slides := h.media.CarouselSlides()
	custom := len(slides) > 0
	if !custom {
		slides = model.DefaultCarouselSlides()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"images": slides,
		"custom": custom,
	})
}

func (h *ContentHandler) SaveHero(w http.ResponseWriter, r *http.Request) {
	var content model.HeroContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	if err := h.hero.Save(content); err != nil {
		log.Error().Err(err).Msg("failed to save hero content")
		writeError(w, apperrors.Storage(err))
		return
	}

	audit.FromRequest(r, audit.EventContentUpdate, map[string]interface{}{"section": "hero"})
	writeJSON(w, http.StatusOK, content)
}

func (h *ContentHandler) SaveSite(w http.ResponseWriter, r *http.Request) {
	var content model.SiteContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	if err := h.site.Save(content); err != nil {
		log.Error().Err(err).Msg("failed to save site content")
		writeError(w, apperrors.Storage(err))
		return
	}

	// Keep the contact info record in step with the contact section, the way
	// the admin panel has always mirrored the two.
	if err := h.contactInfo.Save(content.Contact); err != nil {
		log.Error().Err(err).Msg("failed to mirror contact info")
	}

	audit.FromRequest(r, audit.EventContentUpdate, map[string]interface{}{"section": "site"})
	writeJSON(w, http.StatusOK, content)
}

func (h *ContentHandler) SaveContactInfo(w http.ResponseWriter, r *http.Request) {
	var info model.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}

	if err := h.contactInfo.Save(info); err != nil {
		log.Error().Err(err).Msg("failed to save contact info")
		writeError(w, apperrors.Storage(err))
		return
	}

	audit.FromRequest(r, audit.EventContentUpdate, map[string]interface{}{"section": "contact"})
	writeJSON(w, http.StatusOK, info)
}
