package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/audit"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/repository"
)

// ServicesHandler serves the bookable services and the "book now" pre-fill
// handoff between the services page and the contact form.
type ServicesHandler struct {
	services  *repository.ServicesRepository
	selection *repository.SelectionRepository
}

func NewServicesHandler(services *repository.ServicesRepository, selection *repository.SelectionRepository) *ServicesHandler {
	return &ServicesHandler{services: services, selection: selection}
}

func (h *ServicesHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListActive)
	r.Post("/select", h.Select)
	r.Get("/selected", h.Selected)
	return r
}

func (h *ServicesHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAll)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/toggle", h.ToggleActive)
	return r
}

// ListActive is the public view: only active services are visible.
func (h *ServicesHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	all := h.services.List()
	active := make([]model.Service, 0, len(all))
	for _, svc := range all {
		if svc.Active {
			active = append(active, svc)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": active, "total": len(active)})
}

func (h *ServicesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	all := h.services.List()
	writeJSON(w, http.StatusOK, map[string]any{"items": all, "total": len(all)})
}

func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	svc, err := h.services.Create(*draft)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.FromRequest(r, audit.EventServiceCreate, map[string]interface{}{"id": svc.ID, "title": svc.Title})
	writeJSON(w, http.StatusCreated, svc)
}

func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r)
	if !ok {
		return
	}
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	svc, err := h.services.Update(id, *draft)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.FromRequest(r, audit.EventServiceUpdate, map[string]interface{}{"id": svc.ID})
	writeJSON(w, http.StatusOK, svc)
}

func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	if err := h.services.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	audit.FromRequest(r, audit.EventServiceDelete, map[string]interface{}{"id": id})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ServicesHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	svc, err := h.services.ToggleActive(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// Select records which service a visitor picked on the services page so the
// contact form can pre-fill it.
func (h *ServicesHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service string            `json:"service" validate:"required"`
		Type    model.ServiceType `json:"type" validate:"required,oneof=package course"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.selection.Select(req.Service, req.Type); err != nil {
		log.Error().Err(err).Msg("failed to store service selection")
		writeError(w, apperrors.Storage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Selected returns the pending pre-fill, clearing it: the selection is
// single-use by design.
func (h *ServicesHandler) Selected(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection.Consume()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"selected": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": sel})
}

func (h *ServicesHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (*model.ServiceDraft, bool) {
	var draft model.ServiceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, apperrors.InvalidInput("body", "malformed JSON"))
		return nil, false
	}
	if err := validateRequest(&draft); err != nil {
		writeError(w, err)
		return nil, false
	}
	return &draft, true
}

func (h *ServicesHandler) serviceID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("id", "must be an integer"))
		return 0, false
	}
	return id, true
}
