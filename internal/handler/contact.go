package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/audit"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/metrics"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/repository"
)

// ContactHandler covers the public contact form and the admin inbox. The
// whole surface speaks the legacy envelope: HTTP 200 with a success flag.
type ContactHandler struct {
	messages repository.MessageStore
}

func NewContactHandler(messages repository.MessageStore) *ContactHandler {
	return &ContactHandler{messages: messages}
}

func (h *ContactHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.MarkRead)
	r.Delete("/{id}", h.Delete)
	return r
}

// Submit is the public form endpoint.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var draft model.MessageDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		envelopeError(w, "Invalid request body")
		return
	}
	if err := validateRequest(&draft); err != nil {
		envelopeError(w, "Name, email, and message are required")
		return
	}

	msg, err := h.messages.Create(r.Context(), draft)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeMissingRequired {
			envelopeError(w, "Name, email, and message are required")
			return
		}
		log.Error().Err(err).Msg("failed to store contact message")
		envelopeError(w, "Internal server error")
		return
	}

	metrics.MessagesReceivedTotal.Inc()
	writeEnvelope(w, map[string]any{
		"success": true,
		"message": "Message sent successfully",
		"id":      msg.ID,
	})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list contact messages")
		envelopeError(w, "Internal server error")
		return
	}
	writeEnvelope(w, map[string]any{"success": true, "messages": messages})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		envelopeError(w, "Message not found")
		return
	}
	writeEnvelope(w, map[string]any{"success": true, "message": msg})
}

func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Read *bool `json:"read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelopeError(w, "Invalid request body")
		return
	}

	read := true
	if req.Read != nil {
		read = *req.Read
	}

	if err := h.messages.MarkRead(r.Context(), chi.URLParam(r, "id"), read); err != nil {
		envelopeError(w, "Message not found")
		return
	}
	writeEnvelope(w, map[string]any{"success": true, "message": "Message updated successfully"})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.messages.Delete(r.Context(), id); err != nil {
		envelopeError(w, "Message not found")
		return
	}

	audit.FromRequest(r, audit.EventMessageDelete, map[string]interface{}{"id": id})
	writeEnvelope(w, map[string]any{"success": true, "message": "Message deleted successfully"})
}
