package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/audit"
	"github.com/kulhudhufushidive/site-server/internal/config"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/metrics"
	"github.com/kulhudhufushidive/site-server/internal/repository"
)

// MediaHandler manages the uploaded image library. Uploads and deletes keep
// the legacy envelope contract: HTTP 200 with a success flag the caller
// checks.
type MediaHandler struct {
	media *repository.MediaRepository
}

func NewMediaHandler(media *repository.MediaRepository) *MediaHandler {
	return &MediaHandler{media: media}
}

func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upload)
	r.Post("/{id}/carousel", h.ToggleCarousel)
	r.Delete("/{id}", h.Remove)
	return r
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	images := h.media.List()
	writeJSON(w, http.StatusOK, map[string]any{"items": images, "total": len(images)})
}

// Upload accepts one or more files in a multipart request. Each file stands
// alone: a failed file is reported and skipped while the rest of the batch
// still goes through.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		envelopeError(w, "Invalid multipart request")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		envelopeError(w, "No file uploaded")
		return
	}

	uploaded := make([]any, 0, len(files))
	failed := make([]map[string]string, 0)

	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			metrics.UploadsTotal.WithLabelValues("failed").Inc()
			failed = append(failed, map[string]string{"name": header.Filename, "error": "unreadable file"})
			continue
		}

		img, err := h.media.Upload(r.Context(), header.Filename, src)
		src.Close()
		if err != nil {
			log.Error().Err(err).Str("name", header.Filename).Msg("upload failed")
			metrics.UploadsTotal.WithLabelValues("failed").Inc()
			failed = append(failed, map[string]string{"name": header.Filename, "error": "upload failed"})
			continue
		}

		metrics.UploadsTotal.WithLabelValues("ok").Inc()
		audit.FromRequest(r, audit.EventMediaUpload, map[string]interface{}{"name": img.Name, "filename": img.Filename})
		uploaded = append(uploaded, map[string]any{
			"id":           img.ID,
			"url":          img.URL,
			"filename":     img.Filename,
			"originalName": img.Name,
		})
	}

	writeEnvelope(w, map[string]any{
		"success":  len(uploaded) > 0,
		"uploaded": uploaded,
		"failed":   failed,
	})
}

func (h *MediaHandler) ToggleCarousel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.imageID(w, r)
	if !ok {
		return
	}

	img, err := h.media.ToggleCarousel(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// Remove deletes the record. The remote file delete inside is best-effort,
// so this always answers success for an existing record.
func (h *MediaHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.imageID(w, r)
	if !ok {
		return
	}

	if err := h.media.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	audit.FromRequest(r, audit.EventMediaDelete, map[string]interface{}{"id": id})
	writeEnvelope(w, map[string]any{"success": true})
}

func (h *MediaHandler) imageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidInput("id", "must be an integer"))
		return 0, false
	}
	return id, true
}
