package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/repository"
)

func newContactHandler(t *testing.T) (*ContactHandler, repository.MessageStore) {
	t.Helper()
	messages, err := repository.NewFileMessageStore(t.TempDir())
	require.NoError(t, err)
	return NewContactHandler(messages), messages
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, "the contact surface always answers 200")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSubmitStoresMessage(t *testing.T) {
	h, messages := newContactHandler(t)

	payload := `{"name":"Aishath","email":"aishath@example.com","message":"Booking inquiry"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Message sent successfully", body["message"])
	assert.NotEmpty(t, body["id"])

	stored, err := messages.List(req.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Aishath", stored[0].Name)
}

func TestSubmitMissingFields(t *testing.T) {
	h, messages := newContactHandler(t)

	payload := `{"name":"Aishath","email":"","message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Name, email, and message are required", body["error"])

	stored, err := messages.List(req.Context())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitMalformedBody(t *testing.T) {
	h, _ := newContactHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestAdminInboxFlow(t *testing.T) {
	h, _ := newContactHandler(t)
	router := h.AdminRoutes()

	// Seed one message through the public surface.
	payload := `{"name":"Aishath","email":"aishath@example.com","message":"Booking inquiry"}`
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(payload)))
	id := decodeEnvelope(t, rec)["id"].(string)

	// List.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["messages"], 1)

	// Mark read.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+id, strings.NewReader(`{"read":true}`)))
	body = decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+id, nil))
	body = decodeEnvelope(t, rec)
	msg := body["message"].(map[string]any)
	assert.Equal(t, true, msg["read"])

	// Delete.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+id, nil))
	body = decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+id, nil))
	body = decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestAdminGetUnknownMessage(t *testing.T) {
	h, _ := newContactHandler(t)

	router := chi.NewRouter()
	router.Mount("/", h.AdminRoutes())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Message not found", body["error"])
}
