package handler

import (
	"net/http"

	"github.com/kulhudhufushidive/site-server/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// writeEnvelope answers the legacy contact/upload contract: always HTTP 200,
// the caller checks the success field.
func writeEnvelope(w http.ResponseWriter, body map[string]any) {
	httputil.WriteJSON(w, http.StatusOK, body)
}

func envelopeError(w http.ResponseWriter, message string) {
	writeEnvelope(w, map[string]any{"success": false, "error": message})
}
