package middleware

import (
	"net/http"
	"strings"

	"github.com/kulhudhufushidive/site-server/internal/config"
)

const defaultBodyLimit = 1 << 20 // JSON payloads

// BodyLimitMiddleware caps request body sizes. Multipart uploads get the
// larger media budget; everything else is JSON and stays small.
type BodyLimitMiddleware struct {
	jsonLimit int64
}

func NewBodyLimitMiddleware(jsonLimit int64) *BodyLimitMiddleware {
	if jsonLimit <= 0 {
		jsonLimit = defaultBodyLimit
	}
	return &BodyLimitMiddleware{jsonLimit: jsonLimit}
}

func (m *BodyLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := m.jsonLimit
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			limit = config.MaxUploadBytes
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
