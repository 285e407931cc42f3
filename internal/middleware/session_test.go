package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulhudhufushidive/site-server/internal/service"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

func newSessionFixture(t *testing.T) (*SessionMiddleware, *service.AuthService) {
	t.Helper()
	auth := service.NewAuthService(store.NewMemoryStore(), service.AuthConfig{
		Username: "admin",
		Password: "correct-horse",
		Secret:   "test-secret",
		TTL:      24 * time.Hour,
	})
	return NewSessionMiddleware(auth), auth
}

func protected(m *SessionMiddleware, reached *bool) http.Handler {
	return m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSessionMiddlewareRejectsMissingCookie(t *testing.T) {
	m, _ := newSessionFixture(t)

	reached := false
	rec := httptest.NewRecorder()
	protected(m, &reached).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionMiddlewareRejectsInvalidToken(t *testing.T) {
	m, _ := newSessionFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "forged"})

	reached := false
	rec := httptest.NewRecorder()
	protected(m, &reached).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionMiddlewarePassesValidToken(t *testing.T) {
	m, auth := newSessionFixture(t)

	token, ok, err := auth.Login("admin", "correct-horse")
	require.NoError(t, err)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: token})

	reached := false
	rec := httptest.NewRecorder()
	protected(m, &reached).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
