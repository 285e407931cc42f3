package middleware

import (
	"net/http"
	"time"

	"github.com/kulhudhufushidive/site-server/internal/httputil"
	"github.com/kulhudhufushidive/site-server/internal/service"
)

const AdminSessionCookie = "admin_session"

// SessionMiddleware gates admin routes on a valid session cookie. Validation
// runs through the auth service, so an expired record is removed on the spot.
type SessionMiddleware struct {
	auth *service.AuthService
}

func NewSessionMiddleware(auth *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminSessionCookie)
		if err != nil || cookie.Value == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		if !m.auth.CheckAuth(cookie.Value) {
			httputil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   AdminSessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
