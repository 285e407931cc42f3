package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/audit"
	"github.com/kulhudhufushidive/site-server/internal/middleware"
	"github.com/kulhudhufushidive/site-server/internal/service"
)

// AuthHandler exposes the admin session lifecycle.
type AuthHandler struct {
	auth         *service.AuthService
	sessionTTL   time.Duration
	isProduction bool
}

func NewAuthHandler(auth *service.AuthService, sessionTTL time.Duration, isProduction bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL, isProduction: isProduction}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	token, ok, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		log.Error().Err(err).Msg("admin login error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Login failed"})
		return
	}

	if !ok {
		audit.FromRequest(r, audit.EventLoginFailure, map[string]interface{}{"username": req.Username})
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	audit.FromRequest(r, audit.EventLoginSuccess, map[string]interface{}{"username": req.Username})
	middleware.SetSessionCookie(w, token, h.sessionTTL, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout()
	audit.FromRequest(r, audit.EventLogout, nil)
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session reports whether the presented cookie still holds a live session,
// so the admin SPA can decide between the panel and the login form.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.AdminSessionCookie)
	if err != nil || cookie.Value == "" || !h.auth.CheckAuth(cookie.Value) {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, ok := h.auth.CurrentSession()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      session.Username,
		"issuedAt":      session.IssuedAt,
		"sessionId":     session.SessionID,
	})
}
