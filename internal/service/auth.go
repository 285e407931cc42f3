// Package service holds the admin session manager. Content CRUD lives in
// the repositories; authentication is the one concern with its own lifecycle
// worth a service of its own.
package service

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
	"github.com/kulhudhufushidive/site-server/internal/util"
)

// AuthConfig carries the single fixed admin credential. PasswordHash (bcrypt)
// wins over Password when both are set.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// AuthService issues, validates, and expires the single admin session.
// Expiry is absolute from issuance; a valid read never extends it.
type AuthService struct {
	store         store.Store
	cfg           AuthConfig
	authenticated atomic.Bool
	mu            sync.Mutex
	now           func() time.Time
}

func NewAuthService(st store.Store, cfg AuthConfig) *AuthService {
	return &AuthService{store: st, cfg: cfg, now: time.Now}
}

// Login checks the credential pair and, on success, replaces whatever
// session record exists with a fresh one, returning the opaque token the
// cookie will carry. A failed login writes nothing and returns ok=false.
func (s *AuthService) Login(username, password string) (string, bool, error) {
	if !s.credentialsValid(username, password) {
		return "", false, nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", false, err
	}
	sessionID, err := util.GenerateShortID(24)
	if err != nil {
		return "", false, err
	}

	session := model.Session{
		IsAuthenticated: true,
		IssuedAt:        s.now().UnixMilli(),
		Username:        username,
		SessionID:       sessionID,
		TokenHash:       util.HmacSHA256(s.cfg.Secret, token),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(store.KeyAdminSession, data); err != nil {
		return "", false, err
	}
	s.authenticated.Store(true)
	return token, true, nil
}

// Logout destroys the session record unconditionally. Idempotent.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(store.KeyAdminSession); err != nil {
		log.Error().Err(err).Msg("failed to delete session record")
	}
	s.authenticated.Store(false)
}

// CheckAuth validates token against the stored session. A missing record,
// unparseable record, or record past its TTL fails closed: the record is
// removed (lazy expiry) and false comes back. A valid check leaves the
// record untouched.
func (s *AuthService) CheckAuth(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.readSession()
	if !ok {
		s.authenticated.Store(false)
		return false
	}

	if s.now().UnixMilli()-session.IssuedAt >= s.cfg.TTL.Milliseconds() {
		s.store.Delete(store.KeyAdminSession)
		s.authenticated.Store(false)
		return false
	}

	if !session.IsAuthenticated || !util.ConstantTimeEqual(session.TokenHash, util.HmacSHA256(s.cfg.Secret, token)) {
		// A stale cookie after a newer login; the stored session stays.
		return false
	}

	s.authenticated.Store(true)
	return true
}

// Authenticated reports the in-memory flag updated by the last state change,
// without touching the store.
func (s *AuthService) Authenticated() bool {
	return s.authenticated.Load()
}

// CurrentSession exposes the non-secret session fields for the admin UI.
func (s *AuthService) CurrentSession() (*model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.readSession()
	if !ok {
		return nil, false
	}
	session.TokenHash = ""
	return session, true
}

// SweepExpired removes an expired or corrupt session record. The cleanup job
// calls this so an abandoned session doesn't sit in the store until the next
// CheckAuth.
func (s *AuthService) SweepExpired() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(store.KeyAdminSession)
	if err != nil || !ok {
		return 0, err
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.authenticated.Store(false)
		return 1, s.store.Delete(store.KeyAdminSession)
	}
	if s.now().UnixMilli()-session.IssuedAt < s.cfg.TTL.Milliseconds() {
		return 0, nil
	}
	s.authenticated.Store(false)
	return 1, s.store.Delete(store.KeyAdminSession)
}

// readSession loads and parses the stored record. Malformed data is treated
// as absent and deleted.
func (s *AuthService) readSession() (*model.Session, bool) {
	raw, ok, err := s.store.Get(store.KeyAdminSession)
	if err != nil {
		log.Error().Err(err).Msg("failed to read session record")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		log.Warn().Err(err).Msg("stored session unparseable, failing closed")
		s.store.Delete(store.KeyAdminSession)
		return nil, false
	}
	return &session, true
}

func (s *AuthService) credentialsValid(username, password string) bool {
	userOK := util.ConstantTimeEqual(username, s.cfg.Username)
	if s.cfg.PasswordHash != "" {
		return userOK && util.CheckPasswordHash(password, s.cfg.PasswordHash)
	}
	return userOK && util.ConstantTimeEqual(password, s.cfg.Password)
}
