package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"rts-backend/internal/auth"

	"github.com/google/uuid"
)

const CookieName = "rts_admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin auth not configured")
	ErrNoSession          = errors.New("no admin session")
)

type Manager struct {
	user   string
	hash   string
	tokens *auth.Manager
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager hashes password once; the plain text is not kept.
func NewManager(user, password string, tokens *auth.Manager) (*Manager, error) {
	if strings.TrimSpace(user) == "" || password == "" || tokens == nil || len(tokens.Secret) == 0 {
		return nil, ErrNotConfigured
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Manager{
		user:     user,
		hash:     hash,
		tokens:   tokens,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}, nil
}

// Login checks the credential pair. On success it creates a logged-in
// session and returns its signed token; on failure nothing is created.
func (m *Manager) Login(username, password string) (string, *Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.user)) == 1
	passErr := auth.ComparePassword(m.hash, password)
	if !userOK || passErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: m.now(),
		state:     StateLoggedIn,
	}
	token, err := m.tokens.NewSessionToken(auth.RoleAdmin, s.ID)
	if err != nil {
		return "", nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return token, s, nil
}

// Authenticate resolves a token to its live session.
func (m *Manager) Authenticate(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := m.tokens.Parse(token)
	if err != nil || claims.Role != auth.RoleAdmin {
		return nil, ErrNoSession
	}
	m.mu.RLock()
	s, ok := m.sessions[claims.ID]
	m.mu.RUnlock()
	if !ok || s.State() != StateLoggedIn {
		return nil, ErrNoSession
	}
	return s, nil
}

// AuthenticateRequest reads the session cookie or a bearer token and
// returns the request context carrying the session.
func (m *Manager) AuthenticateRequest(r *http.Request) (context.Context, error) {
	s, err := m.Authenticate(TokenFromRequest(r))
	if err != nil {
		return nil, err
	}
	return WithSession(r.Context(), s), nil
}

// Logout moves the session to logged out, drops its draft and forgets it.
func (m *Manager) Logout(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.logout()
	}
	return ok
}

func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
