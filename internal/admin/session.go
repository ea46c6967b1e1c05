// Package admin gates catalog mutations behind a single configured
// credential pair. Sessions live in memory and are lost on restart.
package admin

import (
	"context"
	"sync"
	"time"
)

type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
)

func (s State) String() string {
	if s == StateLoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Draft is the editor work in progress: adding a new record or editing an
// existing one. The zero value means nothing is open.
type Draft struct {
	Adding    bool   `json:"adding"`
	EditingID string `json:"editingId,omitempty"`
}

func (d Draft) Open() bool {
	return d.Adding || d.EditingID != ""
}

type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state State
	draft Draft
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// BeginAdd opens an empty form, replacing any edit in progress.
func (s *Session) BeginAdd() {
	s.mu.Lock()
	s.draft = Draft{Adding: true}
	s.mu.Unlock()
}

// BeginEdit opens the form for id, replacing any add in progress.
func (s *Session) BeginEdit(id string) {
	s.mu.Lock()
	s.draft = Draft{EditingID: id}
	s.mu.Unlock()
}

func (s *Session) ClearDraft() {
	s.mu.Lock()
	s.draft = Draft{}
	s.mu.Unlock()
}

func (s *Session) logout() {
	s.mu.Lock()
	s.state = StateLoggedOut
	s.draft = Draft{}
	s.mu.Unlock()
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session attached by the auth middleware. Requests
// authorized by API key carry none.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
