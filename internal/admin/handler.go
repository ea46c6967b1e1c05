package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rts-backend/internal/httpx"
	"rts-backend/internal/middleware"
	"rts-backend/internal/validation"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Status string `json:"status"`
	Draft  *Draft `json:"draft,omitempty"`
}

type Handler struct {
	manager      *Manager
	val          *validation.Validator
	log          *slog.Logger
	cookieTTL    time.Duration
	cookieSecure bool
}

// NewHandler accepts a nil manager; login then answers 503.
func NewHandler(manager *Manager, val *validation.Validator, log *slog.Logger, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		manager:      manager,
		val:          val,
		log:          log,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		httpx.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		httpx.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.manager == nil {
		log.Warn("admin login: not configured")
		httpx.WriteError(w, http.StatusServiceUnavailable, ErrNotConfigured.Error(), nil)
		return
	}

	token, session, err := h.manager.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login: token error", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	h.setCookie(w, token)
	log.Info("admin login: ok", slog.String("session_id", session.ID))
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{Status: session.State().String()})
}

// Logout always succeeds; an unknown or missing session is already logged
// out.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if h.manager != nil {
		if s, err := h.manager.Authenticate(TokenFromRequest(r)); err == nil {
			h.manager.Logout(s.ID)
			log.Info("admin logout: ok", slog.String("session_id", s.ID))
		}
	}
	h.clearCookie(w)
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{Status: StateLoggedOut.String()})
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	if h.manager != nil {
		if s, err := h.manager.Authenticate(TokenFromRequest(r)); err == nil {
			draft := s.Draft()
			httpx.WriteJSON(w, http.StatusOK, SessionResponse{Status: s.State().String(), Draft: &draft})
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{Status: StateLoggedOut.String()})
}

// CloseDraft abandons the add or edit in progress.
func (h *Handler) CloseDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := FromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "no admin session", nil)
		return
	}
	s.ClearDraft()
	draft := s.Draft()
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{Status: s.State().String(), Draft: &draft})
}

func (h *Handler) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
		MaxAge:   -1,
	})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
