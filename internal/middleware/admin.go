package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"rts-backend/internal/httpx"
)

// SessionAuthenticator resolves a request to an authenticated context.
type SessionAuthenticator interface {
	AuthenticateRequest(r *http.Request) (context.Context, error)
}

// AdminAuth lets a request through when it carries the operator API key or
// a live admin session.
func AdminAuth(adminKey string, sessions SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && sessions == nil {
				httpx.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if key := r.Header.Get("X-Admin-Key"); adminKey != "" && key != "" &&
				subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil {
				if ctx, err := sessions.AuthenticateRequest(r); err == nil {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}
