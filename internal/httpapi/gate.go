package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/taskdeck/internal/auth"
	"github.com/dmitrymomot/taskdeck/internal/cookie"
	"github.com/dmitrymomot/taskdeck/internal/logger"
)

// ErrUnauthenticated is returned when no valid session can be resolved
// from the request, regardless of whether the cookie was missing, the
// signature invalid, or the session expired.
var ErrUnauthenticated = errors.New("user is not authenticated")

type contextKey int

const principalKey contextKey = iota

// PrincipalFromContext returns the authenticated principal stored by the
// authorization gate.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// authenticate resolves the session cookie into a principal. On success the
// cookie is re-issued with the session's extended lifetime so the client
// tracks the sliding expiry. All failure modes collapse into
// ErrUnauthenticated.
func (a *API) authenticate(w http.ResponseWriter, r *http.Request) (auth.Principal, error) {
	token, err := a.cookies.GetSigned(r, sessionCookieName)
	if err != nil {
		return auth.Principal{}, ErrUnauthenticated
	}

	sess, err := a.sessions.Lookup(r.Context(), token)
	if err != nil {
		return auth.Principal{}, ErrUnauthenticated
	}

	principal, err := a.auth.GetByID(r.Context(), sess.PrincipalID)
	if err != nil {
		return auth.Principal{}, ErrUnauthenticated
	}

	if remaining := time.Until(sess.ExpiresAt); remaining > 0 {
		if err := a.cookies.SetSigned(w, sessionCookieName, sess.Token,
			cookie.WithMaxAge(int(remaining.Seconds())),
		); err != nil {
			a.log.WarnContext(r.Context(), "failed to refresh session cookie", logger.Error(err))
		}
	}

	return principal, nil
}

// RequireAuth is the authorization gate. Requests without a valid session
// are rejected with 401 before reaching the handler; authenticated requests
// carry the principal in the context.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.authenticate(w, r)
		if err != nil {
			a.writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
