package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/taskdeck/internal/auth"
	"github.com/dmitrymomot/taskdeck/internal/cookie"
	"github.com/dmitrymomot/taskdeck/internal/logger"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type authStatusResponse struct {
	User            *userResponse `json:"user"`
	IsAuthenticated bool          `json:"isAuthenticated"`
}

func toUserResponse(p auth.Principal) *userResponse {
	return &userResponse{ID: p.ID.String(), Username: p.Username}
}

// Register creates a new user. Duplicate usernames fail with 400 without
// leaking whether the existing record matches the submitted password.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	_, err := a.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		a.writeError(w, http.StatusBadRequest, msgUsernameTaken)
		return
	case errors.Is(err, auth.ErrEmptyCredentials):
		a.writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		a.writeError(w, http.StatusBadRequest, msgPasswordTooLong)
		return
	case err != nil:
		a.log.ErrorContext(r.Context(), "registration failed", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	a.writeMessage(w, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and starts a session. Unknown usernames and
// wrong passwords produce the same 401 response.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	principal, err := a.auth.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			a.writeError(w, http.StatusUnauthorized, msgInvalidLogin)
			return
		}
		a.log.ErrorContext(r.Context(), "login failed", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	sess, err := a.sessions.Create(r.Context(), principal.ID)
	if err != nil {
		a.log.ErrorContext(r.Context(), "failed to create session", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := a.cookies.SetSigned(w, sessionCookieName, sess.Token,
		cookie.WithMaxAge(int(a.sessions.TTL().Seconds())),
	); err != nil {
		a.log.ErrorContext(r.Context(), "failed to set session cookie", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserResponse(principal),
	})
}

// Logout destroys the current session and clears the cookie. It succeeds
// even when no session exists, so repeated logouts are harmless.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := a.cookies.GetSigned(r, sessionCookieName); err == nil {
		if err := a.sessions.Destroy(r.Context(), token); err != nil {
			a.log.ErrorContext(r.Context(), "failed to destroy session", logger.Error(err))
		}
	}
	a.cookies.Delete(w, sessionCookieName)
	a.writeMessage(w, http.StatusOK, "Logout successful")
}

// CheckAuth reports the session state. It always answers 200 so clients can
// probe without triggering error handling.
func (a *API) CheckAuth(w http.ResponseWriter, r *http.Request) {
	principal, err := a.authenticate(w, r)
	if err != nil {
		a.writeJSON(w, http.StatusOK, authStatusResponse{User: nil, IsAuthenticated: false})
		return
	}
	a.writeJSON(w, http.StatusOK, authStatusResponse{User: toUserResponse(principal), IsAuthenticated: true})
}
