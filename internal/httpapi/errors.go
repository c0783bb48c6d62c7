package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response messages mirror what clients display verbatim, so they stay
// stable even when the underlying sentinel errors change wording.
const (
	msgUsernameTaken    = "Username already taken"
	msgInvalidLogin     = "Invalid username or password"
	msgNotAuthenticated = "User is not authenticated"
	msgInvalidBody      = "Invalid request body"
	msgPasswordTooLong  = "Password is too long"
	msgTaskNotFound     = "Task not found"
	msgAccountNotFound  = "Account not found"
	msgInternal         = "Internal server error"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("failed to encode response", slog.Any("error", err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, errorResponse{Error: message})
}

func (a *API) writeMessage(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, messageResponse{Message: message})
}

// decodeJSON parses the request body into dst. A false return means the
// 400 response has already been written.
func (a *API) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
