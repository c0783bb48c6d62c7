package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/taskdeck/internal/logger"
)

// Liveness reports that the process is up. It never checks dependencies.
func (a *API) Liveness(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness runs the registered healthchecks and reports 503 when any fails.
func (a *API) Readiness(w http.ResponseWriter, r *http.Request) {
	for _, check := range a.healthchecks {
		if err := check(r.Context()); err != nil {
			a.log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
