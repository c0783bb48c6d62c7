package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/taskdeck/internal/logger"
	"github.com/dmitrymomot/taskdeck/internal/storage"
)

type createTaskRequest struct {
	ShortDescription string     `json:"shortDescription"`
	LongDescription  string     `json:"longDescription"`
	Deadline         *time.Time `json:"deadline"`
	Priority         string     `json:"priority"`
	AssignedBy       string     `json:"assignedBy"`
	ListNumber       int        `json:"listNumber"`
}

// ListTasks returns the caller's tasks. Other users' tasks are never visible.
func (a *API) ListTasks(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	tasks, err := a.tasks.ListByUser(r.Context(), principal.ID)
	if err != nil {
		a.log.ErrorContext(r.Context(), "failed to list tasks", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	a.writeJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task owned by the caller.
func (a *API) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req createTaskRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	task := storage.Task{
		ID:               uuid.New(),
		UserID:           principal.ID,
		UserName:         principal.Username,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Deadline:         req.Deadline,
		Priority:         req.Priority,
		AssignedBy:       req.AssignedBy,
		ListNumber:       req.ListNumber,
	}

	if err := a.tasks.Create(r.Context(), task); err != nil {
		a.log.ErrorContext(r.Context(), "failed to create task", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	a.writeJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update and returns the updated task.
func (a *API) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		a.writeError(w, http.StatusNotFound, msgTaskNotFound)
		return
	}

	var upd storage.TaskUpdate
	if !a.decodeJSON(w, r, &upd) {
		return
	}

	task, err := a.tasks.Update(r.Context(), taskID, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, msgTaskNotFound)
			return
		}
		a.log.ErrorContext(r.Context(), "failed to update task", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	a.writeJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task. Deleting an absent task still reports success,
// so retried deletes are harmless.
func (a *API) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		a.writeError(w, http.StatusNotFound, msgTaskNotFound)
		return
	}

	if err := a.tasks.Delete(r.Context(), taskID); err != nil {
		a.log.ErrorContext(r.Context(), "failed to delete task", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	a.writeMessage(w, http.StatusOK, "Task deleted")
}
