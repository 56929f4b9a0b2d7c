package api

import (
	"net/http"
	"strconv"
	"strings"

	"tasklist/errors"
	"tasklist/logger"
	"tasklist/tasks/store"
)

// NewTaskActionsHandler returns the handler mounted under /tasks/ for
// operations on a single task:
//
//	POST   /tasks/{id}/complete
//	DELETE /tasks/{id}
//
// The id segment must parse as an integer; anything else under the prefix
// is an unmatched route.
func NewTaskActionsHandler(taskStore store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/complete"):
			handleCompleteTask(w, r, taskStore, lg)
		case r.Method == http.MethodDelete:
			handleDeleteTask(w, r, taskStore, lg)
		default:
			respondWithError(w, errors.NewNotFoundError("Route not found"), lg)
		}
	}
}

func handleCompleteTask(w http.ResponseWriter, r *http.Request, taskStore store.TaskStore, lg *logger.Logger) {
	// The id is the second-to-last segment: /tasks/{id}/complete
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 2 {
		respondWithError(w, errors.NewValidationError("Invalid task ID"), lg)
		return
	}

	id, err := strconv.Atoi(segments[len(segments)-2])
	if err != nil {
		respondWithError(w, errors.NewValidationError("Invalid task ID"), lg)
		return
	}

	done, err := taskStore.Complete(r.Context(), id)
	if err != nil {
		lg.Error("failed to complete task", map[string]any{"error": err.Error()})
		respondWithError(w, errors.NewInternalError("Internal server error"), lg)
		return
	}
	if !done {
		respondWithError(w, errors.NewNotFoundError("Task not found"), lg)
		return
	}

	lg.Task(id, "task completed")
	writeJSON(w, http.StatusOK, map[string]any{}, lg)
}

func handleDeleteTask(w http.ResponseWriter, r *http.Request, taskStore store.TaskStore, lg *logger.Logger) {
	// The id is the last segment: /tasks/{id}
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 2 {
		respondWithError(w, errors.NewValidationError("Invalid task ID"), lg)
		return
	}

	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		respondWithError(w, errors.NewValidationError("Invalid task ID"), lg)
		return
	}

	deleted, err := taskStore.Delete(r.Context(), id)
	if err != nil {
		lg.Error("failed to delete task", map[string]any{"error": err.Error()})
		respondWithError(w, errors.NewInternalError("Internal server error"), lg)
		return
	}
	if !deleted {
		respondWithError(w, errors.NewNotFoundError("Task not found"), lg)
		return
	}

	lg.Task(id, "task deleted")
	writeJSON(w, http.StatusOK, map[string]any{}, lg)
}
