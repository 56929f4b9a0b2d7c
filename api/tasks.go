package api

import (
	"encoding/json"
	"net/http"

	"tasklist/errors"
	"tasklist/logger"
	"tasklist/tasks"
	"tasklist/tasks/store"
)

const maxBodySize = 1024 * 1024 // 1 MB

// errorResponse defines the JSON structure for error responses
type errorResponse struct {
	Error string `json:"error"`
}

// createTaskRequest defines the expected payload for POST /tasks.
// Priority is a pointer so an absent field (defaulted) can be told apart
// from a present-but-invalid one such as "" (rejected).
type createTaskRequest struct {
	Title    string  `json:"title"`
	Priority *string `json:"priority"`
}

// NewTasksHandler returns the handler for the /tasks collection:
// GET lists every task, POST creates one. Any other method is an
// unmatched route, not a 405; the API has a single not-found shape.
func NewTasksHandler(taskStore store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handleListTasks(w, r, taskStore, lg)
		case http.MethodPost:
			handleCreateTask(w, r, taskStore, lg)
		default:
			respondWithError(w, errors.NewNotFoundError("Route not found"), lg)
		}
	}
}

func handleListTasks(w http.ResponseWriter, r *http.Request, taskStore store.TaskStore, lg *logger.Logger) {
	list, err := taskStore.List(r.Context())
	if err != nil {
		lg.Error("failed to list tasks", map[string]any{"error": err.Error()})
		respondWithError(w, errors.NewInternalError("Internal server error"), lg)
		return
	}

	if list == nil {
		list = []tasks.Task{}
	}

	writeJSON(w, http.StatusOK, list, lg)
}

func handleCreateTask(w http.ResponseWriter, r *http.Request, taskStore store.TaskStore, lg *logger.Logger) {
	// Limit request body size - this will cause Decode to fail if exceeded
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid JSON"), lg)
		return
	}

	if req.Title == "" {
		respondWithError(w, errors.NewValidationError("title is required"), lg)
		return
	}

	priority := tasks.DefaultPriority
	if req.Priority != nil {
		priority = tasks.Priority(*req.Priority)
		if !priority.Valid() {
			respondWithError(w, errors.NewValidationError("priority must be low, normal, or high"), lg)
			return
		}
	}

	task, err := taskStore.Create(r.Context(), req.Title, priority)
	if err != nil {
		lg.Error("failed to create task", map[string]any{"error": err.Error()})
		respondWithError(w, errors.NewInternalError("Internal server error"), lg)
		return
	}

	lg.Task(task.ID, "task created", map[string]any{
		"title":    task.Title,
		"priority": task.Priority.String(),
	})

	writeJSON(w, http.StatusCreated, task, lg)
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already written; all we can do is log it.
		lg.Error("failed to encode response", map[string]any{"error": err.Error()})
	}
}

// respondWithError sends the error body shape shared by every failure path.
func respondWithError(w http.ResponseWriter, taskErr *errors.TaskError, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(taskErr.Code)

	lg.Error("HTTP error response", map[string]any{
		"error_type":    string(taskErr.Type),
		"error_message": taskErr.Message,
		"status_code":   taskErr.Code,
	})

	if err := json.NewEncoder(w).Encode(errorResponse{Error: taskErr.Message}); err != nil {
		lg.Error("failed to encode error response", map[string]any{"error": err.Error()})
	}
}
