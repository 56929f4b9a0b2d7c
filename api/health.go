package api

import (
	"net/http"
	"time"

	"tasklist/config"
	"tasklist/logger"
	"tasklist/tasks/store"
)

var startTime = time.Now()

// HealthResponse provides detailed health information
type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Uptime       string `json:"uptime"`
	StoreBackend string `json:"store_backend"`
	TaskCount    int    `json:"task_count"`
	Version      string `json:"version,omitempty"`
}

// NewHealthHandler returns a health check handler
func NewHealthHandler(cfg *config.Config, taskStore store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		count := 0
		status := "healthy"
		if list, err := taskStore.List(r.Context()); err != nil {
			// The store backend is unreachable; still answer, but say so.
			status = "degraded"
			lg.Warn("health check could not reach store", map[string]any{"error": err.Error()})
		} else {
			count = len(list)
		}

		response := HealthResponse{
			Status:       status,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Uptime:       time.Since(startTime).String(),
			StoreBackend: cfg.StoreBackend,
			TaskCount:    count,
			Version:      cfg.Version,
		}

		writeJSON(w, http.StatusOK, response, lg)
	}
}
