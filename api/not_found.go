package api

import (
	"net/http"

	"tasklist/errors"
	"tasklist/logger"
)

// NewNotFoundHandler is the catch-all for paths outside the API surface.
func NewNotFoundHandler(lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, errors.NewNotFoundError("Route not found"), lg)
	}
}
