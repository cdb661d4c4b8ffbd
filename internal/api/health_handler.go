package api

import (
	"context"
	"net/http"

	"github.com/lzjever/mbos-items/internal/core"
)

// HealthHandler reports liveness only; the database is not consulted.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusOK, "Healthy")
}

// ReadyHandler returns 200 if the database answers a trivial query.
func (a *API) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.readyTimeout)
	defer cancel()

	if !a.queries.Ready(ctx) {
		WriteError(w, core.ErrNotReady)
		return
	}
	WriteText(w, http.StatusOK, "Ready")
}
