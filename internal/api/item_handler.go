package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lzjever/mbos-items/internal/api/middleware"
	"github.com/lzjever/mbos-items/internal/core"
	"github.com/lzjever/mbos-items/internal/observability"
)

// ListItems returns every row as a JSON array of [id, name] arrays.
func (a *API) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.queries.ListItems(r.Context())
	if err != nil {
		a.writeStoreError(w, r, a.log, "list items failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetItem returns a single row as [id, name].
func (a *API) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(pathParam(r, "id"))
	if err != nil {
		WriteError(w, core.ErrInvalidID)
		return
	}

	item, err := a.queries.GetItem(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, r, observability.ItemLogger(a.log, "get", id), "get item failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// CreateItem inserts an item named by the {name} segment. The segment is
// stored as sent, without percent-decoding, so a name never contains '/'.
func (a *API) CreateItem(w http.ResponseWriter, r *http.Request) {
	name := rawSegment(r)
	if name == "" {
		a.NotFound(w, r)
		return
	}

	id, err := a.queries.CreateItem(r.Context(), name)
	if err != nil {
		a.writeStoreError(w, r, a.log, "create item failed", err)
		return
	}
	WriteText(w, http.StatusCreated, fmt.Sprintf("Added: %s with ID %d", name, id))
}

// UpdateItem replaces the name of an item with the raw request body.
func (a *API) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(pathParam(r, "id"))
	if err != nil {
		WriteError(w, core.ErrInvalidID)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, core.ErrInvalidItemName)
		return
	}
	name := string(body)
	if !validName(name) {
		WriteError(w, core.ErrInvalidItemName)
		return
	}

	if err := a.queries.UpdateItem(r.Context(), id, name); err != nil {
		a.writeStoreError(w, r, observability.ItemLogger(a.log, "update", id), "update item failed", err)
		return
	}
	WriteText(w, http.StatusOK, fmt.Sprintf("Updated ID %d to %s", id, name))
}

// DeleteItem removes the row with the given id.
func (a *API) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(pathParam(r, "id"))
	if err != nil {
		WriteError(w, core.ErrInvalidID)
		return
	}

	if err := a.queries.DeleteItem(r.Context(), id); err != nil {
		a.writeStoreError(w, r, observability.ItemLogger(a.log, "delete", id), "delete item failed", err)
		return
	}
	WriteText(w, http.StatusOK, fmt.Sprintf("Deleted ID %d", id))
}

// writeStoreError maps a store error to 404 or, for anything unexpected, 500.
func (a *API) writeStoreError(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	if errors.Is(err, core.ErrItemNotFound) {
		WriteError(w, core.ErrMissingItem)
		return
	}
	log.Error(msg, zap.Error(err), zap.String("request_id", middleware.GetRequestID(r)))
	WriteError(w, core.ErrInternalServer)
}

// validName rejects text PostgreSQL cannot store in a TEXT column.
func validName(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
