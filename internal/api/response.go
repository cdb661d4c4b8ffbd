package api

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/mbos-items/internal/core"
)

// WriteError writes a failure as a plain-text body.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	WriteText(w, err.Code.HTTPStatus(), err.Message)
}

// WriteText writes a plain-text response.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		WriteError(w, core.ErrInternalServer)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
