package playground

import (
	"encoding/json"
	"net/http"
)

// Error carries an HTTP status and a stable machine-readable ID so handlers
// can fail with one value and the response writer can render it consistently.
type Error struct {
	StatusCode int    `json:"-"`
	ID         string `json:"error"`
	Message    string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.ID + ": " + e.Message
	}
	return e.ID
}

func httpError(statusCode int, id, message string) *Error {
	return &Error{StatusCode: statusCode, ID: id, Message: message}
}

var ErrTooManyRequests = httpError(http.StatusTooManyRequests, "too_many_requests", "")

func (app *App) writeError(w http.ResponseWriter, err error) {
	if e, ok := err.(*Error); ok {
		writeJSON(w, e.StatusCode, e)
		return
	}
	app.logf("ERROR: %v", err)
	writeJSON(w, http.StatusInternalServerError, &Error{ID: "internal"})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	enc.Encode(v)
}
