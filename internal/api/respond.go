package api

import (
	"encoding/json"
	"net/http"

	"pointage/internal/errors"
	"pointage/internal/logging"
)

// Envelope is the uniform response shape all endpoints use
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondOK(w http.ResponseWriter, data interface{}, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// respondError maps an error to the envelope. Precondition failures carry
// their stable code verbatim; anything unexpected is logged and served as a
// generic 500 so internals never leak.
func respondError(log *logging.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		log.Error("%s %s failed: %v", r.Method, r.URL.Path, err)
		code = errors.CodeInternalError
		message = "internal server error"
	}

	writeJSON(w, status, Envelope{Success: false, Message: message, Code: code})
}
