// Package response writes the JSON envelopes of the REST API.
package response

import (
	"encoding/json"
	"net/http"
)

// HeaderRequestID carries the per-request correlation ID on every response.
const HeaderRequestID = "X-Request-Id"

// APIError is the error body returned by every failing endpoint.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes a standard error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, errorEnvelope{Error: APIError{Code: code, Message: message}})
}
