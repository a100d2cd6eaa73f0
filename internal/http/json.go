// Package httpx contains the HTTP surface of the portal API: router,
// guards, handlers, and response helpers.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Error codes shared across the API surface.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeForbidden          = "FORBIDDEN"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeServerError        = "SERVER_ERROR"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteError writes the uniform error body {code, message, details?}.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Status, errorBody{Code: p.Code, Message: p.Message, Details: p.Details})
}
