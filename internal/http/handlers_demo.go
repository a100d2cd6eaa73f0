package httpx

import "net/http"

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// The /demo endpoints exist for the portal's error-handling showcase
// pages, which need deterministic failure responses to exercise the
// client-side toast and retry paths.

func demoHTTP500(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Status:  http.StatusInternalServerError,
		Code:    CodeServerError,
		Message: "Intentional server error",
	})
}

func demoHTTP401(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "Demo unauthorized response",
	})
}

func demoValidation(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidationError,
		Message: "Invalid input",
		Details: map[string]string{"email": "Invalid email"},
	})
}
