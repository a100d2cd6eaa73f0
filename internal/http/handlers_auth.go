package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/demo-portal/portal-api/internal/service"
)

// AuthHandlers provides the HTTP handler for authentication.
type AuthHandlers struct {
	Svc *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. The response carries the token plus the
// decoded role and expiry so the client can populate its session store
// without parsing the token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationError,
			Message: "Email and password required",
		})
		return
	}

	result, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationError,
			Message: "Email and password required",
		})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, ErrorParams{
			Status:  http.StatusUnauthorized,
			Code:    CodeInvalidCredentials,
			Message: "Invalid email or password",
		})
		return
	case err != nil:
		WriteError(w, ErrorParams{
			Status:  http.StatusInternalServerError,
			Code:    CodeServerError,
			Message: "Login failed",
		})
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
