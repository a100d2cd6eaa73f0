// Package service implements the business logic behind the portal API:
// credential checks and token issuance, and the upload pipeline.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/demo-portal/portal-api/internal/domain/auth"
)

// demoPassword is the only accepted password. The password carries no
// authorization information; the role comes from the email alone.
const demoPassword = "123"

// Login failure modes, mapped to HTTP codes by the handler layer.
var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Logger *slog.Logger     // Optional: structured logger
	Now    func() time.Time // Optional: clock override for tests
}

// AuthService issues mock identity tokens.
type AuthService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{logger: opts.Logger, now: now}
}

// LoginResult carries the issued token alongside the decoded role and
// expiry so clients don't need to parse the token themselves.
type LoginResult struct {
	Token string    `json:"token"`
	Role  auth.Role `json:"role"`
	Exp   int64     `json:"exp"`
}

// Login validates the credentials and issues a token expiring in 24 hours.
// Any password other than the demo constant fails regardless of email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if password != demoPassword {
		return nil, ErrInvalidCredentials
	}

	role := auth.RoleForEmail(email)
	exp := s.now().Add(auth.TokenTTL).Unix()
	token := auth.EncodeToken(auth.Claims{Email: email, Role: role, Exp: exp})

	if s.logger != nil {
		s.logger.InfoContext(ctx, "login", "email", email, "role", role)
	}

	return &LoginResult{Token: token, Role: role, Exp: exp}, nil
}
