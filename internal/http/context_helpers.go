package httpx

import (
	"context"

	"github.com/demo-portal/portal-api/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across
// packages. Centralized here so all handlers and guards use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context carrying the decoded claims.
func SetClaimsInContext(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by the endpoint guard and
// a boolean indicating presence.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}
