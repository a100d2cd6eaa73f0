package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/demo-portal/portal-api/internal/domain/auth"
)

// tokenCookieName is the cookie the edge guard reads. It carries the same
// token the Authorization header does; the client duplicates it so page
// navigation can be guarded without a script running first.
const tokenCookieName = "token"

const (
	loginPath    = "/login"
	noAccessPath = "/app/profile?noAccess=1"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recover returns a middleware that recovers from panics and responds with
// the uniform SERVER_ERROR body.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Status:  http.StatusInternalServerError,
						Code:    CodeServerError,
						Message: "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// EdgeGuard returns the route-level guard for the protected page prefix.
// It reads the token cookie, checks expiry, and applies the route policy.
// Failure never produces a JSON error: a missing, invalid, or expired
// token redirects to the login page (the three cases are indistinguishable
// at this layer), and an insufficient role redirects to the profile page
// with a marker the client turns into a toast. The decision is evaluated
// on every request; nothing is cached, since a token can expire
// mid-session.
func EdgeGuard(policy *auth.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokenCookieName)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			claims, err := auth.DecodeToken(cookie.Value)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			if claims.Expired(time.Now()) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			if !policy.IsAuthorized(claims.Role, r.URL.Path) {
				http.Redirect(w, r, noAccessPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles returns the endpoint-level guard. It reads the bearer token
// from the Authorization header, checks expiry, and enforces the supplied
// allow-list; with no roles given, any authenticated caller passes. On
// success the decoded claims are attached to the request context.
//
// This guard is independent of EdgeGuard: header-based API calls never
// transit the page prefix, and the two differ in failure action (JSON
// errors here, redirects there).
func RequireRoles(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, ErrorParams{
					Status:  http.StatusUnauthorized,
					Code:    CodeUnauthenticated,
					Message: "Missing token",
				})
				return
			}

			claims, err := auth.DecodeToken(token)
			if err != nil {
				WriteError(w, ErrorParams{
					Status:  http.StatusUnauthorized,
					Code:    CodeUnauthenticated,
					Message: "Invalid token",
				})
				return
			}

			if claims.Expired(time.Now()) {
				WriteError(w, ErrorParams{
					Status:  http.StatusUnauthorized,
					Code:    CodeTokenExpired,
					Message: "Session expired",
				})
				return
			}

			if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
				WriteError(w, ErrorParams{
					Status:  http.StatusForbidden,
					Code:    CodeForbidden,
					Message: "No access",
				})
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func roleAllowed(role auth.Role, allowed []auth.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
