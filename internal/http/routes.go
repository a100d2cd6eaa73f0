package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/demo-portal/portal-api/internal/domain/auth"
	"github.com/demo-portal/portal-api/internal/service"
)

// RouterServices holds everything the router needs.
type RouterServices struct {
	Auth    *service.AuthService
	Uploads *service.UploadService
	Policy  *auth.Policy // Optional: defaults to the standard route table
	Logger  *slog.Logger // Optional: logger for handler errors
}

// NewRouter builds the portal API router. API endpoints sit behind the
// endpoint guard with per-route allow-lists; everything under /app sits
// behind the edge guard.
func NewRouter(services RouterServices) http.Handler {
	policy := services.Policy
	if policy == nil {
		policy = auth.NewPolicy(auth.DefaultRouteTable())
	}

	authHandlers := &AuthHandlers{Svc: services.Auth}
	uploadHandlers := &UploadHandlers{Svc: services.Uploads, Logger: services.Logger}

	managerOrAdmin := RequireRoles(auth.RoleManager, auth.RoleAdmin)
	anyAuthenticated := RequireRoles()

	mux := http.NewServeMux()
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandlers.Login))

	mux.Handle("POST /uploads/presign", managerOrAdmin(http.HandlerFunc(uploadHandlers.Presign)))
	mux.Handle("PUT /upload/{uploadId}", managerOrAdmin(http.HandlerFunc(uploadHandlers.Store)))
	mux.Handle("GET /files/{uploadId}", anyAuthenticated(http.HandlerFunc(uploadHandlers.Serve)))
	mux.Handle("GET /uploads/recent", anyAuthenticated(http.HandlerFunc(uploadHandlers.Recent)))

	mux.Handle("GET /health", http.HandlerFunc(healthHandler))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /demo/http-500", http.HandlerFunc(demoHTTP500))
	mux.Handle("GET /demo/http-401", http.HandlerFunc(demoHTTP401))
	mux.Handle("POST /demo/validation", http.HandlerFunc(demoValidation))

	// The portal pages are rendered by the web frontend; the placeholder
	// gives the edge guard something to protect when the API runs
	// standalone (and keeps the guard testable over real requests).
	mux.Handle("/app/", EdgeGuard(policy)(http.HandlerFunc(appPlaceholder)))

	return mux
}

func appPlaceholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "portal %s\n", r.URL.Path)
}
