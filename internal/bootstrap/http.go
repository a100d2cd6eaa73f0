package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/demo-portal/portal-api/config"
	httpx "github.com/demo-portal/portal-api/internal/http"
	"github.com/demo-portal/portal-api/internal/observability/metrics"
	"github.com/demo-portal/portal-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig groups what NewHTTPServer needs.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Auth    *service.AuthService
	Uploads *service.UploadService
	Logger  *slog.Logger
}

// NewHTTPServer builds the portal API server with its middleware chain.
// Order: Recover -> Logging -> Metrics -> Router.
func NewHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:    cfg.Auth,
		Uploads: cfg.Uploads,
		Logger:  logger,
	})

	h := metrics.Middleware()(router)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	return &http.Server{
		Addr:              cfg.Config.HTTP.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// RunWithShutdown serves until SIGINT/SIGTERM, then drains the server
// within the shutdown timeout. A listener failure at startup is returned
// as an error and aborts the process.
func RunWithShutdown(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down HTTP server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
