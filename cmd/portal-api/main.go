package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/demo-portal/portal-api/internal/bootstrap"
	"github.com/demo-portal/portal-api/internal/data"
	"github.com/demo-portal/portal-api/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting portal-api",
		"port", cfg.HTTP.Port,
		"uploads_dir", cfg.Upload.UploadsDir,
		"max_file_size", cfg.Upload.MaxFileSize,
		"allowed_types", cfg.Upload.AllowedTypes)

	ledger := data.NewFileLedger(data.FileLedgerOptions{Path: cfg.Upload.MetadataFile})
	files := data.NewDiskStore(cfg.Upload.UploadsDir)

	authSvc := service.NewAuthService(service.AuthServiceOptions{Logger: logger})
	uploadSvc := service.NewUploadService(service.UploadServiceOptions{
		Ledger:       ledger,
		Files:        files,
		MaxFileSize:  cfg.Upload.MaxFileSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
		Logger:       logger,
	})

	server := bootstrap.NewHTTPServer(bootstrap.HTTPServerConfig{
		Config:  &cfg,
		Auth:    authSvc,
		Uploads: uploadSvc,
		Logger:  logger,
	})

	return bootstrap.RunWithShutdown(ctx, server, logger)
}
