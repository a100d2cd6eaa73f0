package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/demo-portal/portal-api/internal/core"
	"github.com/demo-portal/portal-api/internal/domain/auth"
	"github.com/demo-portal/portal-api/internal/domain/upload"
	"github.com/demo-portal/portal-api/internal/observability/metrics"
)

// DefaultRecentLimit is how many records the recent listing returns when
// the request carries no limit parameter.
const DefaultRecentLimit = 10

// ValidationError reports a request that fails upload policy. Details map
// field names to messages for the error response body.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// UploadServiceOptions groups dependencies for UploadService.
type UploadServiceOptions struct {
	Ledger       core.LedgerRepository // Required: upload metadata ledger
	Files        core.FileStore        // Required: upload body storage
	MaxFileSize  int64                 // Required: presign size cap in bytes
	AllowedTypes []string              // Required: presign content-type allow-list
	Logger       *slog.Logger          // Optional: structured logger
	Now          func() time.Time      // Optional: clock override for tests
}

// UploadService implements presign, store, serve, and recent-list.
type UploadService struct {
	ledger       core.LedgerRepository
	files        core.FileStore
	maxFileSize  int64
	allowedTypes []string
	logger       *slog.Logger
	now          func() time.Time
}

// NewUploadService constructs an UploadService.
func NewUploadService(opts UploadServiceOptions) *UploadService {
	if opts.Ledger == nil || opts.Files == nil {
		panic("UploadService requires a ledger and a file store")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &UploadService{
		ledger:       opts.Ledger,
		files:        opts.Files,
		maxFileSize:  opts.MaxFileSize,
		allowedTypes: opts.AllowedTypes,
		logger:       opts.Logger,
		now:          now,
	}
}

// PresignInput is the validated-against request to reserve an upload slot.
// Size is a pointer so a missing field is distinguishable from zero.
type PresignInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        *int64 `json:"size"`
}

// PresignResult references the reserved upload target. No file exists yet;
// the id only becomes backed by bytes once the PUT completes.
type PresignResult struct {
	UploadID  string `json:"uploadId"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// Presign validates the declared file attributes against the configured
// policy and mints a fresh upload id. The store step deliberately does not
// re-check these values; presign is the only enforcement point.
func (s *UploadService) Presign(ctx context.Context, in PresignInput) (*PresignResult, error) {
	if in.Filename == "" || in.ContentType == "" || in.Size == nil {
		return nil, &ValidationError{
			Message: "Invalid request",
			Details: map[string]string{"file": "Missing filename or content type"},
		}
	}
	if *in.Size > s.maxFileSize || !slices.Contains(s.allowedTypes, in.ContentType) {
		return nil, &ValidationError{
			Message: "Invalid file",
			Details: map[string]string{"file": "Type or size not allowed"},
		}
	}

	uploadID := uuid.NewString()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "presigned upload",
			"upload_id", uploadID, "filename", in.Filename, "size", *in.Size)
	}

	return &PresignResult{
		UploadID:  uploadID,
		UploadURL: "/upload/" + uploadID,
		PublicURL: "/files/" + uploadID,
	}, nil
}

// StoreMetadata carries the attributes recorded alongside a stored body.
// ContentType and Size come from the PUT request's headers, not from the
// presign step; the two are not cryptographically bound.
type StoreMetadata struct {
	ContentType string
	Size        int64
	Claims      auth.Claims
}

// Store streams body to storage under uploadID, then prepends a ledger
// record. The record is written only after the stream completes, so an
// interrupted upload leaves a file with no record.
func (s *UploadService) Store(ctx context.Context, uploadID string, body io.Reader, meta StoreMetadata) error {
	written, err := s.files.Save(ctx, uploadID, body)
	if err != nil {
		return fmt.Errorf("store upload %s: %w", uploadID, err)
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = upload.FallbackContentType
	}

	rec := upload.Record{
		UploadID:      uploadID,
		Filename:      uploadID,
		ContentType:   contentType,
		Size:          meta.Size,
		UploadedAt:    s.now().UTC(),
		PublicURL:     "/files/" + uploadID,
		Role:          meta.Claims.Role,
		UploaderEmail: meta.Claims.Email,
	}
	if err := s.ledger.Prepend(ctx, rec); err != nil {
		return fmt.Errorf("record upload %s: %w", uploadID, err)
	}

	metrics.UploadsTotal.Inc()
	metrics.UploadBytes.Add(float64(written))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "upload stored",
			"upload_id", uploadID, "bytes", written, "uploader", meta.Claims.Email)
	}
	return nil
}

// FileContent is a stored file opened for serving.
type FileContent struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// OpenFile opens the stored file for uploadID. The content type comes from
// the ledger record when one exists; a file whose record was evicted is
// served as a generic binary. Returns core.ErrNotFound when no file exists.
func (s *UploadService) OpenFile(ctx context.Context, uploadID string) (*FileContent, error) {
	body, size, err := s.files.Open(uploadID)
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", uploadID, err)
	}

	contentType := upload.FallbackContentType
	if rec, ok, err := s.ledger.Find(ctx, uploadID); err == nil && ok {
		contentType = rec.ContentType
	}

	return &FileContent{Body: body, Size: size, ContentType: contentType}, nil
}

// Recent returns up to limit records, most recent first. The limit is
// taken as given; zero or negative means none. Defaulting a missing limit
// is the caller's concern.
func (s *UploadService) Recent(ctx context.Context, limit int) ([]upload.Record, error) {
	if limit < 0 {
		limit = 0
	}
	records, err := s.ledger.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent uploads: %w", err)
	}
	return records, nil
}
