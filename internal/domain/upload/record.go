// Package upload contains domain models for the upload pipeline.
package upload

import (
	"time"

	"github.com/demo-portal/portal-api/internal/domain/auth"
)

// Record is the persisted metadata for one uploaded object. Records are
// created once, never updated, and evicted only when the ledger hits its
// capacity. UploadID doubles as the on-disk storage key.
type Record struct {
	UploadID      string    `json:"uploadId"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	UploadedAt    time.Time `json:"uploadedAt"`
	PublicURL     string    `json:"publicUrl"`
	Role          auth.Role `json:"role"`
	UploaderEmail string    `json:"uploaderEmail"`
}

// FallbackContentType is served when a file exists on disk but its ledger
// record has been evicted.
const FallbackContentType = "application/octet-stream"
