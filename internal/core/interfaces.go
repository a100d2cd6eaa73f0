// Package core defines the repository interfaces the service layer depends
// on. Implementations live in internal/data; tests substitute mocks.
package core

import (
	"context"
	"errors"
	"io"

	"github.com/demo-portal/portal-api/internal/domain/upload"
)

// ErrNotFound is returned when a referenced object does not exist.
var ErrNotFound = errors.New("not found")

// LedgerRepository is the bounded, newest-first upload metadata ledger.
// The ledger holds at most its capacity worth of records; Prepend evicts
// the oldest entries past that cap in the same operation.
type LedgerRepository interface {
	// Prepend inserts rec as the newest record and truncates the ledger
	// to its capacity.
	Prepend(ctx context.Context, rec upload.Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]upload.Record, error)

	// Find looks up a record by upload id. The boolean reports presence;
	// an evicted or never-written record is not an error.
	Find(ctx context.Context, uploadID string) (upload.Record, bool, error)
}

// FileStore persists raw upload bodies keyed by upload id.
type FileStore interface {
	// Save streams body to the location keyed by uploadID and returns the
	// number of bytes written. An existing file under the same id is
	// overwritten.
	Save(ctx context.Context, uploadID string, body io.Reader) (int64, error)

	// Open returns a reader over the stored file and its byte length.
	// Returns ErrNotFound when no file exists under uploadID.
	Open(uploadID string) (io.ReadCloser, int64, error)
}
