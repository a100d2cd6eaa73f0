// Package data contains the storage implementations backing the upload
// pipeline: the JSON-file ledger and the on-disk file store.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/demo-portal/portal-api/internal/domain/upload"
)

// DefaultLedgerCap is the maximum number of records the ledger retains.
const DefaultLedgerCap = 100

// FileLedgerOptions groups parameters for NewFileLedger.
type FileLedgerOptions struct {
	Path string // Required: path of the JSON ledger file
	Cap  int    // Optional: retention cap, DefaultLedgerCap when <= 0
}

// FileLedger persists the upload ledger as a single JSON file holding a
// newest-first array of records. The whole file is read and rewritten on
// every insert; a mutex serializes writers so concurrent stores cannot
// lose records. The capacity cap is applied on every Prepend.
type FileLedger struct {
	path string
	cap  int
	mu   sync.Mutex
}

// NewFileLedger constructs a file-backed ledger.
func NewFileLedger(opts FileLedgerOptions) *FileLedger {
	capacity := opts.Cap
	if capacity <= 0 {
		capacity = DefaultLedgerCap
	}
	return &FileLedger{path: opts.Path, cap: capacity}
}

// Prepend inserts rec as the newest record and truncates to capacity.
func (l *FileLedger) Prepend(_ context.Context, rec upload.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load()
	records = append([]upload.Record{rec}, records...)
	if len(records) > l.cap {
		records = records[:l.cap]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	return nil
}

// Recent returns up to limit records, newest first.
func (l *FileLedger) Recent(_ context.Context, limit int) ([]upload.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load()
	if limit >= 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

// Find looks up a record by upload id.
func (l *FileLedger) Find(_ context.Context, uploadID string) (upload.Record, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.load() {
		if rec.UploadID == uploadID {
			return rec, true, nil
		}
	}
	return upload.Record{}, false, nil
}

// load reads the ledger file. A missing or unreadable file yields an empty
// ledger, mirroring how the portal has always treated a fresh deployment.
func (l *FileLedger) load() []upload.Record {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return []upload.Record{}
	}

	var records []upload.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return []upload.Record{}
	}
	if records == nil {
		records = []upload.Record{}
	}
	return records
}
