package data

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/demo-portal/portal-api/internal/core"
)

// DiskStore keeps upload bodies as flat files under a single directory,
// named by their upload id. Ids are server-minted UUIDs, so the name is
// never attacker-controlled; filepath.Base is still applied before joining.
type DiskStore struct {
	dir string
}

// NewDiskStore constructs a DiskStore rooted at dir. The directory is
// created on first Save, not here, so constructing the store is cheap.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save streams body into the file keyed by uploadID.
func (s *DiskStore) Save(_ context.Context, uploadID string, body io.Reader) (int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create uploads dir: %w", err)
	}

	dst, err := os.Create(s.path(uploadID))
	if err != nil {
		return 0, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(dst, body)
	if err != nil {
		// A partial file may remain on disk with no ledger record. That is
		// the documented behavior for interrupted uploads; nothing cleans
		// it up here.
		dst.Close()
		return written, fmt.Errorf("write upload body: %w", err)
	}

	if err := dst.Close(); err != nil {
		return written, fmt.Errorf("close upload file: %w", err)
	}
	return written, nil
}

// Open returns a reader over the stored file and its byte length.
func (s *DiskStore) Open(uploadID string) (io.ReadCloser, int64, error) {
	info, err := os.Stat(s.path(uploadID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, core.ErrNotFound
		}
		return nil, 0, fmt.Errorf("stat upload file: %w", err)
	}

	f, err := os.Open(s.path(uploadID))
	if err != nil {
		return nil, 0, fmt.Errorf("open upload file: %w", err)
	}
	return f, info.Size(), nil
}

func (s *DiskStore) path(uploadID string) string {
	return filepath.Join(s.dir, filepath.Base(uploadID))
}
