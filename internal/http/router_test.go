package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/demo-portal/portal-api/internal/data"
	"github.com/demo-portal/portal-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonDecode(w *httptest.ResponseRecorder, dst any) error {
	return json.Unmarshal(w.Body.Bytes(), dst)
}

func decodeBody(resp *http.Response, dst any) error {
	return json.NewDecoder(resp.Body).Decode(dst)
}

// newTestRouter wires the real services over temp-dir storage, the same
// shape main assembles.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	uploads := service.NewUploadService(service.UploadServiceOptions{
		Ledger:       data.NewFileLedger(data.FileLedgerOptions{Path: filepath.Join(dir, "db.json")}),
		Files:        data.NewDiskStore(filepath.Join(dir, "uploads")),
		MaxFileSize:  5242880,
		AllowedTypes: []string{"image/png", "image/jpeg"},
	})

	return NewRouter(RouterServices{
		Auth:    service.NewAuthService(service.AuthServiceOptions{}),
		Uploads: uploads,
		Logger:  testLogger(),
	})
}
