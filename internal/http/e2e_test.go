package httpx

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-portal/portal-api/internal/domain/upload"
)

// After 101 successful stores the ledger caps at 100 records, newest first,
// and the evicted file is still downloadable as a generic binary.
func TestLedgerEvictionEndToEnd(t *testing.T) {
	server := httptest.NewServer(newTestRouter(t))
	defer server.Close()

	manager := issueToken(t, "manager@demo.com", time.Hour)
	client := server.Client()

	doReq := func(method, path, contentType string, body []byte) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+manager)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	var firstID string
	for i := range 101 {
		id := fmt.Sprintf("bulk-%03d", i)
		if i == 0 {
			firstID = id
		}
		resp := doReq(http.MethodPut, "/upload/"+id, "image/png", []byte{byte(i)})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doReq(http.MethodGet, "/uploads/recent?limit=200", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []upload.Record
	require.NoError(t, decodeBody(resp, &records))
	require.Len(t, records, 100)
	assert.Equal(t, "bulk-100", records[0].UploadID)
	assert.Equal(t, "bulk-001", records[99].UploadID)
	for _, rec := range records {
		assert.NotEqual(t, firstID, rec.UploadID)
	}

	// The first upload's record is gone but its bytes remain; the serve
	// path falls back to the generic content type.
	fileResp := doReq(http.MethodGet, "/files/"+firstID, "", nil)
	defer fileResp.Body.Close()
	require.Equal(t, http.StatusOK, fileResp.StatusCode)
	assert.Equal(t, upload.FallbackContentType, fileResp.Header.Get("Content-Type"))
}
