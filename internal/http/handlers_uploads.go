package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/demo-portal/portal-api/internal/core"
	"github.com/demo-portal/portal-api/internal/service"
)

// UploadHandlers provides HTTP handlers for the upload pipeline.
type UploadHandlers struct {
	Svc    *service.UploadService
	Logger *slog.Logger
}

// Presign handles POST /uploads/presign. Validation failures, including a
// body that doesn't decode, are 422 with the uniform error shape.
func (h *UploadHandlers) Presign(w http.ResponseWriter, r *http.Request) {
	var in service.PresignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, ErrorParams{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeValidationError,
			Message: "Invalid request",
			Details: map[string]string{"file": "Missing filename or content type"},
		})
		return
	}

	result, err := h.Svc.Presign(r.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, ErrorParams{
				Status:  http.StatusUnprocessableEntity,
				Code:    CodeValidationError,
				Message: verr.Message,
				Details: verr.Details,
			})
			return
		}
		h.serverError(w, r, "presign failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Store handles PUT /upload/{uploadId}. The raw request body streams to
// storage; the recorded content type and size come from this request's
// headers, not from the presign step.
func (h *UploadHandlers) Store(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("uploadId")
	claims, _ := ClaimsFromContext(r.Context())

	size := r.ContentLength
	if size < 0 {
		size = 0
	}
	contentType := r.Header.Get("Content-Type")

	err := h.Svc.Store(r.Context(), uploadID, r.Body, service.StoreMetadata{
		ContentType: contentType,
		Size:        size,
		Claims:      claims,
	})
	if err != nil {
		h.serverError(w, r, "store failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Serve handles GET /files/{uploadId}, streaming the stored bytes with the
// recorded content type.
func (h *UploadHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("uploadId")

	content, err := h.Svc.OpenFile(r.Context(), uploadID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			WriteError(w, ErrorParams{
				Status:  http.StatusNotFound,
				Code:    CodeNotFound,
				Message: "File not found",
			})
			return
		}
		h.serverError(w, r, "serve failed", err)
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	if _, err := io.Copy(w, content.Body); err != nil {
		// Headers are already out; nothing to do but note the broken pipe.
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "stream file", "upload_id", uploadID, "error", err)
		}
	}
}

// Recent handles GET /uploads/recent?limit=N. The default applies only
// when the parameter is absent; a supplied limit is passed through as
// parsed, so ?limit=0 (or an unparsable value) yields an empty list.
func (h *UploadHandlers) Recent(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultRecentLimit
	if q := r.URL.Query(); q.Has("limit") {
		limit, _ = strconv.Atoi(q.Get("limit"))
	}

	records, err := h.Svc.Recent(r.Context(), limit)
	if err != nil {
		h.serverError(w, r, "list recent failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, records)
}

func (h *UploadHandlers) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if h.Logger != nil {
		h.Logger.ErrorContext(r.Context(), msg, "error", err)
	}
	WriteError(w, ErrorParams{
		Status:  http.StatusInternalServerError,
		Code:    CodeServerError,
		Message: "Internal server error",
	})
}
