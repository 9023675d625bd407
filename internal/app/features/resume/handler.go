// internal/app/features/resume/handler.go
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler exposes resume upload over HTTP.
type Handler struct {
	svc      *Service
	maxBytes int64
	log      *zap.Logger
}

func NewHandler(svc *Service, maxBytes int64, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes, log: logger}
}

// ServeUpdate handles POST /update-resume. It expects a multipart form with
// the file in the "resume" field and the subject in "external_id".
//
// On success: 200 and { "success":true, "message":"Resume Updated", "user":{…} }
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	externalID := r.FormValue("external_id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.svc.Update(ctx, externalID, Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, ErrMissingExternalID):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	default:
		h.log.Error("resume: update failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Resume Updated",
		"user":    user,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
