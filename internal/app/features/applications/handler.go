// internal/app/features/applications/handler.go
package applications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/app/features/identity"
	"github.com/hireloop/hireloop/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler exposes application submission and listing over HTTP.
type Handler struct {
	svc   *Service
	query *QueryService
	log   *zap.Logger
}

func NewHandler(svc *Service, query *QueryService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, query: query, log: logger}
}

// applyRequest is the JSON body for POST /apply.
type applyRequest struct {
	JobID      string `json:"jobId"`
	ExternalID string `json:"externalId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	AvatarURL  string `json:"avatarUrl"`
}

// ServeApply handles POST /apply.
//
// On success: 200 and { "success":true, "message":"Applied Successfully", "application":{…} }
// Repeat application: 409 "Already Applied". Missing job: 404 "Job Not Found".
func (h *Handler) ServeApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.svc.Apply(ctx, ApplyInput{
		JobID: req.JobID,
		User: identity.SyncInput{
			ExternalID: req.ExternalID,
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			AvatarURL:  req.AvatarURL,
		},
	})
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, ErrInvalidJobID),
		errors.Is(err, identity.ErrInvalidExternalID),
		errors.Is(err, identity.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, identity.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, ErrJobNotFound):
		writeError(w, http.StatusNotFound, "Job Not Found")
		return
	case errors.Is(err, ErrAlreadyApplied):
		writeError(w, http.StatusConflict, "Already Applied")
		return
	default:
		h.log.Error("applications: apply failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Applied Successfully",
		"application": app,
	})
}

// listRequest is the JSON body for POST /applications.
type listRequest struct {
	ExternalID string `json:"externalId"`
}

// ServeList handles POST /applications. It returns the user's application
// history with job and company details joined, newest first.
//
// An unknown external id is 404; a known user with no applications is 200
// with an empty list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.query.ListForExternalID(ctx, req.ExternalID)
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	default:
		h.log.Error("applications: list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"applications": rows,
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
