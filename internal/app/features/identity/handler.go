// internal/app/features/identity/handler.go
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler exposes the identity reconciler over HTTP.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

// syncRequest is the JSON body for POST /sync.
type syncRequest struct {
	ExternalID string `json:"externalId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	AvatarURL  string `json:"avatarUrl"`
}

// ServeSync handles POST /sync. It returns the local user for the supplied
// provider subject, creating it on first contact. The response is identical
// whether the user was created or already existed.
//
// On success: 200 and { "success":true, "user":{…} }
// On bad input: 400; email owned by another subject: 409.
func (h *Handler) ServeSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, created, err := h.svc.Reconcile(ctx, SyncInput{
		ExternalID: req.ExternalID,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AvatarURL:  req.AvatarURL,
	})
	switch {
	case err == nil:
		// fall through
	case errors.Is(err, ErrInvalidExternalID), errors.Is(err, ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
		return
	default:
		h.log.Error("identity: reconcile failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"created": created,
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
