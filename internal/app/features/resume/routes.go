// internal/app/features/resume/routes.go
package resume

import "github.com/go-chi/chi/v5"

// MountRoutes registers the resume endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/update-resume", h.ServeUpdate)
}
