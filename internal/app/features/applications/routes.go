// internal/app/features/applications/routes.go
package applications

import "github.com/go-chi/chi/v5"

// MountRoutes registers the application endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/apply", h.ServeApply)
	r.Post("/applications", h.ServeList)
}
