// internal/app/features/identity/routes.go
package identity

import "github.com/go-chi/chi/v5"

// MountRoutes registers the identity endpoints on the given router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/sync", h.ServeSync)
}
