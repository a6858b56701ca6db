// internal/app/features/settings/routes.go
package settings

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts system settings (mounted at /admin/system-settings).
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))
		pr.Get("/", h.ServeSystemSettings)
		pr.Post("/", h.HandleSystemSettings)
	})
	return r
}

// FarmerRoutes mounts farmer settings (mounted at /farmer/settings).
func FarmerRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeFarmerSettings)
		pr.Post("/", h.HandleFarmerSettings)
	})
	return r
}
