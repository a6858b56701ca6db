// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes serves the system overview (mounted at /admin/system-overview).
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))
		pr.Get("/", h.ServeSystemOverview)
	})
	return r
}

// FarmerRoutes serves the farm overview (mounted at /farmer/farm-overview).
func FarmerRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeFarmOverview)
	})
	return r
}
