// internal/app/features/equipment/routes.go
package equipment

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts equipment monitoring (mounted at /admin/equipment-monitoring).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))
		pr.Get("/", h.ServeList)
		pr.Post("/{id}/status", h.HandleSetStatus)
	})
	return r
}
