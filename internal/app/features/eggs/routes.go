// internal/app/features/eggs/routes.go
package eggs

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the egg production screen at /farmer/egg-production.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeProduction)
	})
	return r
}
