// internal/app/features/feedwater/routes.go
package feedwater

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the feed and water screen at /farmer/feed-water.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeFeedWater)
		pr.Post("/schedules", h.HandleAddSchedule)
		pr.Post("/schedules/{id}/toggle", h.HandleToggleSchedule)
	})
	return r
}
