// internal/app/features/farmprofile/routes.go
package farmprofile

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the farm profile at /farmer/farm-profile.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeProfile)
		pr.Post("/updates", h.HandleAddUpdate)
		pr.Post("/stories", h.HandleAddStory)
	})
	return r
}
