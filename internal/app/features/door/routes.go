// internal/app/features/door/routes.go
package door

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the door screen at /farmer/door-automation.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeDoor)
		pr.Get("/status.json", h.ServeStatusJSON)
		pr.Post("/status", h.HandleSetStatus)
		pr.Post("/auto", h.HandleAutoMode)
	})
	return r
}
