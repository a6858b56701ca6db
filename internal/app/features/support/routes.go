// internal/app/features/support/routes.go
package support

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the support desk (mounted at /admin/customer-support).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleAdmin))
		pr.Get("/", h.ServeDesk)
		pr.Post("/{id}/reply", h.HandleReply)
		pr.Post("/{id}/status", h.HandleStatus)
	})
	return r
}
