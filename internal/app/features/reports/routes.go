// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts reports (mounted at /admin/reports).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(sm.RequireSignedIn)
		rr.Use(sm.RequireRole(auth.RoleAdmin))
		rr.Get("/", h.ServeReports)
		rr.Get("/export.csv", h.ServeCSV)
	})

	return r
}
