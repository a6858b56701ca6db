// internal/app/features/products/routes.go
package products

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the products screen at /farmer/my-products.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeProducts)
		pr.Post("/{id}/price", h.HandlePrice)
		pr.Post("/{id}/stock", h.HandleStock)
		pr.Post("/{id}/toggle", h.HandleToggle)
	})
	return r
}
