// internal/app/features/orders/routes.go
package orders

import (
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the orders screen at /farmer/customer-orders.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(auth.RoleFarmer))
		pr.Get("/", h.ServeOrders)
		pr.Post("/{id}/accept", h.HandleAccept)
		pr.Post("/{id}/decline", h.HandleDecline)
		pr.Post("/{id}/deliver", h.HandleDeliver)
	})
	return r
}
