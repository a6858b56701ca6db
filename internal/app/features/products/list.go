// internal/app/features/products/list.go
package products

import (
	"context"
	"net/http"

	productstore "github.com/dalemusser/coophub/internal/app/store/products"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type listData struct {
	viewdata.BaseVM

	Products       []models.Product
	AvailableCount int
	InventoryValue float64
}

func summarize(products []models.Product) (available int, value float64) {
	for _, p := range products {
		if p.Available {
			available++
		}
	}
	return available, models.InventoryValue(products)
}

// ServeProducts renders the product cards with the inventory summary.
func (h *Handler) ServeProducts(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "products without farm scope", "Your account is not linked to a farm.")
		return
	}
	data, err := h.listData(r, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list products failed", err, "A database error occurred.", "/farmer/farm-overview")
		return
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_my_products", data)
}

func (h *Handler) listData(r *http.Request, farm string) (listData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	products, err := productstore.New(h.DB).ListByFarm(ctx, farm)
	if err != nil {
		return listData{}, err
	}
	available, value := summarize(products)
	return listData{
		BaseVM:         viewdata.NewBaseVM(r, h.DB, "My Products", "/farmer/farm-overview"),
		Products:       products,
		AvailableCount: available,
		InventoryValue: value,
	}, nil
}
