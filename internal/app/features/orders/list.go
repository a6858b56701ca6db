// internal/app/features/orders/list.go
package orders

import (
	"context"
	"fmt"
	"net/http"

	orderstore "github.com/dalemusser/coophub/internal/app/store/orders"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

const (
	tabIncoming = "incoming"
	tabHistory  = "history"
)

type listData struct {
	viewdata.BaseVM

	Tabs   []viewdata.Tab
	Tab    string
	Orders []models.Order
	// AcceptID is the order whose delivery form is reopened after a failed accept.
	AcceptID string
}

// ServeOrders renders the incoming or history tab.
func (h *Handler) ServeOrders(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "orders without farm scope", "Your account is not linked to a farm.")
		return
	}
	tab := navigation.TabOrDefault(r, tabIncoming, tabHistory)
	data, err := h.listData(r, farm, tab)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list orders failed", err, "A database error occurred.", "/farmer/farm-overview")
		return
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_customer_orders", data)
}

func (h *Handler) listData(r *http.Request, farm, tab string) (listData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := orderstore.New(h.DB)
	incoming, err := store.Incoming(ctx, farm)
	if err != nil {
		return listData{}, err
	}
	history, err := store.History(ctx, farm)
	if err != nil {
		return listData{}, err
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Customer Orders", "/farmer/farm-overview"),
		Tab:    tab,
		Tabs: viewdata.Tabs(tab,
			tabIncoming, fmt.Sprintf("Incoming (%d)", len(incoming)),
			tabHistory, fmt.Sprintf("History (%d)", len(history)),
		),
		Orders: incoming,
	}
	if tab == tabHistory {
		data.Orders = history
	}
	return data, nil
}
