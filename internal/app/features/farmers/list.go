// internal/app/features/farmers/list.go
package farmers

import (
	"context"
	"net/http"

	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList renders the tabbed farmer management page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tab := navigation.TabOrDefault(r, tabKeys...)
	data, err := h.listData(r, tab)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farmers failed", err, "A database error occurred.", "/")
		return
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_management", data)
}

func (h *Handler) listData(r *http.Request, tab string) (listData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := farmerstore.New(h.DB)
	farmers, err := store.List(ctx)
	if err != nil {
		return listData{}, err
	}
	counts, err := store.CountByStatus(ctx)
	if err != nil {
		return listData{}, err
	}

	data := listData{
		BaseVM:          viewdata.NewBaseVM(r, h.DB, "Farmer Management", "/admin/system-overview"),
		Tabs:            tabStrip(tab),
		Tab:             tab,
		Farmers:         farmers,
		EquipmentModels: models.EquipmentModels,
		StatusCounts:    counts,
	}
	if tab == tabMonitoring {
		production := h.Seed.Chart(seed.ChartFarmerProduction).Only("Eggs", "Feed")
		data.ProductionChart = h.Charts.Widget(charts.KindLine,
			production.Spec("farmer-production", "Production Trends"), h.Log)
		data.StatusChart = h.Charts.Widget(charts.KindPie, statusSpec(counts), h.Log)
	}
	return data, nil
}

func statusSpec(counts map[string]int64) charts.Spec {
	return charts.Spec{
		ID:     "farmer-status",
		Title:  "Farmer Status",
		Labels: []string{models.FarmerActive, models.FarmerInactive, models.FarmerPending},
		Series: []charts.Series{{
			Name: "Farmers",
			Values: []float64{
				float64(counts[models.FarmerActive]),
				float64(counts[models.FarmerInactive]),
				float64(counts[models.FarmerPending]),
			},
		}},
	}
}
