// internal/app/features/dashboard/farmer.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	orderstore "github.com/dalemusser/coophub/internal/app/store/orders"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type farmOverviewData struct {
	viewdata.BaseVM

	Metrics      []seed.Metric
	EggsChart    template.HTML
	RevenueChart template.HTML
	FeedChart    template.HTML
	Levels       []seed.Level
	Alerts       []seed.Alert
	Door         *models.DoorState
}

// ServeFarmOverview handles GET /farmer/farm-overview.
func (h *Handler) ServeFarmOverview(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "farm overview without farm scope", "Your account is not linked to a farm.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	pending, err := orderstore.New(h.DB).Incoming(ctx, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list incoming orders failed", err, "A database error occurred.", "/")
		return
	}
	door, err := doorstore.New(h.DB).GetByFarm(ctx, farm)
	if err != nil && !errors.Is(err, doorstore.ErrNotFound) {
		h.ErrLog.LogServerError(w, r, "load door failed", err, "A database error occurred.", "/")
		return
	}

	fd := h.Seed.Farmer.Overview
	data := farmOverviewData{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, "Farm Overview", "/"),
		Metrics: farmMetrics(fd.Metrics, len(pending)),
		Levels:  fd.Levels,
		Alerts:  farmAlerts(fd.Alerts, door),
		Door:    door,
	}

	data.EggsChart = h.Charts.Widget(charts.KindLine,
		h.Seed.Chart(seed.ChartFarmWeeklyEggs).Spec("farm-weekly-eggs", "Weekly Egg Production"), h.Log)
	data.RevenueChart = h.Charts.Widget(charts.KindBar,
		h.Seed.Chart(seed.ChartFarmRevenue).Spec("farm-revenue", "Monthly Revenue"), h.Log)
	data.FeedChart = h.Charts.Widget(charts.KindBar,
		h.Seed.Chart(seed.ChartFarmFeedWeekly).Spec("farm-feed-weekly", "Feed Levels"), h.Log)

	h.Log.Debug("farm overview served", zap.String("farm", farm))
	templates.Render(w, r, "farmer_farm_overview", data)
}

// farmMetrics appends the live pending order count to the seeded cards.
func farmMetrics(seeded []seed.Metric, pending int) []seed.Metric {
	out := make([]seed.Metric, 0, len(seeded)+1)
	out = append(out, seeded...)
	return append(out, seed.Metric{Title: "Pending Orders", Value: strconv.Itoa(pending)})
}

// farmAlerts adds the door's live alerts to the seeded ones.
func farmAlerts(seeded []seed.Alert, door *models.DoorState) []seed.Alert {
	out := make([]seed.Alert, 0, len(seeded)+2)
	if door != nil {
		for _, a := range door.Alerts {
			msg := a
			if a == models.LowBatteryAlert {
				msg = fmt.Sprintf("Door battery low (%.0f%%)", door.Battery)
			}
			out = append(out, seed.Alert{Type: "warning", Source: "Coop Door", Message: msg})
		}
	}
	return append(out, seeded...)
}
