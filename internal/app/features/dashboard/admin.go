// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"html/template"
	"net/http"
	"strconv"

	equipmentstore "github.com/dalemusser/coophub/internal/app/store/equipment"
	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// TimeRange is one option of the overview's time range selector.
type TimeRange struct {
	Key    string
	Label  string
	Active bool
}

var timeRanges = []TimeRange{
	{Key: "7d", Label: "Last 7 days"},
	{Key: "30d", Label: "Last 30 days"},
	{Key: "90d", Label: "Last 90 days"},
	{Key: "1y", Label: "Last year"},
}

const defaultRange = "30d"

// resolveRange returns the selector with key marked active. Unknown keys fall back to 30d.
func resolveRange(key string) ([]TimeRange, TimeRange) {
	var picked TimeRange
	found := false
	for _, tr := range timeRanges {
		if tr.Key == key {
			found = true
		}
	}
	if !found {
		key = defaultRange
	}
	out := make([]TimeRange, len(timeRanges))
	for i, tr := range timeRanges {
		tr.Active = tr.Key == key
		if tr.Active {
			picked = tr
		}
		out[i] = tr
	}
	return out, picked
}

type systemOverviewData struct {
	viewdata.BaseVM

	Ranges        []TimeRange
	Range         TimeRange
	Metrics       []seed.Metric
	RevenueChart  template.HTML
	StatusChart   template.HTML
	Alerts        []seed.Alert
	CriticalCount int
	Activity      []seed.Activity
}

// ServeSystemOverview handles GET /admin/system-overview.
func (h *Handler) ServeSystemOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	farmerCounts, err := farmerstore.New(h.DB).CountByStatus(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count farmers failed", err, "A database error occurred.", "/")
		return
	}
	equipCounts, err := equipmentstore.New(h.DB).CountByStatus(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count equipment failed", err, "A database error occurred.", "/")
		return
	}

	ranges, picked := resolveRange(query.Get(r, "range"))
	admin := h.Seed.Admin.Overview

	data := systemOverviewData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "System Overview", "/"),
		Ranges:   ranges,
		Range:    picked,
		Metrics:  overviewMetrics(admin.Metrics, farmerCounts, equipCounts),
		Alerts:   admin.Alerts,
		Activity: admin.Activity,
	}
	data.CriticalCount = countAlerts(admin.Alerts, "error")

	revenue := h.Seed.Chart(seed.ChartOverviewRevenue).Spec("overview-revenue", "Revenue & Farmers")
	revenue.Subtitle = picked.Label
	data.RevenueChart = h.Charts.Widget(charts.KindArea, revenue, h.Log)
	data.StatusChart = h.Charts.Widget(charts.KindPie, equipmentStatusSpec(equipCounts), h.Log)

	h.Log.Debug("system overview served", zap.String("range", picked.Key))
	templates.Render(w, r, "admin_system_overview", data)
}

// overviewMetrics replaces the farmer and system counts of the seeded cards
// with live store counts. Revenue and health stay as seeded.
func overviewMetrics(seeded []seed.Metric, farmers, equipment map[string]int64) []seed.Metric {
	var totalFarmers int64
	for _, n := range farmers {
		totalFarmers += n
	}
	out := make([]seed.Metric, len(seeded))
	copy(out, seeded)
	for i := range out {
		switch out[i].Title {
		case "Total Farmers":
			out[i].Value = strconv.FormatInt(totalFarmers, 10)
		case "Active Systems":
			out[i].Value = strconv.FormatInt(equipment[models.EquipmentOnline], 10)
		}
	}
	return out
}

func equipmentStatusSpec(counts map[string]int64) charts.Spec {
	return charts.Spec{
		ID:     "overview-status",
		Title:  "System Status",
		Labels: []string{"Online", "Maintenance", "Offline"},
		Series: []charts.Series{{
			Name: "Systems",
			Values: []float64{
				float64(counts[models.EquipmentOnline]),
				float64(counts[models.EquipmentMaintenance]),
				float64(counts[models.EquipmentOffline]),
			},
		}},
	}
}

func countAlerts(alerts []seed.Alert, typ string) int {
	n := 0
	for _, a := range alerts {
		if a.Type == typ {
			n++
		}
	}
	return n
}
