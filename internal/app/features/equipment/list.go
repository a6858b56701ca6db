// internal/app/features/equipment/list.go
package equipment

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	equipmentstore "github.com/dalemusser/coophub/internal/app/store/equipment"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// FilterOption is one entry of the device type filter.
type FilterOption struct {
	Key    string
	Label  string
	Active bool
}

var filterKeys = []FilterOption{
	{Key: "all", Label: "All Equipment"},
	{Key: "door", Label: "Door Systems"},
	{Key: "feed", Label: "Feed Systems"},
	{Key: "water", Label: "Water Systems"},
}

// resolveFilter returns the filter strip with key marked active. Unknown keys mean all.
func resolveFilter(key string) ([]FilterOption, string) {
	key = normalize.Filter(key)
	valid := false
	for _, f := range filterKeys {
		if f.Key == key {
			valid = true
		}
	}
	if !valid {
		key = "all"
	}
	out := make([]FilterOption, len(filterKeys))
	for i, f := range filterKeys {
		f.Active = f.Key == key
		out[i] = f
	}
	return out, key
}

type listData struct {
	viewdata.BaseVM

	Filters  []FilterOption
	Filter   string
	Devices  []models.Equipment
	Statuses []string
	Counts   map[string]int64

	PerformanceChart template.HTML
	Alerts           []seed.Alert
	Maintenance      []seed.Maintenance
}

// ServeList renders equipment cards for the selected device type.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filters, filter := resolveFilter(query.Get(r, "filter"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := equipmentstore.New(h.DB)
	devices, err := store.List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list equipment failed", err, "A database error occurred.", "/")
		return
	}
	counts, err := store.CountByStatus(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count equipment failed", err, "A database error occurred.", "/")
		return
	}

	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "Equipment Monitoring", "/admin/system-overview"),
		Filters:     filters,
		Filter:      filter,
		Devices:     devices,
		Statuses:    []string{models.EquipmentOnline, models.EquipmentMaintenance, models.EquipmentOffline},
		Counts:      counts,
		Alerts:      h.Seed.Admin.Equipment.Alerts,
		Maintenance: h.Seed.Admin.Equipment.Maintenance,
	}
	data.PerformanceChart = h.Charts.Widget(charts.KindLine,
		h.Seed.Chart(seed.ChartEquipmentPerformance).Spec("equipment-performance", "System Performance (24h)"), h.Log)
	data.WithSuccess(r)

	templates.Render(w, r, "admin_equipment_monitoring", data)
}

func listURL(filter, success string) string {
	v := url.Values{}
	if filter != "" && filter != "all" {
		v.Set("filter", filter)
	}
	if success != "" {
		v.Set("success", success)
	}
	if len(v) == 0 {
		return basePath
	}
	return basePath + "?" + v.Encode()
}
