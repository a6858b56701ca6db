// internal/app/features/reports/report.go
package reports

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeReports handles GET /admin/reports?type=...&range=...
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	types, typ := pick(reportTypes, query.Get(r, "type"), reportOverview)
	ranges, rng := pick(dateRanges, query.Get(r, "range"), "30days")

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Reports", "/admin/system-overview"),
		Types:     types,
		Type:      typ,
		Ranges:    ranges,
		Range:     rng,
		ExportURL: exportURL(typ.Key, rng.Key),
	}

	rep := h.Seed.Admin.Reports
	switch typ.Key {
	case reportOverview:
		data.Overview = rep.Overview
		data.Chart = h.Charts.Widget(charts.KindLine,
			subtitled(h.Seed.Chart(seed.ChartOverviewRevenue).Only("Revenue").Spec("report-overview-revenue", "Revenue Trend"), rng), h.Log)
	case reportFarmer:
		data.Farmers = rep.Farmers
		data.Chart = h.Charts.Widget(charts.KindBar, subtitled(farmerSpec(rep.Farmers), rng), h.Log)
	case reportEquipment:
		data.Equipment = rep.Equipment
		data.Chart = h.Charts.Widget(charts.KindBar, subtitled(usageSpec(rep.Equipment), rng), h.Log)
		data.SecondChart = h.Charts.Widget(charts.KindPie, subtitled(failureSpec(rep.Equipment), rng), h.Log)
	case reportRevenue:
		ds := h.Seed.Chart(seed.ChartReportRevenue)
		data.Revenue = revenueRows(ds)
		data.Totals = revenueTotals(data.Revenue)
		data.Chart = h.Charts.Widget(charts.KindLine, subtitled(ds.Spec("report-revenue", "Revenue Breakdown"), rng), h.Log)
	}

	h.Log.Debug("report served", zap.String("type", typ.Key), zap.String("range", rng.Key))
	templates.Render(w, r, "admin_reports", data)
}

func subtitled(s charts.Spec, rng Option) charts.Spec {
	s.Subtitle = rng.Label
	return s
}

func exportURL(typ, rng string) string {
	return "/admin/reports/export.csv?" + url.Values{"type": {typ}, "range": {rng}}.Encode()
}

func farmerSpec(rows []seed.FarmerPerformance) charts.Spec {
	s := charts.Spec{ID: "report-farmers", Title: "Eggs by Farm"}
	eggs := charts.Series{Name: "Eggs"}
	for _, f := range rows {
		s.Labels = append(s.Labels, f.Farmer)
		eggs.Values = append(eggs.Values, float64(f.Eggs))
	}
	s.Series = []charts.Series{eggs}
	return s
}

func usageSpec(rows []seed.EquipmentUsage) charts.Spec {
	s := charts.Spec{ID: "report-equipment-usage", Title: "Equipment Usage (%)"}
	usage := charts.Series{Name: "Usage"}
	for _, e := range rows {
		s.Labels = append(s.Labels, e.Equipment)
		usage.Values = append(usage.Values, e.Usage)
	}
	s.Series = []charts.Series{usage}
	return s
}

func failureSpec(rows []seed.EquipmentUsage) charts.Spec {
	s := charts.Spec{ID: "report-equipment-maintenance", Title: "Maintenance Events"}
	events := charts.Series{Name: "Maintenance"}
	for _, e := range rows {
		s.Labels = append(s.Labels, e.Equipment)
		events.Values = append(events.Values, float64(e.Maintenance))
	}
	s.Series = []charts.Series{events}
	return s
}

// revenueRows pivots the revenue dataset into one row per month.
func revenueRows(ds seed.Dataset) []RevenueRow {
	rows := make([]RevenueRow, len(ds.Labels))
	for i, m := range ds.Labels {
		rows[i].Month = m
	}
	for _, s := range ds.Series {
		for i, v := range s.Values {
			if i >= len(rows) {
				break
			}
			switch s.Name {
			case "Subscription":
				rows[i].Subscription = v
			case "Equipment":
				rows[i].Equipment = v
			case "Support":
				rows[i].Support = v
			}
		}
	}
	return rows
}

func revenueTotals(rows []RevenueRow) RevenueRow {
	t := RevenueRow{Month: "Total"}
	for _, r := range rows {
		t.Subscription += r.Subscription
		t.Equipment += r.Equipment
		t.Support += r.Support
	}
	return t
}
