// internal/app/features/eggs/production.go
package eggs

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

const (
	periodWeek  = "week"
	periodMonth = "month"
)

type pageData struct {
	viewdata.BaseVM

	Period      string
	PeriodLabel string
	Periods     []viewdata.Tab
	Metrics     []seed.Metric
	Total       string
	TrendChart  template.HTML
	SizeChart   template.HTML
	Goals       []seed.Goal
	Recent      []seed.DailyProduction
}

// resolvePeriod maps the period query value to week or month.
func resolvePeriod(v string) string {
	if v == periodMonth {
		return periodMonth
	}
	return periodWeek
}

// trend picks the chart and its total for a period. The week shows one line
// per egg size, the month a single bar series.
func trend(d *seed.Data, period string) (charts.Kind, charts.Spec, float64) {
	if period == periodMonth {
		ds := d.Chart(seed.ChartEggsMonthly)
		return charts.KindBar, ds.Spec("eggs-monthly", "Monthly Production"), ds.GrandTotal()
	}
	ds := d.Chart(seed.ChartEggsWeeklySizes)
	return charts.KindLine, ds.Spec("eggs-weekly", "Weekly Production by Size"), ds.GrandTotal()
}

// ServeProduction renders the egg production screen for the selected period.
func (h *Handler) ServeProduction(w http.ResponseWriter, r *http.Request) {
	period := resolvePeriod(query.Get(r, "period"))
	kind, spec, total := trend(h.Seed, period)

	label := "This Week"
	if period == periodMonth {
		label = "Last 6 Months"
	}

	eggs := h.Seed.Farmer.Eggs
	data := pageData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "Egg Production", "/farmer/farm-overview"),
		Period:      period,
		PeriodLabel: label,
		Periods:     viewdata.Tabs(period, periodWeek, "Week", periodMonth, "Month"),
		Metrics:     eggs.Metrics,
		Total:       fmt.Sprintf("%.0f", total),
		TrendChart:  h.Charts.Widget(kind, spec, h.Log),
		SizeChart: h.Charts.Widget(charts.KindPie,
			h.Seed.Chart(seed.ChartEggsSizeDistribution).Spec("eggs-sizes", "Size Distribution"), h.Log),
		Goals:  eggs.Goals,
		Recent: eggs.Recent,
	}
	templates.Render(w, r, "farmer_egg_production", data)
}
