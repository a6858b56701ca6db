// internal/app/features/sales/handler.go
package sales

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read-only sales analytics screen.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Seed   *seed.Data
	Charts *charts.Renderer
}

func NewHandler(db *mongo.Database, data *seed.Data, renderer *charts.Renderer, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Seed: data, Charts: renderer}
}

// chartDef names one chart of the page and the dataset slice it draws.
type chartDef struct {
	Kind    charts.Kind
	Dataset string
	Series  []string // empty means every series
	ID      string
	Title   string
}

var pageCharts = []chartDef{
	{charts.KindLine, seed.ChartSalesRevenue, nil, "sales-revenue-profit", "Revenue & Profit"},
	{charts.KindBar, seed.ChartSalesRevenue, []string{"Revenue"}, "sales-revenue-bar", "Monthly Revenue"},
	{charts.KindLine, seed.ChartSalesUsage, []string{"Users"}, "sales-users", "Active Users"},
	{charts.KindBar, seed.ChartSalesUsage, []string{"Sessions"}, "sales-sessions", "Sessions"},
	{charts.KindBar, seed.ChartSalesDevices, []string{"Uptime"}, "sales-device-uptime", "Device Uptime"},
	{charts.KindLine, seed.ChartSalesDevices, []string{"Efficiency"}, "sales-device-efficiency", "Device Efficiency"},
	{charts.KindPie, seed.ChartSalesSatisfaction, nil, "sales-satisfaction", "Customer Satisfaction"},
}

// Panel is one rendered chart card.
type Panel struct {
	Title string
	Chart template.HTML
}

type pageData struct {
	viewdata.BaseVM

	KPIs   []seed.Metric
	Panels []Panel
}

func (h *Handler) panels() []Panel {
	out := make([]Panel, 0, len(pageCharts))
	for _, c := range pageCharts {
		ds := h.Seed.Chart(c.Dataset)
		if len(c.Series) > 0 {
			ds = ds.Only(c.Series...)
		}
		out = append(out, Panel{
			Title: c.Title,
			Chart: h.Charts.Widget(c.Kind, ds.Spec(c.ID, c.Title), h.Log),
		})
	}
	return out
}

// ServeAnalytics handles GET /admin/sales-analytics.
func (h *Handler) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Sales Analytics", "/admin/system-overview"),
		KPIs:   h.Seed.Admin.Sales.KPIs,
		Panels: h.panels(),
	}
	templates.Render(w, r, "admin_sales_analytics", data)
}
