// internal/app/features/reports/types.go
package reports

import (
	"html/template"

	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
)

const (
	reportOverview  = "overview"
	reportFarmer    = "farmer"
	reportEquipment = "equipment"
	reportRevenue   = "revenue"
)

// Option is one entry of a selector (report type or date range).
type Option struct {
	Key    string
	Label  string
	Active bool
}

var reportTypes = []Option{
	{Key: reportOverview, Label: "System Overview"},
	{Key: reportFarmer, Label: "Farmer Performance"},
	{Key: reportEquipment, Label: "Equipment Usage"},
	{Key: reportRevenue, Label: "Revenue Reports"},
}

var dateRanges = []Option{
	{Key: "7days", Label: "Last 7 days"},
	{Key: "30days", Label: "Last 30 days"},
	{Key: "90days", Label: "Last 90 days"},
	{Key: "1year", Label: "Last year"},
}

// pick marks key active in opts. Unknown keys select def.
func pick(opts []Option, key, def string) ([]Option, Option) {
	found := false
	for _, o := range opts {
		if o.Key == key {
			found = true
		}
	}
	if !found {
		key = def
	}
	var chosen Option
	out := make([]Option, len(opts))
	for i, o := range opts {
		o.Active = o.Key == key
		if o.Active {
			chosen = o
		}
		out[i] = o
	}
	return out, chosen
}

// RevenueRow is one month of the revenue report.
type RevenueRow struct {
	Month        string
	Subscription float64
	Equipment    float64
	Support      float64
}

// Total is the month's revenue across streams.
func (r RevenueRow) Total() float64 {
	return r.Subscription + r.Equipment + r.Support
}

type pageData struct {
	viewdata.BaseVM

	Types  []Option
	Type   Option
	Ranges []Option
	Range  Option

	Overview  seed.ReportOverview
	Farmers   []seed.FarmerPerformance
	Equipment []seed.EquipmentUsage
	Revenue   []RevenueRow
	Totals    RevenueRow

	Chart       template.HTML
	SecondChart template.HTML
	ExportURL   string
}
