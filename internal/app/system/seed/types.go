package seed

import (
	"errors"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/domain/models"
)

// Series is one named line, bar group or pie of a chart.
type Series struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

// Dataset is a labelled set of series. Every series has one value per label.
type Dataset struct {
	Labels []string `yaml:"labels"`
	Series []Series `yaml:"series"`
}

func (d Dataset) validate() error {
	if len(d.Series) == 0 {
		return errors.New("no series")
	}
	for _, s := range d.Series {
		if len(s.Values) != len(d.Labels) {
			return errors.New("series " + s.Name + " does not match label count")
		}
	}
	return nil
}

// Spec converts the dataset into a chart spec.
func (d Dataset) Spec(id, title string) charts.Spec {
	series := make([]charts.Series, len(d.Series))
	for i, s := range d.Series {
		series[i] = charts.Series{Name: s.Name, Values: s.Values}
	}
	return charts.Spec{ID: id, Title: title, Labels: d.Labels, Series: series}
}

// Only returns a copy of the dataset holding just the named series.
func (d Dataset) Only(names ...string) Dataset {
	out := Dataset{Labels: d.Labels}
	for _, s := range d.Series {
		for _, n := range names {
			if s.Name == n {
				out.Series = append(out.Series, s)
			}
		}
	}
	return out
}

// Total sums every value of the named series.
func (d Dataset) Total(series string) float64 {
	var sum float64
	for _, s := range d.Series {
		if s.Name == series {
			for _, v := range s.Values {
				sum += v
			}
		}
	}
	return sum
}

// GrandTotal sums every value of every series.
func (d Dataset) GrandTotal() float64 {
	var sum float64
	for _, s := range d.Series {
		for _, v := range s.Values {
			sum += v
		}
	}
	return sum
}

// Metric is a headline number on a metric card.
type Metric struct {
	Title  string `yaml:"title"`
	Value  string `yaml:"value"`
	Change string `yaml:"change"`
	Trend  string `yaml:"trend"` // up | down
}

// Alert is an informational, warning or error notice.
type Alert struct {
	Type    string `yaml:"type"` // info | warning | error
	Source  string `yaml:"source"`
	Message string `yaml:"message"`
	Time    string `yaml:"time"`
}

// Activity is one recent-activity entry.
type Activity struct {
	Action string `yaml:"action"`
	User   string `yaml:"user"`
	Time   string `yaml:"time"`
}

// Maintenance is a scheduled equipment maintenance task.
type Maintenance struct {
	Equipment string `yaml:"equipment"`
	DueDate   string `yaml:"due_date"`
	Type      string `yaml:"type"`
	Priority  string `yaml:"priority"`
}

// Level is the fill level of a feed, water or grit container.
type Level struct {
	Name     string  `yaml:"name"`
	Level    float64 `yaml:"level"`
	Capacity float64 `yaml:"capacity"`
}

// Percent returns the fill level as a share of capacity, capped at 100.
func (l Level) Percent() float64 {
	if l.Capacity <= 0 {
		return 0
	}
	return capPercent(l.Level / l.Capacity * 100)
}

// Unit is "%" for containers measured in percent and "L" otherwise.
func (l Level) Unit() string {
	if l.Capacity == 100 {
		return "%"
	}
	return "L"
}

// NeedsRefill reports whether the container is below 80 percent.
func (l Level) NeedsRefill() bool {
	return l.Percent() < 80
}

// Goal is a production target with current progress.
type Goal struct {
	Period  string  `yaml:"period"`
	Current float64 `yaml:"current"`
	Target  float64 `yaml:"target"`
	Unit    string  `yaml:"unit"`
}

// Progress returns current over target as a percentage capped at 100.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return capPercent(g.Current / g.Target * 100)
}

func capPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// DailyProduction is one row of the recent egg production table.
type DailyProduction struct {
	Date       string `yaml:"date"`
	Total      int    `yaml:"total"`
	Small      int    `yaml:"small"`
	Medium     int    `yaml:"medium"`
	Large      int    `yaml:"large"`
	ExtraLarge int    `yaml:"extra_large"`
}

// ReportOverview holds the platform summary figures.
type ReportOverview struct {
	TotalFarmers  int     `yaml:"total_farmers"`
	ActiveSystems int     `yaml:"active_systems"`
	TotalRevenue  float64 `yaml:"total_revenue"`
	AvgUptime     float64 `yaml:"avg_uptime"`
	MonthlyGrowth float64 `yaml:"monthly_growth"`
	SystemHealth  float64 `yaml:"system_health"`
}

// FarmerPerformance is one row of the farmer performance report.
type FarmerPerformance struct {
	Farmer     string  `yaml:"farmer"`
	Eggs       int     `yaml:"eggs"`
	Revenue    float64 `yaml:"revenue"`
	Uptime     float64 `yaml:"uptime"`
	Efficiency float64 `yaml:"efficiency"`
}

// EquipmentUsage is one row of the equipment usage report.
type EquipmentUsage struct {
	Equipment   string  `yaml:"equipment"`
	Usage       float64 `yaml:"usage"`
	Maintenance int     `yaml:"maintenance"`
	Failures    int     `yaml:"failures"`
}

// AdminData is the display data for admin screens.
type AdminData struct {
	Overview struct {
		Metrics  []Metric   `yaml:"metrics"`
		Alerts   []Alert    `yaml:"alerts"`
		Activity []Activity `yaml:"activity"`
	} `yaml:"overview"`
	Equipment struct {
		Alerts      []Alert       `yaml:"alerts"`
		Maintenance []Maintenance `yaml:"maintenance"`
	} `yaml:"equipment"`
	Sales struct {
		KPIs []Metric `yaml:"kpis"`
	} `yaml:"sales"`
	FAQs    []models.FAQ `yaml:"faqs"`
	Reports struct {
		Overview  ReportOverview      `yaml:"overview"`
		Farmers   []FarmerPerformance `yaml:"farmers"`
		Equipment []EquipmentUsage    `yaml:"equipment"`
	} `yaml:"reports"`
}

// FarmerData is the display data for farmer screens.
type FarmerData struct {
	Overview struct {
		Metrics []Metric `yaml:"metrics"`
		Levels  []Level  `yaml:"levels"`
		Alerts  []Alert  `yaml:"alerts"`
	} `yaml:"overview"`
	FeedWater struct {
		Levels []Level `yaml:"levels"`
		Alerts []Alert `yaml:"alerts"`
	} `yaml:"feed_water"`
	Eggs struct {
		Metrics []Metric          `yaml:"metrics"`
		Goals   []Goal            `yaml:"goals"`
		Recent  []DailyProduction `yaml:"recent"`
	} `yaml:"eggs"`
	Certifications []string `yaml:"certifications"`
}

// Chart dataset keys.
const (
	ChartOverviewRevenue      = "overview_revenue"
	ChartOverviewStatus       = "overview_status"
	ChartFarmerProduction     = "farmer_production"
	ChartFarmerStatus         = "farmer_status"
	ChartEquipmentPerformance = "equipment_performance"
	ChartSalesRevenue         = "sales_revenue"
	ChartSalesUsage           = "sales_usage"
	ChartSalesDevices         = "sales_devices"
	ChartSalesSatisfaction    = "sales_satisfaction"
	ChartReportRevenue        = "report_revenue"
	ChartFarmWeeklyEggs       = "farm_weekly_eggs"
	ChartFarmFeedWeekly       = "farm_feed_weekly"
	ChartFarmRevenue          = "farm_revenue"
	ChartConsumptionDaily     = "consumption_daily"
	ChartConsumptionWeekly    = "consumption_weekly"
	ChartEggsWeeklySizes      = "eggs_weekly_sizes"
	ChartEggsMonthly          = "eggs_monthly"
	ChartEggsSizeDistribution = "eggs_size_distribution"
)
