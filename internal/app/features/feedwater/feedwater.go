// internal/app/features/feedwater/feedwater.go
package feedwater

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	schedulestore "github.com/dalemusser/coophub/internal/app/store/schedules"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// scheduleInput is the add-schedule form.
type scheduleInput struct {
	Kind   string
	Time   string
	Amount string
}

type pageData struct {
	viewdata.BaseVM

	Levels         []seed.Level
	Alerts         []seed.Alert
	DailyChart     template.HTML
	WeeklyChart    template.HTML
	FeedSchedules  []models.FeedSchedule
	WaterSchedules []models.FeedSchedule
	Form           scheduleInput
}

// refillAlerts raises a warning for each container below the refill mark,
// followed by the seeded alerts.
func refillAlerts(levels []seed.Level, seeded []seed.Alert) []seed.Alert {
	out := make([]seed.Alert, 0, len(levels)+len(seeded))
	for _, l := range levels {
		if l.NeedsRefill() {
			out = append(out, seed.Alert{
				Type:    "warning",
				Source:  l.Name,
				Message: fmt.Sprintf("%s is at %.0f%%, refill soon", l.Name, l.Percent()),
			})
		}
	}
	return append(out, seeded...)
}

// ServeFeedWater renders the feed and water screen.
func (h *Handler) ServeFeedWater(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "feed-water without farm scope", "Your account is not linked to a farm.")
		return
	}
	data, err := h.pageData(r, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list schedules failed", err, "A database error occurred.", "/farmer/farm-overview")
		return
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_feed_water", data)
}

func (h *Handler) pageData(r *http.Request, farm string) (pageData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := schedulestore.New(h.DB)
	feed, err := store.ListByFarm(ctx, farm, models.ScheduleFeed)
	if err != nil {
		return pageData{}, err
	}
	water, err := store.ListByFarm(ctx, farm, models.ScheduleWater)
	if err != nil {
		return pageData{}, err
	}

	fw := h.Seed.Farmer.FeedWater
	return pageData{
		BaseVM:         viewdata.NewBaseVM(r, h.DB, "Feed & Water", "/farmer/farm-overview"),
		Levels:         fw.Levels,
		Alerts:         refillAlerts(fw.Levels, fw.Alerts),
		FeedSchedules:  feed,
		WaterSchedules: water,
		Form:           scheduleInput{Kind: models.ScheduleFeed},
		DailyChart: h.Charts.Widget(charts.KindLine,
			h.Seed.Chart(seed.ChartConsumptionDaily).Spec("consumption-daily", "Daily Consumption"), h.Log),
		WeeklyChart: h.Charts.Widget(charts.KindBar,
			h.Seed.Chart(seed.ChartConsumptionWeekly).Spec("consumption-weekly", "Weekly Consumption"), h.Log),
	}, nil
}
