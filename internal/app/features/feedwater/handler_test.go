package feedwater

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	schedulestore "github.com/dalemusser/coophub/internal/app/store/schedules"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/coophub/internal/testutil"
	"github.com/dalemusser/coophub/internal/testutil/seedtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const farm = "Green Valley Farm"

func newHandler(t *testing.T) (*Handler, seedtest.Env) {
	t.Helper()
	env := seedtest.Setup(t)
	return NewHandler(env.DB, env.Seed, env.Charts, env.ErrLog, env.Log), env
}

func listKind(t *testing.T, env seedtest.Env, kind string) []models.FeedSchedule {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := schedulestore.New(env.DB).ListByFarm(ctx, farm, kind)
	require.NoError(t, err)
	return list
}

func TestRefillAlerts(t *testing.T) {
	levels := []seed.Level{
		{Name: "Feed Hopper", Level: 45, Capacity: 100},
		{Name: "Water Tank", Level: 90, Capacity: 100},
	}
	seeded := []seed.Alert{{Type: "info", Message: "Delivery Friday"}}

	got := refillAlerts(levels, seeded)
	require.Len(t, got, 2)
	assert.Equal(t, "Feed Hopper", got[0].Source)
	assert.Equal(t, "Feed Hopper is at 45%, refill soon", got[0].Message)
	assert.Equal(t, "Delivery Friday", got[1].Message)
}

func TestFormMessage(t *testing.T) {
	msg, ok := formMessage(schedulestore.ErrInvalidTime)
	assert.True(t, ok)
	assert.Equal(t, "Time must be in HH:MM form.", msg)

	_, ok = formMessage(assert.AnError)
	assert.False(t, ok)
}

func TestPageData(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, basePath, nil), testutil.FarmerUser(farm))

	data, err := h.pageData(req, farm)
	require.NoError(t, err)
	assert.Len(t, data.FeedSchedules, 3)
	assert.Len(t, data.WaterSchedules, 2)
	assert.Equal(t, "06:00", data.FeedSchedules[0].Time)
	assert.Contains(t, string(data.DailyChart), "iframe")
	assert.Contains(t, string(data.WeeklyChart), "iframe")
}

func TestHandleAddSchedule(t *testing.T) {
	h, env := newHandler(t)

	form := url.Values{"kind": {"water"}, "time": {"19:30"}, "amount": {"1L"}}
	req := testutil.WithUser(testutil.NewFormRequest(basePath+"/schedules", form), testutil.FarmerUser(farm))
	rec := testutil.NewRecorder()
	h.HandleAddSchedule(rec, req)

	rec.AssertRedirect(t, basePath+"?success=added")
	water := listKind(t, env, models.ScheduleWater)
	require.Len(t, water, 3)
	assert.Equal(t, "19:30", water[2].Time)
	assert.True(t, water[2].Enabled)
}

func TestHandleAddSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"bad kind", url.Values{"kind": {"grit"}, "time": {"08:00"}, "amount": {"1kg"}}},
		{"bad time", url.Values{"kind": {"feed"}, "time": {"8am"}, "amount": {"1kg"}}},
		{"no amount", url.Values{"kind": {"feed"}, "time": {"08:00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, env := newHandler(t)
			req := testutil.WithUser(testutil.NewFormRequest(basePath+"/schedules", tt.form), testutil.FarmerUser(farm))
			rec := testutil.NewRecorder()
			testutil.Render(func() { h.HandleAddSchedule(rec, req) })

			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			assert.Len(t, listKind(t, env, models.ScheduleFeed), 3)
		})
	}
}

func TestHandleToggleSchedule(t *testing.T) {
	h, env := newHandler(t)
	first := listKind(t, env, models.ScheduleFeed)[0]
	require.True(t, first.Enabled)

	req := testutil.WithChiURLParam(testutil.NewFormRequest(basePath+"/schedules/"+first.ID.Hex()+"/toggle", nil), "id", first.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleToggleSchedule(rec, testutil.WithUser(req, testutil.FarmerUser(farm)))

	rec.AssertRedirect(t, basePath+"?success=toggled")
	assert.False(t, listKind(t, env, models.ScheduleFeed)[0].Enabled)
}

func TestHandleToggleSchedule_OtherFarm(t *testing.T) {
	h, env := newHandler(t)
	first := listKind(t, env, models.ScheduleFeed)[0]

	req := testutil.WithChiURLParam(testutil.NewFormRequest(basePath+"/schedules/"+first.ID.Hex()+"/toggle", nil), "id", first.ID.Hex())
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleToggleSchedule(rec, testutil.WithUser(req, testutil.FarmerUser("Sunny Acres"))) })

	rec.AssertStatus(t, http.StatusNotFound)
	assert.True(t, listKind(t, env, models.ScheduleFeed)[0].Enabled)
}
