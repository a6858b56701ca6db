package door

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
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
	return NewHandler(env.DB, env.ErrLog, env.Log), env
}

func loadDoor(t *testing.T, env seedtest.Env) *models.DoorState {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	d, err := doorstore.New(env.DB).GetByFarm(ctx, farm)
	require.NoError(t, err)
	return d
}

func post(path string, form url.Values) *http.Request {
	return testutil.WithUser(testutil.NewFormRequest(path, form), testutil.FarmerUser(farm))
}

func TestBatteryClass(t *testing.T) {
	assert.Equal(t, "danger", batteryClass(5))
	assert.Equal(t, "warning", batteryClass(35))
	assert.Equal(t, "ok", batteryClass(85))
}

func TestToResponse_NilAlerts(t *testing.T) {
	resp := toResponse(models.DoorState{Status: models.DoorOpen, Battery: 12})
	assert.NotNil(t, resp.Alerts)
	assert.True(t, resp.BatteryLow)
}

func TestServeStatusJSON(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, basePath+"/status.json", nil), testutil.FarmerUser(farm))
	rec := testutil.NewRecorder()
	h.ServeStatusJSON(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.DoorClosed, got.Status)
	assert.Equal(t, float64(85), got.Battery)
	assert.False(t, got.BatteryLow)
}

func TestServeStatusJSON_AdminForbidden(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, basePath+"/status.json", nil), testutil.AdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.ServeStatusJSON(rec, req) })
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleSetStatus(t *testing.T) {
	h, env := newHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSetStatus(rec, post(basePath+"/status", url.Values{"action": {"open"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, models.DoorOpen, loadDoor(t, env).Status)

	rec = testutil.NewRecorder()
	h.HandleSetStatus(rec, post(basePath+"/status", url.Values{"action": {"close"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, models.DoorClosed, loadDoor(t, env).Status)

	rec = testutil.NewRecorder()
	testutil.Render(func() { h.HandleSetStatus(rec, post(basePath+"/status", url.Values{"action": {"explode"}})) })
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleAutoMode(t *testing.T) {
	h, env := newHandler(t)

	form := url.Values{"auto_mode": {"on"}, "sunrise": {"05:45"}, "sunset": {"20:15"}}
	rec := testutil.NewRecorder()
	h.HandleAutoMode(rec, post(basePath+"/auto", form))
	rec.AssertRedirect(t, basePath+"?success=saved")

	d := loadDoor(t, env)
	assert.True(t, d.AutoMode)
	assert.Equal(t, "05:45", d.Sunrise)
	assert.Equal(t, "20:15", d.Sunset)
}

func TestHandleAutoMode_BadTime(t *testing.T) {
	h, env := newHandler(t)

	form := url.Values{"auto_mode": {"on"}, "sunrise": {"25:00"}, "sunset": {"18:00"}}
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleAutoMode(rec, post(basePath+"/auto", form)) })
	rec.AssertStatus(t, http.StatusBadRequest)

	d := loadDoor(t, env)
	assert.False(t, d.AutoMode)
	assert.Equal(t, "06:00", d.Sunrise)
}

func TestHandleSetStatus_NoDoor(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(testutil.NewFormRequest(basePath+"/status", url.Values{"action": {"open"}}), testutil.FarmerUser("Nowhere Farm"))
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleSetStatus(rec, req) })
	rec.AssertStatus(t, http.StatusNotFound)
}
