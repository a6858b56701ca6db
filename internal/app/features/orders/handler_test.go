package orders

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	orderstore "github.com/dalemusser/coophub/internal/app/store/orders"
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

func byCustomer(t *testing.T, env seedtest.Env, name string) models.Order {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := orderstore.New(env.DB).ListByFarm(ctx, farm)
	require.NoError(t, err)
	for _, o := range list {
		if o.CustomerName == name {
			return o
		}
	}
	t.Fatalf("no order for %s", name)
	return models.Order{}
}

func actionRequest(o models.Order, action string, form url.Values) *http.Request {
	req := testutil.NewFormRequest(basePath+"/"+o.ID.Hex()+"/"+action, form)
	req = testutil.WithChiURLParam(req, "id", o.ID.Hex())
	return testutil.WithUser(req, testutil.FarmerUser(farm))
}

func TestListData_Tabs(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, basePath, nil), testutil.FarmerUser(farm))

	data, err := h.listData(req, farm, tabIncoming)
	require.NoError(t, err)
	require.Len(t, data.Orders, 1)
	assert.Equal(t, "John Doe", data.Orders[0].CustomerName)
	assert.Equal(t, "Incoming (1)", data.Tabs[0].Label)
	assert.Equal(t, "History (3)", data.Tabs[1].Label)

	data, err = h.listData(req, farm, tabHistory)
	require.NoError(t, err)
	assert.Len(t, data.Orders, 3)
}

func TestHandleAccept(t *testing.T) {
	h, env := newHandler(t)
	o := byCustomer(t, env, "John Doe")

	rec := testutil.NewRecorder()
	h.HandleAccept(rec, actionRequest(o, "accept", url.Values{"delivery_date": {"2023-10-03"}, "delivery_time": {"09:00"}}))
	rec.AssertRedirect(t, basePath+"?tab=incoming&success=accepted")

	got := byCustomer(t, env, "John Doe")
	assert.Equal(t, models.OrderAccepted, got.Status)
	assert.Equal(t, "2023-10-03", got.DeliveryDate)
	assert.Equal(t, "09:00", got.DeliveryTime)
}

func TestHandleAccept_Unscheduled(t *testing.T) {
	h, env := newHandler(t)
	o := byCustomer(t, env, "John Doe")

	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleAccept(rec, actionRequest(o, "accept", url.Values{"delivery_date": {"2023-10-03"}})) })
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	assert.Equal(t, models.OrderPending, byCustomer(t, env, "John Doe").Status)
}

func TestHandleDecline(t *testing.T) {
	h, env := newHandler(t)
	o := byCustomer(t, env, "John Doe")

	rec := testutil.NewRecorder()
	h.HandleDecline(rec, actionRequest(o, "decline", nil))
	rec.AssertRedirect(t, basePath+"?tab=incoming&success=declined")
	assert.Equal(t, models.OrderDeclined, byCustomer(t, env, "John Doe").Status)
}

func TestHandleDeliver(t *testing.T) {
	h, env := newHandler(t)
	o := byCustomer(t, env, "Jane Smith")

	rec := testutil.NewRecorder()
	h.HandleDeliver(rec, actionRequest(o, "deliver", nil))
	rec.AssertRedirect(t, basePath+"?tab=history&success=delivered")
	assert.Equal(t, models.OrderDelivered, byCustomer(t, env, "Jane Smith").Status)
}

func TestInvalidTransitions(t *testing.T) {
	h, env := newHandler(t)

	rec := testutil.NewRecorder()
	delivered := byCustomer(t, env, "Bob Johnson")
	testutil.Render(func() { h.HandleDecline(rec, actionRequest(delivered, "decline", nil)) })
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = testutil.NewRecorder()
	pending := byCustomer(t, env, "John Doe")
	testutil.Render(func() { h.HandleDeliver(rec, actionRequest(pending, "deliver", nil)) })
	rec.AssertStatus(t, http.StatusBadRequest)
	assert.Equal(t, models.OrderPending, byCustomer(t, env, "John Doe").Status)
}

func TestOtherFarmOrder(t *testing.T) {
	h, env := newHandler(t)
	o := byCustomer(t, env, "John Doe")

	req := testutil.NewFormRequest(basePath+"/"+o.ID.Hex()+"/decline", nil)
	req = testutil.WithUser(testutil.WithChiURLParam(req, "id", o.ID.Hex()), testutil.FarmerUser("Sunny Acres"))
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleDecline(rec, req) })
	rec.AssertStatus(t, http.StatusNotFound)
}
