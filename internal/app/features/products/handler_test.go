package products

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	productstore "github.com/dalemusser/coophub/internal/app/store/products"
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

func byName(t *testing.T, env seedtest.Env, name string) models.Product {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := productstore.New(env.DB).ListByFarm(ctx, farm)
	require.NoError(t, err)
	for _, p := range list {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no product %s", name)
	return models.Product{}
}

func productRequest(p models.Product, action string, form url.Values) *http.Request {
	req := testutil.NewFormRequest(basePath+"/"+p.ID.Hex()+"/"+action, form)
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	return testutil.WithUser(req, testutil.FarmerUser(farm))
}

func TestSummarize(t *testing.T) {
	available, value := summarize([]models.Product{
		{Price: 5, Stock: 10, Available: true},
		{Price: 6, Stock: 10, Available: false},
		{Price: 2.5, Stock: 4, Available: true},
	})
	assert.Equal(t, 2, available)
	assert.InDelta(t, 60.0, value, 0.001)
}

func TestListData(t *testing.T) {
	h, _ := newHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, basePath, nil), testutil.FarmerUser(farm))

	data, err := h.listData(req, farm)
	require.NoError(t, err)
	assert.Len(t, data.Products, 4)
	assert.Equal(t, 3, data.AvailableCount)
	assert.InDelta(t, 1322.5, data.InventoryValue, 0.001)
}

func TestHandlePrice(t *testing.T) {
	h, env := newHandler(t)
	p := byName(t, env, "Small Eggs")

	rec := testutil.NewRecorder()
	h.HandlePrice(rec, productRequest(p, "price", url.Values{"price": {"4.75"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, 4.75, byName(t, env, "Small Eggs").Price)

	rec = testutil.NewRecorder()
	h.HandlePrice(rec, productRequest(p, "price", url.Values{"price": {"abc"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, float64(0), byName(t, env, "Small Eggs").Price)

	rec = testutil.NewRecorder()
	h.HandlePrice(rec, productRequest(p, "price", url.Values{"price": {"5.25/dozen"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, 5.25, byName(t, env, "Small Eggs").Price)
}

func TestHandlePrice_Negative(t *testing.T) {
	h, env := newHandler(t)
	p := byName(t, env, "Small Eggs")

	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandlePrice(rec, productRequest(p, "price", url.Values{"price": {"-1"}})) })
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	assert.Equal(t, 4.5, byName(t, env, "Small Eggs").Price)
}

func TestHandleStock(t *testing.T) {
	h, env := newHandler(t)
	p := byName(t, env, "Large Eggs")

	rec := testutil.NewRecorder()
	h.HandleStock(rec, productRequest(p, "stock", url.Values{"stock": {"250"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	got := byName(t, env, "Large Eggs")
	assert.Equal(t, 250, got.Stock)
	assert.Equal(t, 100, got.StockPercent())

	rec = testutil.NewRecorder()
	h.HandleStock(rec, productRequest(p, "stock", url.Values{"stock": {"12.5"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")
	assert.Equal(t, 12, byName(t, env, "Large Eggs").Stock)

	rec = testutil.NewRecorder()
	h.HandleStock(rec, productRequest(p, "stock", url.Values{"stock": {"250"}}))
	rec.AssertRedirect(t, basePath+"?success=updated")

	rec = testutil.NewRecorder()
	testutil.Render(func() { h.HandleStock(rec, productRequest(p, "stock", url.Values{"stock": {"-5"}})) })
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	assert.Equal(t, 250, byName(t, env, "Large Eggs").Stock)
}

func TestHandleToggle(t *testing.T) {
	h, env := newHandler(t)
	p := byName(t, env, "Extra Large Eggs")
	require.False(t, p.Available)

	rec := testutil.NewRecorder()
	h.HandleToggle(rec, productRequest(p, "toggle", nil))
	rec.AssertRedirect(t, basePath+"?success=toggled")
	assert.True(t, byName(t, env, "Extra Large Eggs").Available)
}

func TestHandleToggle_OtherFarm(t *testing.T) {
	h, env := newHandler(t)
	p := byName(t, env, "Small Eggs")

	req := testutil.NewFormRequest(basePath+"/"+p.ID.Hex()+"/toggle", nil)
	req = testutil.WithUser(testutil.WithChiURLParam(req, "id", p.ID.Hex()), testutil.FarmerUser("Sunny Acres"))
	rec := testutil.NewRecorder()
	testutil.Render(func() { h.HandleToggle(rec, req) })
	rec.AssertStatus(t, http.StatusNotFound)
}
