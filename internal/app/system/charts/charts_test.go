package charts_test

import (
	"errors"
	"html"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func revenueSpec() charts.Spec {
	return charts.Spec{
		ID:     "revenue",
		Title:  "Revenue & Growth",
		Labels: []string{"Jan", "Feb", "Mar"},
		Series: []charts.Series{
			{Name: "Revenue", Values: []float64{8500, 9200, 10100}},
			{Name: "Farmers", Values: []float64{18, 20, 22}},
		},
	}
}

func TestRenderer_Kinds(t *testing.T) {
	t.Parallel()
	r := charts.NewRenderer(time.Minute)

	for _, kind := range []charts.Kind{charts.KindLine, charts.KindArea, charts.KindBar, charts.KindPie} {
		out, err := r.Render(kind, revenueSpec())
		require.NoError(t, err, kind)

		s := string(out)
		assert.True(t, strings.HasPrefix(s, `<iframe class="chart-frame" id="frame-revenue"`), kind)
		doc := html.UnescapeString(s)
		assert.Contains(t, doc, "revenue", kind)
		assert.Contains(t, doc, "Revenue", kind)
		assert.Contains(t, doc, "echarts", kind)
	}
}

func TestRenderer_AreaFillsSeries(t *testing.T) {
	t.Parallel()
	r := charts.NewRenderer(0)

	area, err := r.Area(revenueSpec())
	require.NoError(t, err)
	line, err := r.Line(revenueSpec())
	require.NoError(t, err)

	assert.Contains(t, html.UnescapeString(string(area)), "areaStyle")
	assert.NotContains(t, html.UnescapeString(string(line)), "areaStyle")
}

func TestRenderer_PieUsesLabels(t *testing.T) {
	t.Parallel()
	r := charts.NewRenderer(0)

	out, err := r.Pie(charts.Spec{
		ID:     "status",
		Labels: []string{"Online", "Maintenance", "Offline"},
		Series: []charts.Series{{Name: "Systems", Values: []float64{85, 10, 5}}},
	})
	require.NoError(t, err)
	doc := html.UnescapeString(string(out))
	for _, l := range []string{"Online", "Maintenance", "Offline"} {
		assert.Contains(t, doc, l)
	}
}

func TestRenderer_NoSeries(t *testing.T) {
	t.Parallel()
	r := charts.NewRenderer(time.Minute)
	_, err := r.Bar(charts.Spec{ID: "empty"})
	assert.True(t, errors.Is(err, charts.ErrNoSeries))
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC)
	c := charts.NewCache(time.Minute)
	c.SetClock(func() time.Time { return now })

	calls := 0
	render := func() (string, error) {
		calls++
		return "chart", nil
	}

	for i := 0; i < 3; i++ {
		out, err := c.GetOrRender("k", render)
		require.NoError(t, err)
		assert.Equal(t, "chart", out)
	}
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err := c.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ErrorNotStored(t *testing.T) {
	t.Parallel()
	c := charts.NewCache(time.Minute)
	boom := errors.New("boom")

	_, err := c.GetOrRender("k", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Disabled(t *testing.T) {
	t.Parallel()
	c := charts.NewCache(0)
	calls := 0
	for i := 0; i < 2; i++ {
		_, _ = c.GetOrRender("k", func() (string, error) { calls++; return "x", nil })
	}
	assert.Equal(t, 2, calls)
}

func TestRenderer_WidgetFallsBack(t *testing.T) {
	t.Parallel()
	r := charts.NewRenderer(0)

	out := r.Widget(charts.KindBar, charts.Spec{ID: "empty"}, zap.NewNop())
	assert.Contains(t, string(out), "No chart data available")

	out = r.Widget(charts.KindBar, revenueSpec(), zap.NewNop())
	assert.Contains(t, string(out), "<iframe")
}
