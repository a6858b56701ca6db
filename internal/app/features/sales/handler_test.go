package sales

import (
	"strings"
	"testing"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPanels_RenderEveryChart(t *testing.T) {
	data, err := seed.Load()
	require.NoError(t, err)
	h := NewHandler(nil, data, charts.NewRenderer(0), zap.NewNop())

	panels := h.panels()
	require.Len(t, panels, len(pageCharts))
	for _, p := range panels {
		assert.NotEmpty(t, p.Title)
		assert.True(t, strings.Contains(string(p.Chart), "iframe"), "%s did not render a chart", p.Title)
	}
}

func TestPageCharts_SeriesExist(t *testing.T) {
	data, err := seed.Load()
	require.NoError(t, err)
	for _, c := range pageCharts {
		ds := data.Chart(c.Dataset)
		require.NotEmpty(t, ds.Series, c.Dataset)
		if len(c.Series) > 0 {
			assert.Len(t, ds.Only(c.Series...).Series, len(c.Series), c.ID)
		}
	}
}
