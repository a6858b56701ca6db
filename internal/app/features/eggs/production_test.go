package eggs

import (
	"testing"

	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSeed(t *testing.T) *seed.Data {
	t.Helper()
	d, err := seed.Load()
	require.NoError(t, err)
	return d
}

func TestResolvePeriod(t *testing.T) {
	assert.Equal(t, periodWeek, resolvePeriod(""))
	assert.Equal(t, periodWeek, resolvePeriod("week"))
	assert.Equal(t, periodMonth, resolvePeriod("month"))
	assert.Equal(t, periodWeek, resolvePeriod("year"))
}

func TestTrend_Week(t *testing.T) {
	kind, spec, total := trend(loadSeed(t), periodWeek)
	assert.Equal(t, charts.KindLine, kind)
	assert.Len(t, spec.Series, 4)
	assert.Equal(t, float64(345), total)
}

func TestTrend_Month(t *testing.T) {
	kind, spec, total := trend(loadSeed(t), periodMonth)
	assert.Equal(t, charts.KindBar, kind)
	require.Len(t, spec.Series, 1)
	assert.Equal(t, float64(2570), total)
}

func TestGoalsCapped(t *testing.T) {
	for _, g := range loadSeed(t).Farmer.Eggs.Goals {
		assert.LessOrEqual(t, g.Progress(), float64(100))
	}
	over := seed.Goal{Current: 60, Target: 50}
	assert.Equal(t, float64(100), over.Progress())
}
