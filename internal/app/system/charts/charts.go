// Package charts renders server-side chart widgets with go-echarts.
//
// go-echarts renders a complete HTML document per chart. Each document is
// embedded in pages through an iframe srcdoc so several charts can share a page
// without their scripts colliding.
package charts

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// DefaultHeight is the chart canvas height when a Spec does not set one.
const DefaultHeight = "320px"

// ErrNoSeries is returned when a Spec has nothing to draw.
var ErrNoSeries = errors.New("chart has no series")

// Series is one named line, bar group or pie.
type Series struct {
	Name   string
	Values []float64
}

// Spec describes a chart to render.
type Spec struct {
	ID       string // stable DOM id, also the cache key prefix
	Title    string
	Subtitle string
	Labels   []string
	Series   []Series
	Height   string
}

// Kind selects the chart type.
type Kind string

const (
	KindLine Kind = "line"
	KindArea Kind = "area"
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
)

// Renderer builds chart widgets and memoizes them in a Cache.
type Renderer struct {
	cache *Cache
	theme string
}

// NewRenderer returns a renderer whose output is cached for ttl.
// A zero ttl disables caching.
func NewRenderer(ttl time.Duration) *Renderer {
	return &Renderer{cache: NewCache(ttl), theme: types.ThemeWesteros}
}

// Line renders smoothed lines, one per series.
func (r *Renderer) Line(s Spec) (template.HTML, error) { return r.Render(KindLine, s) }

// Area renders smoothed lines with filled areas.
func (r *Renderer) Area(s Spec) (template.HTML, error) { return r.Render(KindArea, s) }

// Bar renders grouped bars, one group per label.
func (r *Renderer) Bar(s Spec) (template.HTML, error) { return r.Render(KindBar, s) }

// Pie renders the first series as slices named by the labels.
func (r *Renderer) Pie(s Spec) (template.HTML, error) { return r.Render(KindPie, s) }

// Render draws s as kind and wraps the document in an iframe.
func (r *Renderer) Render(kind Kind, s Spec) (template.HTML, error) {
	if len(s.Series) == 0 {
		return "", ErrNoSeries
	}
	if s.Height == "" {
		s.Height = DefaultHeight
	}
	doc, err := r.cache.GetOrRender(cacheKey(kind, s), func() (string, error) {
		return r.document(kind, s)
	})
	if err != nil {
		return "", err
	}
	return frame(s, doc), nil
}

func (r *Renderer) document(kind Kind, s Spec) (string, error) {
	global := r.globalOptions(s)
	switch kind {
	case KindLine, KindArea:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(s.Labels)
		for _, ser := range s.Series {
			line.AddSeries(ser.Name, toLineData(s.Labels, ser.Values))
		}
		seriesOpts := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})}
		if kind == KindArea {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{}))
		}
		line.SetSeriesOptions(seriesOpts...)
		return renderChart(line)
	case KindBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(s.Labels)
		for _, ser := range s.Series {
			bar.AddSeries(ser.Name, toBarData(s.Labels, ser.Values))
		}
		return renderChart(bar)
	case KindPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		pie.AddSeries(s.Series[0].Name, toPieData(s.Labels, s.Series[0].Values))
		return renderChart(pie)
	default:
		return "", fmt.Errorf("unsupported chart kind: %s", kind)
	}
}

func (r *Renderer) globalOptions(s Spec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: s.Title, Subtitle: s.Subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:   r.theme,
			Width:   "100%",
			Height:  s.Height,
			ChartID: s.ID,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func frame(s Spec, doc string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<iframe class="chart-frame" id="frame-%s" title="%s" style="width:100%%;height:calc(%s + 24px);border:0" srcdoc="%s"></iframe>`,
		html.EscapeString(s.ID), html.EscapeString(s.Title), html.EscapeString(s.Height), html.EscapeString(doc)))
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func toLineData(labels []string, values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Name: label(labels, i), Value: v}
	}
	return data
}

func toBarData(labels []string, values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Name: label(labels, i), Value: v}
	}
	return data
}

func toPieData(labels []string, values []float64) []opts.PieData {
	data := make([]opts.PieData, len(values))
	for i, v := range values {
		data[i] = opts.PieData{Name: label(labels, i), Value: v}
	}
	return data
}

// cacheKey identifies a rendering by kind, id and content so charts fed from
// live counts re-render when the counts change.
func cacheKey(kind Kind, s Spec) string {
	b, err := json.Marshal(s)
	if err != nil {
		return string(kind) + ":" + s.ID
	}
	sum := sha1.Sum(b)
	return string(kind) + ":" + s.ID + ":" + hex.EncodeToString(sum[:])
}
