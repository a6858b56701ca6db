package charts

import (
	"html/template"

	"go.uber.org/zap"
)

// emptyWidget is shown in place of a chart that could not be drawn.
const emptyWidget = template.HTML(`<div class="chart-empty">No chart data available.</div>`)

// Widget renders s as kind for a page. A failed rendering is logged and
// replaced by a placeholder so the rest of the page still renders.
func (r *Renderer) Widget(kind Kind, s Spec, log *zap.Logger) template.HTML {
	out, err := r.Render(kind, s)
	if err != nil {
		log.Warn("chart render failed",
			zap.String("chart", s.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return emptyWidget
	}
	return out
}
