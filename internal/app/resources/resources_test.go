package resources

import (
	"html/template"
	"testing"
)

func TestSharedTemplatesParse(t *testing.T) {
	tmpl, err := template.ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		t.Fatalf("parse shared templates: %v", err)
	}
	for _, name := range []string{"page_head", "page_foot", "sidebar", "topbar", "flash", "csrf_field", "metric_cards", "alert_list", "level_bars", "tabs"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("missing shared template %q", name)
		}
	}
}
