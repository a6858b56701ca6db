package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"email lowercased", Email, "  John@Example.COM ", "john@example.com"},
		{"email blank", Email, "   ", ""},
		{"name keeps case", Name, "  John Smith  ", "John Smith"},
		{"name blank", Name, "", ""},
		{"status lowercased", Status, "  Inactive  ", "inactive"},
		{"status empty", Status, "", ""},
		{"role admin", Role, "ADMIN", "admin"},
		{"role farmer", Role, "  Farmer  ", "farmer"},
		{"role viewer", Role, "Viewer", "viewer"},
		{"query keeps case", QueryParam, "  Green Valley Farm ", "Green Valley Farm"},
		{"filter door", Filter, "door", "door"},
		{"filter feed", Filter, "  Feed  ", "feed"},
		{"filter in-progress", Filter, "In-Progress", "in-progress"},
		{"filter all", Filter, "all", ""},
		{"filter ALL", Filter, "  ALL ", ""},
		{"filter blank", Filter, "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
