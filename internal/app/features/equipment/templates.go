// internal/app/features/equipment/templates.go
package equipment

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "equipment",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
