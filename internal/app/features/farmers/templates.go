// internal/app/features/farmers/templates.go
package farmers

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "farmers",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
