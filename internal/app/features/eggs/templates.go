// internal/app/features/eggs/templates.go
package eggs

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "eggs",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
