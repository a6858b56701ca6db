// internal/app/features/farmprofile/templates.go
package farmprofile

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "farmprofile",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
