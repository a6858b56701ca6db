// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"net/http"

	settingsstore "github.com/dalemusser/coophub/internal/app/store/settings"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
)

// NavItem is a sidebar link with its highlight state resolved.
type NavItem struct {
	Label  string
	Path   string
	Icon   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, db, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site settings (from database)
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string
	FarmName   string // farmers only

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavItem

	// CSRF protection
	CSRFToken string

	// One-line status banners
	Success string
	Error   string
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - db: database for loading the system name (can be nil for defaults)
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, db *mongo.Database, title, backDefault string) BaseVM {
	role, name, farm, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		FarmName:    farm,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if signedIn {
		vm.Nav = navFor(role, r.URL.Path)
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		vm.SiteName = settingsstore.New(db).SiteName(ctx)
	}

	return vm
}

func navFor(role, current string) []NavItem {
	items := navigation.ForRole(role)
	out := make([]NavItem, 0, len(items))
	for _, it := range items {
		out = append(out, NavItem{
			Label:  it.Label,
			Path:   it.Path,
			Icon:   it.Icon,
			Active: it.Active(current),
		})
	}
	return out
}

// successMessages maps the ?success= codes used by redirect-after-post
// handlers to banner text.
var successMessages = map[string]string{
	"saved":     "Changes saved.",
	"created":   "Created successfully.",
	"updated":   "Updated successfully.",
	"deleted":   "Deleted.",
	"toggled":   "Status updated.",
	"accepted":  "Order accepted and delivery scheduled.",
	"declined":  "Order declined.",
	"delivered": "Order marked as delivered.",
	"replied":   "Reply sent.",
	"assigned":  "Equipment assigned.",
	"added":     "Added successfully.",
}

// WithSuccess sets vm.Success from the request's ?success= code.
// Unknown codes are ignored.
func (vm *BaseVM) WithSuccess(r *http.Request) {
	if msg, ok := successMessages[r.URL.Query().Get("success")]; ok {
		vm.Success = msg
	}
}

// GetSiteName returns the system name from settings, or the default if not available.
func GetSiteName(ctx context.Context, db *mongo.Database) string {
	if db == nil {
		return models.DefaultSiteName
	}
	return settingsstore.New(db).SiteName(ctx)
}
