// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/coophub/internal/app/system/viewdata"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, nil, "Sign in required", backURL),
		Message: "Please sign in to continue.",
	}
	data.BackURL = backURL
	render(w, r, http.StatusUnauthorized, "error_unauthorized", data)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, nil, "Access denied", "/"),
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}
	render(w, r, http.StatusForbidden, "error_forbidden", data)
}

// RenderServerError shows the generic failure page with an incident id the
// user can quote.
func RenderServerError(w http.ResponseWriter, r *http.Request, status int, msg, incident, backURL string) {
	data := pageData{
		BaseVM:   viewdata.NewBaseVM(r, nil, "Something went wrong", "/"),
		Message:  msg,
		Incident: incident,
	}
	if backURL != "" {
		data.BackURL = backURL
	}
	render(w, r, status, "error_server", data)
}
