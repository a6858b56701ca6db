package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// ReturnURL extracts the "return" value from the query or form and keeps it
// only when it is a safe local URL inside role's route set. Otherwise it
// falls back to the role's landing page.
//
// Example usage:
//
//	http.Redirect(w, r, navigation.ReturnURL(r, id.Role), http.StatusSeeOther)
func ReturnURL(r *http.Request, role string) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && Allowed(role, ret) {
		return ret
	}
	return Landing(role)
}

// TabOrDefault returns the "tab" query value when it is one of tabs,
// else the first tab.
func TabOrDefault(r *http.Request, tabs ...string) string {
	tab := strings.ToLower(query.Get(r, "tab"))
	for _, t := range tabs {
		if tab == t {
			return t
		}
	}
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0]
}
