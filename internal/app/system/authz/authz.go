// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/coophub/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), display name, farm name, and a found flag.
// If no user is present in context it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role, name, farm string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.FarmName, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleAdmin
}

// IsFarmer reports whether the current request's user is a farmer.
func IsFarmer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleFarmer
}

// FarmScope returns the farm a farmer's requests are scoped to.
// ok is false for anyone without a farm (admins, visitors).
func FarmScope(r *http.Request) (farm string, ok bool) {
	role, _, farm, signedIn := UserCtx(r)
	if !signedIn || role != auth.RoleFarmer || farm == "" {
		return "", false
	}
	return farm, true
}
