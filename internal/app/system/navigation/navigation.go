// Package navigation defines each role's route set and the helpers that keep
// redirects inside it.
package navigation

import (
	"net/url"
	"strings"
)

// Item is one sidebar entry.
type Item struct {
	Label string
	Path  string
	Icon  string
}

const (
	adminPrefix  = "/admin/"
	farmerPrefix = "/farmer/"
)

var adminItems = []Item{
	{Label: "System Overview", Path: "/admin/system-overview", Icon: "dashboard"},
	{Label: "Farmer Management", Path: "/admin/farmer-management", Icon: "people"},
	{Label: "Equipment Monitoring", Path: "/admin/equipment-monitoring", Icon: "router"},
	{Label: "Sales Analytics", Path: "/admin/sales-analytics", Icon: "analytics"},
	{Label: "Customer Support", Path: "/admin/customer-support", Icon: "support"},
	{Label: "Reports", Path: "/admin/reports", Icon: "assessment"},
	{Label: "System Settings", Path: "/admin/system-settings", Icon: "settings"},
	{Label: "User Management", Path: "/admin/user-management", Icon: "manage_accounts"},
}

var farmerItems = []Item{
	{Label: "Farm Overview", Path: "/farmer/farm-overview", Icon: "home"},
	{Label: "Door Automation", Path: "/farmer/door-automation", Icon: "door"},
	{Label: "Feed & Water", Path: "/farmer/feed-water", Icon: "water"},
	{Label: "Egg Production", Path: "/farmer/egg-production", Icon: "egg"},
	{Label: "Customer Orders", Path: "/farmer/customer-orders", Icon: "shopping_cart"},
	{Label: "My Products", Path: "/farmer/my-products", Icon: "inventory"},
	{Label: "Farm Profile", Path: "/farmer/farm-profile", Icon: "agriculture"},
	{Label: "Settings", Path: "/farmer/settings", Icon: "settings"},
}

// ForRole returns a copy of the sidebar entries for role.
// Unknown roles get no entries.
func ForRole(role string) []Item {
	var src []Item
	switch role {
	case "admin":
		src = adminItems
	case "farmer":
		src = farmerItems
	}
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Landing returns where role lands after sign in.
func Landing(role string) string {
	switch role {
	case "admin":
		return "/admin/system-overview"
	case "farmer":
		return "/farmer/farm-overview"
	}
	return "/login"
}

// Allowed reports whether path lies inside role's route set.
// Query strings are ignored; dot segments are rejected.
func Allowed(role, path string) bool {
	u, err := url.Parse(path)
	if err != nil || u.IsAbs() || u.Host != "" {
		return false
	}
	p := u.Path
	if strings.Contains(p, "..") || strings.Contains(p, "//") {
		return false
	}
	switch role {
	case "admin":
		return strings.HasPrefix(p, adminPrefix)
	case "farmer":
		return strings.HasPrefix(p, farmerPrefix)
	}
	return false
}

// Active reports whether item should be highlighted for the current path.
func (it Item) Active(current string) bool {
	if i := strings.IndexAny(current, "?#"); i >= 0 {
		current = current[:i]
	}
	return current == it.Path || strings.HasPrefix(current, it.Path+"/")
}
