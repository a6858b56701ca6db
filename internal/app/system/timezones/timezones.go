// Package timezones holds the curated list of zones offered in the settings
// screens, grouped by region for <optgroup> rendering.
package timezones

import (
	"sort"
	"sync"
)

type Zone struct {
	ID     string
	Label  string
	Region string
}

type ZoneGroup struct {
	Region string
	Zones  []Zone
}

// curated is kept in display order within each region.
var curated = []Zone{
	{ID: "America/New_York", Label: "Eastern Time (US & Canada)", Region: "North America"},
	{ID: "America/Chicago", Label: "Central Time (US & Canada)", Region: "North America"},
	{ID: "America/Denver", Label: "Mountain Time (US & Canada)", Region: "North America"},
	{ID: "America/Phoenix", Label: "Arizona", Region: "North America"},
	{ID: "America/Los_Angeles", Label: "Pacific Time (US & Canada)", Region: "North America"},
	{ID: "America/Anchorage", Label: "Alaska", Region: "North America"},
	{ID: "Pacific/Honolulu", Label: "Hawaii", Region: "North America"},
	{ID: "America/Toronto", Label: "Toronto", Region: "North America"},
	{ID: "America/Mexico_City", Label: "Mexico City", Region: "North America"},
	{ID: "America/Sao_Paulo", Label: "Sao Paulo", Region: "South America"},
	{ID: "America/Argentina/Buenos_Aires", Label: "Buenos Aires", Region: "South America"},
	{ID: "Europe/London", Label: "London", Region: "Europe"},
	{ID: "Europe/Paris", Label: "Paris", Region: "Europe"},
	{ID: "Europe/Berlin", Label: "Berlin", Region: "Europe"},
	{ID: "Europe/Madrid", Label: "Madrid", Region: "Europe"},
	{ID: "Africa/Nairobi", Label: "Nairobi", Region: "Africa"},
	{ID: "Africa/Johannesburg", Label: "Johannesburg", Region: "Africa"},
	{ID: "Asia/Kolkata", Label: "India Standard Time", Region: "Asia"},
	{ID: "Asia/Tokyo", Label: "Tokyo", Region: "Asia"},
	{ID: "Asia/Shanghai", Label: "Beijing", Region: "Asia"},
	{ID: "Australia/Sydney", Label: "Sydney", Region: "Oceania"},
	{ID: "Pacific/Auckland", Label: "Auckland", Region: "Oceania"},
	{ID: "UTC", Label: "Coordinated Universal Time", Region: "Other"},
}

var (
	loadOnce sync.Once
	byID     map[string]Zone

	groupsOnce sync.Once
	groups     []ZoneGroup
)

func load() {
	loadOnce.Do(func() {
		byID = make(map[string]Zone, len(curated))
		for _, z := range curated {
			byID[z.ID] = z
		}
	})
}

// All returns the curated list of zones in a stable order.
func All() []Zone {
	return curated
}

// Label returns the human-friendly label for an ID, or the ID itself if not found.
func Label(id string) string {
	load()
	if z, ok := byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether the given ID exists in the curated list.
func Valid(id string) bool {
	load()
	_, ok := byID[id]
	return ok
}

func buildGroups() {
	groupsOnce.Do(func() {
		byRegion := make(map[string][]Zone)
		order := make([]string, 0)
		for _, z := range curated {
			region := z.Region
			if region == "" {
				region = "Other"
			}
			if _, seen := byRegion[region]; !seen {
				order = append(order, region)
			}
			byRegion[region] = append(byRegion[region], z)
		}

		out := make([]ZoneGroup, 0, len(order))
		for _, region := range order {
			out = append(out, ZoneGroup{Region: region, Zones: byRegion[region]})
		}

		// "Other" always sorts last; the rest alphabetically.
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Region == "Other" || out[j].Region == "Other" {
				return out[j].Region == "Other" && out[i].Region != "Other"
			}
			return out[i].Region < out[j].Region
		})

		groups = out
	})
}

// Groups returns the curated zones grouped by region. The groups are built
// lazily and cached for reuse.
func Groups() []ZoneGroup {
	buildGroups()
	return groups
}
