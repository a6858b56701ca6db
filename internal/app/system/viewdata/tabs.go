package viewdata

// Tab is one entry of a page's tab strip.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Tabs builds a tab strip from key/label pairs, marking active.
//
//	viewdata.Tabs(tab, "tickets", "All Tickets", "open", "Open", "resolved", "Resolved")
func Tabs(active string, keyLabels ...string) []Tab {
	out := make([]Tab, 0, len(keyLabels)/2)
	for i := 0; i+1 < len(keyLabels); i += 2 {
		out = append(out, Tab{Key: keyLabels[i], Label: keyLabels[i+1], Active: keyLabels[i] == active})
	}
	return out
}
