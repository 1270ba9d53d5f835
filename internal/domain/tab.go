package domain

// Tab is one of the client's screens.
type Tab int

const (
	TabCamera Tab = iota
	TabDiet
	TabCommunity
	TabProfile
)

var tabNames = [...]string{
	TabCamera:    "camera",
	TabDiet:      "diet",
	TabCommunity: "community",
	TabProfile:   "profile",
}

// Tabs lists every tab in navigation order.
var Tabs = []Tab{TabCamera, TabDiet, TabCommunity, TabProfile}

// String returns the tab's path name.
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "unknown"
	}
	return tabNames[t]
}

// ParseTab resolves a tab from its path name.
func ParseTab(name string) (Tab, bool) {
	for i, n := range tabNames {
		if n == name {
			return Tab(i), true
		}
	}
	return 0, false
}
