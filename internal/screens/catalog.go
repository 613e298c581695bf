package screens

const (
	ScreenHome           = "home"
	ScreenRegister       = "register"
	ScreenSearch         = "search"
	ScreenPersons        = "persons"
	ScreenUpdateFeatures = "update-features"
	ScreenRecognition    = "recognition"
	ScreenIdentification = "identification"
	ScreenStats          = "stats"
	ScreenAdmin          = "admin"
	ScreenHealth         = "health"
	ScreenSystemInfo     = "system-info"
	ScreenAdvancedConfig = "advanced-config"
	ScreenTools          = "tools"
	ScreenData           = "data"
)

// Entry describes one navigable screen.
type Entry struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	RequiresInput bool   `json:"requires_input"`
}

var catalog = []Entry{
	{ScreenHome, "Facial Recognition", "Service status and navigation", false},
	{ScreenRegister, "Register Person", "Add a new person to the system", true},
	{ScreenRecognition, "Facial Recognition", "Compare a photo with a specific person", true},
	{ScreenIdentification, "Identify Person", "Identify a person against the whole database", true},
	{ScreenSearch, "Search Person", "Search by email or student id", true},
	{ScreenPersons, "Person List", "See every registered person", false},
	{ScreenUpdateFeatures, "Update Features", "Re-extract a person's features from a new photo", true},
	{ScreenStats, "Statistics", "System statistics", false},
	{ScreenHealth, "Health Check", "Service and component health", false},
	{ScreenSystemInfo, "System Information", "Service version, configuration and capabilities", false},
	{ScreenTools, "System Tools", "Complete set of administrative utilities", true},
	{ScreenAdmin, "Administration", "Advanced management and configuration", false},
	{ScreenAdvancedConfig, "Advanced Configuration", "Recognition thresholds, weights and directories", false},
	{ScreenData, "Data Management", "Export, import and manage system data", false},
}

// Catalog lists every screen in navigation order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func title(screen string) string {
	if e, ok := Lookup(screen); ok {
		return e.Title
	}
	return screen
}
