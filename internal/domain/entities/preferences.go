package entities

// Font size bounds for rendered transcripts
const (
	FontSizeStep    = 1
	FontSizeMin     = 12
	FontSizeMax     = 20
	FontSizeDefault = 16
)

// Theme is the UI color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences holds session-wide display preferences with a
// load-on-start/persist-on-change lifecycle
type Preferences struct {
	Theme    Theme `json:"theme"`
	FontSize int   `json:"font_size"`
}

// DefaultPreferences returns the preferences used before any are persisted
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, FontSize: FontSizeDefault}
}

// ClampFontSize bounds a requested font size to the allowed range
func ClampFontSize(size int) int {
	if size < FontSizeMin {
		return FontSizeMin
	}
	if size > FontSizeMax {
		return FontSizeMax
	}
	return size
}
