package core

// Color is a semantic foreground color for a screen cell. The platform layer
// maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWater         // Unfired cells
	ColorShip          // Intact ship segments
	ColorHit           // Hit ship segments
	ColorMiss          // Misses
	ColorCursor        // Target cursor brackets
	ColorLabel         // Board coordinates
	ColorTitle         // Titles and headings
	ColorStatus        // Toolbar text
	ColorError         // Rejected input
)
