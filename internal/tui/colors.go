package tui

// Color constants for the tend TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (todo content, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Active borders, selected context
	ColorAccentBright = "#A78BFA" // Cursor, highlights

	// State Colors
	ColorError   = "#EF4444" // Store and validation errors
	ColorSuccess = "#22C55E" // Confirmations

	// ColorInputBorder is used when the active context has no color of its own.
	ColorInputBorder = "#DDDDDD"
)
