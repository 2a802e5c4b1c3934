package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for preview elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// itemPalette is cycled through by plan index so neighbouring items differ.
var itemPalette = []Color{
	ColorBrightYellow,
	ColorBrightCyan,
	ColorBrightMagenta,
	ColorOrange,
	ColorBrightWhite,
	ColorBrightRed,
	ColorBrightBlue,
}

// PaletteColor returns a stable color for the given item index.
func PaletteColor(index int) Color {
	if index < 0 {
		index = -index
	}
	return itemPalette[index%len(itemPalette)]
}
