package termcore

import "image/color"

// Color identifies a cell color: the 16 standard ANSI palette entries
// (0-7 normal, 8-15 bright) or the terminal default.
type Color int

const (
	ColorDefault Color = -1

	ColorBlack Color = iota - 1
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// DefaultPalette is the standard 16-color palette: 8 normal (0-7) and
// 8 bright (8-15) colors.
var DefaultPalette = [16]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// ResolveColor converts a Color to RGBA using the default palette.
// ColorDefault (and any out-of-range value) resolves to the default
// foreground or background depending on fg.
func ResolveColor(c Color, fg bool) color.RGBA {
	if c >= 0 && int(c) < len(DefaultPalette) {
		return DefaultPalette[c]
	}
	if fg {
		return DefaultForeground
	}
	return DefaultBackground
}
