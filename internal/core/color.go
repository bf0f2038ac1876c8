package core

// Color is the foreground color of a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the flappy scene.
const (
	ColorDefault Color = iota
	ColorSky
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorOrange
	ColorWhite
	ColorBrightWhite
	ColorRed
	ColorGray
)
