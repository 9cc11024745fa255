package core

// Color is a terminal color value understood by the platform renderer:
// an ANSI 256 index ("208") or a hex triplet ("#70c5ce").
// The empty string means the terminal default.
type Color string

// Predefined colors for HUD and sprites.
const (
	ColorDefault     Color = ""
	ColorBlack       Color = "0"
	ColorRed         Color = "1"
	ColorGreen       Color = "2"
	ColorYellow      Color = "3"
	ColorWhite       Color = "7"
	ColorGray        Color = "245"
	ColorBrightGreen Color = "10"
	ColorBrightWhite Color = "15"
	ColorOrange      Color = "208"
)
