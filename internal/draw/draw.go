// Package draw renders the playfield to a terminal using half-block characters.
package draw

// Point represents a 2D coordinate in canvas logical space
// (origin top-left, y grows downwards).
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a terminal palette entry. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorGray
)

// SGR parameters for each Color, as foreground and background.
var (
	fgCodes = [...]string{"39", "97", "91", "92", "93", "96", "95", "90"}
	bgCodes = [...]string{"49", "107", "101", "102", "103", "106", "105", "100"}
)

// ANSI sequences for text overlays.
const (
	ColorReset  = "\033[0m"
	TextBold    = "\033[1m"
	TextDim     = "\033[2m"
	TextReverse = "\033[7m"
)

// Fg returns the escape sequence selecting c as the foreground color.
func Fg(c Color) string {
	if int(c) >= len(fgCodes) {
		c = ColorNone
	}
	return "\033[" + fgCodes[c] + "m"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
