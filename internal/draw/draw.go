// Package draw renders the play field to an ANSI terminal using half-block
// characters for double vertical resolution.
package draw

// Point represents a 2D coordinate in canvas space: x grows right, y grows
// down.
type Point struct {
	X, Y float64
}

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// ANSI colors used by the HUD.
const (
	ColorReset      = "\033[0m"
	ColorRed        = "\033[31m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// bayer2 is a 2x2 ordered dither matrix scaled to [0, 1).
var bayer2 = [2][2]float64{{0, 0.5}, {0.75, 0.25}}

// dithered reports whether pixel (x, y) is lit at the given density.
func dithered(x, y int, density float64) bool {
	return density > bayer2[y&1][x&1]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
