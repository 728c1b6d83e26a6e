// Package draw paints the duel onto an ANSI terminal. A Canvas holds
// sub-pixel intensities and turns them into half-block and shade cells;
// a Screen batches those cells and styled text into one frame.
package draw

// Point is a position in canvas logical space.
type Point struct {
	X, Y float64
}

// Cell glyphs. Bright sub-pixels render as half blocks, dim cells as shades.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockDark      = '▓'
	BlockMedium    = '▒'
	BlockLight     = '░'
	BlockEmpty     = ' '
)

// shades picks the glyph for a dim cell from its brighter sub-pixel,
// ordered by upper bound. Anything brighter is BlockDark.
var shades = [...]struct {
	below float32
	glyph rune
}{
	{0.05, BlockEmpty},
	{0.2, BlockLight},
	{0.35, BlockMedium},
}

func shadeGlyph(v float32) rune {
	for _, s := range shades {
		if v < s.below {
			return s.glyph
		}
	}
	return BlockDark
}

// Style colours a line of overlay text.
type Style uint8

const (
	Plain  Style = iota
	Title        // Game and match headings
	Winner       // A decided round
	Tied         // A round nobody won
	Faint        // Countdowns and hints
)

var styleSGR = [...]string{
	Plain:  "",
	Title:  "\033[96m",
	Winner: "\033[93m",
	Tied:   "\033[91m",
	Faint:  "\033[2m",
}

const sgrReset = "\033[0m"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
