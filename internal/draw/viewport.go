package draw

import (
	"os"

	"golang.org/x/term"
)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// LocalTermSize reads the size of the process's own terminal.
var LocalTermSize TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) { return width, height, nil }
}

// Viewport is the block of terminal cells the canvas occupies. Col and Row
// are 0-based: the first canvas cell sits at (Col+1, Row+1).
type Viewport struct {
	Width, Height int
	Col, Row      int
}

// FitViewport centers a viewport of at most maxWidth x maxHeight cells in
// a termWidth x termHeight terminal.
func FitViewport(termWidth, termHeight, maxWidth, maxHeight int) Viewport {
	v := Viewport{
		Width:  max(0, min(termWidth, maxWidth)),
		Height: max(0, min(termHeight, maxHeight)),
	}
	v.Col = max(0, (termWidth-v.Width)/2)
	v.Row = max(0, (termHeight-v.Height)/2)
	return v
}

// Viewport returns where the canvas currently sits.
func (c *Canvas) Viewport() Viewport {
	return Viewport{Width: c.termWidth, Height: c.termHeight, Col: c.offsetCol, Row: c.offsetRow}
}

// Fit moves and resizes the canvas to v and reports whether anything
// changed. A changed viewport leaves stale cells on the terminal, so
// callers wipe the screen when Fit returns true.
func (c *Canvas) Fit(v Viewport) bool {
	changed := v != c.Viewport()
	c.Resize(v.Width, v.Height)
	c.SetOffset(v.Col, v.Row)
	return changed
}
