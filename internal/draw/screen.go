package draw

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// maxChunkSize caps a single write so frames stream evenly over SSH; it
// stays under a typical 1500 byte MTU.
const maxChunkSize = 1400

// Screen assembles one frame of terminal output for a canvas: changed
// cells, the viewport border and text overlays. Nothing reaches the
// terminal until Present.
type Screen struct {
	out    io.Writer
	canvas *Canvas
	frame  strings.Builder
	num    [20]byte
}

// NewScreen returns a screen drawing canvas to w.
func NewScreen(w io.Writer, canvas *Canvas) *Screen {
	return &Screen{out: w, canvas: canvas}
}

// Enter hides the cursor and starts from a blank terminal.
func (s *Screen) Enter() {
	s.frame.WriteString(seqHideCursor)
	s.Wipe()
}

// Leave blanks the terminal, restores the cursor and presents.
func (s *Screen) Leave() error {
	s.frame.WriteString(seqClear)
	s.frame.WriteString(seqShowCursor)
	return s.Present()
}

// Wipe clears the terminal and makes the next Paint send every cell.
func (s *Screen) Wipe() {
	s.frame.WriteString(seqClear)
	s.canvas.ForceRedraw()
}

// Paint queues the canvas cells that changed since the last Paint, then
// the border around the viewport.
func (s *Screen) Paint() {
	s.canvas.Render(&s.frame)
	s.canvas.RenderBorder(&s.frame)
}

// Text writes text at the 1-based viewport cell (col, row). The covered
// cells are marked on the canvas so they repaint once the text is gone.
func (s *Screen) Text(col, row int, text string, style Style) {
	s.moveTo(col, row)
	if sgr := styleSGR[style]; sgr != "" {
		s.frame.WriteString(sgr)
		s.frame.WriteString(text)
		s.frame.WriteString(sgrReset)
	} else {
		s.frame.WriteString(text)
	}
	s.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(text))
}

// TextCentered writes text centered on col, never left of the viewport.
func (s *Screen) TextCentered(col, row int, text string, style Style) {
	start := max(1, col-utf8.RuneCountInString(text)/2)
	s.Text(start, row, text, style)
}

func (s *Screen) moveTo(col, row int) {
	s.frame.WriteString("\033[")
	s.frame.Write(strconv.AppendInt(s.num[:0], int64(row+s.canvas.offsetRow), 10))
	s.frame.WriteByte(';')
	s.frame.Write(strconv.AppendInt(s.num[:0], int64(col+s.canvas.offsetCol), 10))
	s.frame.WriteByte('H')
}

// Pending returns the number of queued bytes.
func (s *Screen) Pending() int {
	return s.frame.Len()
}

// Present sends the queued frame in chunks of at most maxChunkSize.
func (s *Screen) Present() error {
	data := s.frame.String()
	s.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(s.out, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
