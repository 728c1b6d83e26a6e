package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRecorder keeps the size of every Write it receives.
type writeRecorder struct {
	bytes.Buffer
	sizes []int
}

func (w *writeRecorder) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestScreen_TextIsPlacedInViewport(t *testing.T) {
	var buf bytes.Buffer
	c := NewCanvas(10, 4)
	c.SetOffset(2, 3)
	s := NewScreen(&buf, c)

	s.Text(1, 1, "hi", Plain)
	assert.Equal(t, len("\033[4;3Hhi"), s.Pending())
	assert.Empty(t, buf.String(), "nothing sent before Present")

	require.NoError(t, s.Present())
	assert.Equal(t, "\033[4;3Hhi", buf.String())
	assert.Zero(t, s.Pending())

	buf.Reset()
	s.Text(3, 2, "A", Winner)
	require.NoError(t, s.Present())
	assert.Equal(t, "\033[5;5H\033[93mA\033[0m", buf.String())
}

func TestScreen_TextCentered(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, NewCanvas(20, 4))

	s.TextCentered(10, 2, "abcd", Plain)
	s.TextCentered(1, 3, "wide text", Faint)
	require.NoError(t, s.Present())

	assert.Equal(t, "\033[2;8Habcd\033[3;1H\033[2mwide text\033[0m", buf.String())
}

func TestScreen_TextCellsRepaint(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, NewCanvas(4, 2))
	s.Paint()
	require.NoError(t, s.Present())

	buf.Reset()
	s.Paint()
	require.NoError(t, s.Present())
	assert.Empty(t, buf.String(), "unchanged canvas sends nothing")

	// Text over the canvas: the cells under it come back on the next paint.
	s.Text(2, 2, "ab", Plain)
	require.NoError(t, s.Present())
	buf.Reset()
	s.Paint()
	require.NoError(t, s.Present())
	assert.Equal(t, "\033[2;2H \033[2;3H ", buf.String())
}

func TestScreen_EnterWipeLeave(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, NewCanvas(3, 1))

	s.Enter()
	require.NoError(t, s.Present())
	assert.Equal(t, seqHideCursor+seqClear, buf.String())

	s.Paint()
	require.NoError(t, s.Present())
	buf.Reset()
	s.Paint()
	require.NoError(t, s.Present())
	require.Empty(t, buf.String())

	s.Wipe()
	s.Paint()
	require.NoError(t, s.Present())
	assert.True(t, strings.HasPrefix(buf.String(), seqClear))
	assert.Equal(t, 3, strings.Count(buf.String(), "H "), "every cell resent after a wipe")

	buf.Reset()
	require.NoError(t, s.Leave())
	assert.Equal(t, seqClear+seqShowCursor, buf.String())
}

func TestScreen_PresentIsChunked(t *testing.T) {
	w := &writeRecorder{}
	s := NewScreen(w, NewCanvas(4, 2))
	text := strings.Repeat("x", 3*maxChunkSize)

	s.Text(1, 1, text, Plain)
	require.NoError(t, s.Present())

	assert.Equal(t, "\033[1;1H"+text, w.String())
	assert.Equal(t, []int{maxChunkSize, maxChunkSize, maxChunkSize, len("\033[1;1H")}, w.sizes)
}

func TestScreen_PresentReportsWriteError(t *testing.T) {
	s := NewScreen(brokenWriter{}, NewCanvas(4, 2))
	s.Text(1, 1, "x", Plain)

	assert.Error(t, s.Present())
	assert.Zero(t, s.Pending(), "a failed frame is dropped")
}
