package loop

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starduel/internal/draw"
	"github.com/tomz197/starduel/internal/input"
	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/physics"
)

func TestRenderer_Scenes(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, draw.FixedTermSize(120, 50))
	m := NewMatch(DefaultOptions())

	require.NoError(t, r.Draw(m))
	assert.Contains(t, buf.String(), "S T A R D U E L")

	buf.Reset()
	m.Update(config.TickTime, input.Frame{Confirm: true})
	require.NoError(t, r.Draw(m))
	out := buf.String()
	assert.Contains(t, out, "Round 1")
	assert.Contains(t, out, "WEDGE")
	assert.Contains(t, out, "NEEDLE")

	m.Ship(object.PlayerB).Pos = physics.Vec2{X: 1, Y: 0}
	step(m)
	require.Equal(t, SceneEndRound, m.Scene)

	buf.Reset()
	require.NoError(t, r.Draw(m))
	assert.Contains(t, buf.String(), "\033[93mWEDGE WINS THE ROUND\033[0m")
	assert.Contains(t, buf.String(), "1  :  0")
}

func TestRenderer_OnlyChangedCellsRedrawn(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, draw.FixedTermSize(120, 50))
	m := newPlayingMatch(t)

	require.NoError(t, r.Draw(m))
	first := buf.Len()

	buf.Reset()
	require.NoError(t, r.Draw(m))
	assert.Less(t, buf.Len(), first)
}

func TestRenderer_LargeTerminalGetsBorder(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, draw.FixedTermSize(config.MaxTermWidth+20, config.MaxTermHeight+10))
	m := NewMatch(DefaultOptions())

	require.NoError(t, r.Draw(m))
	assert.Contains(t, buf.String(), "┌")
	assert.Equal(t, config.MaxTermWidth, r.Canvas().TerminalWidth())
	assert.Equal(t, config.MaxTermHeight, r.Canvas().TerminalHeight())
}

func TestRenderer_ResizeFollowsTerminal(t *testing.T) {
	var buf bytes.Buffer
	width := 80
	r := NewRenderer(&buf, func() (int, int, error) { return width, 30, nil })
	m := NewMatch(DefaultOptions())

	require.NoError(t, r.Draw(m))
	assert.Equal(t, 80, r.Canvas().TerminalWidth())

	width = 100
	require.NoError(t, r.Draw(m))
	assert.Equal(t, 100, r.Canvas().TerminalWidth())
}

func TestRenderer_OpenAndClose(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, draw.FixedTermSize(80, 24))

	require.NoError(t, r.Open())
	assert.Equal(t, "\033[?25l\033[H\033[2J", buf.String())

	buf.Reset()
	require.NoError(t, r.Close())
	assert.Equal(t, "\033[H\033[2J\033[?25h", buf.String())
}
