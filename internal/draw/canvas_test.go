package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas_PlotKeepsBrightest(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Plot(2, 2, 0.3)
	c.Plot(2, 2, 0.9)
	c.Plot(2, 2, 0.5)
	assert.InDelta(t, 0.9, c.At(2, 2), 1e-6)

	c.Plot(3, 3, 4)
	assert.InDelta(t, 1.0, c.At(3, 3), 1e-6)

	c.Plot(4, 4, -1)
	assert.Zero(t, c.At(4, 4))

	// Off-canvas plots are dropped.
	c.Plot(-1, 2, 1)
	c.Plot(100, 2, 1)
	assert.Zero(t, c.At(-1, 2))

	c.Clear()
	assert.Zero(t, c.At(2, 2))
}

func TestCanvas_Scaling(t *testing.T) {
	c := NewScaledCanvas(20, 10, 40, 40)
	assert.Equal(t, 20, c.TerminalWidth())
	assert.Equal(t, 10, c.TerminalHeight())
	assert.Equal(t, 40.0, c.LogicalWidth())

	c.Plot(10, 20, 1)
	assert.InDelta(t, 1.0, c.At(10, 20), 1e-6)

	col, row := c.LogicalToTerminal(10, 20)
	assert.Equal(t, 6, col)
	assert.Equal(t, 6, row)
}

func TestCellRune(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom float32
		want        rune
	}{
		{"empty", 0, 0, BlockEmpty},
		{"both solid", 1, 0.6, BlockFull},
		{"top only", 0.8, 0.1, BlockUpperHalf},
		{"bottom only", 0.2, 0.5, BlockLowerHalf},
		{"faint", 0.1, 0, BlockLight},
		{"medium", 0, 0.3, BlockMedium},
		{"dark", 0.4, 0.45, BlockDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellRune(tt.top, tt.bottom))
		})
	}
}

func TestCanvas_RenderDiff(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer

	// First render paints every cell.
	c.Render(&buf)
	assert.Equal(t, 8, strings.Count(buf.String(), "\033["))

	buf.Reset()
	c.Render(&buf)
	assert.Empty(t, buf.String(), "nothing changed")

	c.Plot(0, 0, 1)
	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, "\033[1;1H▀", buf.String())

	c.MarkTextDirty(2, 2, 2)
	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, "\033[2;2H \033[2;3H ", buf.String())

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, 8, strings.Count(buf.String(), "\033["))
}

func TestCanvas_RenderOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(5, 3)
	c.Plot(1, 1, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	assert.Contains(t, buf.String(), "\033[4;7H▄")
}

func TestCanvas_ResizeForcesRedraw(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer
	c.Render(&buf)

	c.Resize(4, 2)
	buf.Reset()
	c.Render(&buf)
	assert.Empty(t, buf.String(), "same size keeps the previous frame")

	c.Resize(3, 3)
	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, 9, strings.Count(buf.String(), "\033["))
}

func TestCanvas_FilledPolygon(t *testing.T) {
	c := NewCanvas(20, 10)
	square := []Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}

	c.DrawPolygon(square, 0.7, true)
	assert.InDelta(t, 0.7, c.At(10, 10), 1e-6)
	assert.InDelta(t, 0.7, c.At(5, 5), 1e-6)
	assert.Zero(t, c.At(2, 2))

	c.Clear()
	c.DrawPolygon(square, 0.7, false)
	assert.Zero(t, c.At(10, 10), "outline only")
	assert.InDelta(t, 0.7, c.At(10, 5), 1e-6)
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 9}, 1)
	for i := 0; i < 10; i++ {
		assert.InDelta(t, 1.0, c.At(float64(i), float64(i)), 1e-6)
	}
	assert.Zero(t, c.At(9, 0))
}

func TestCanvas_RenderBorder(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer

	c.RenderBorder(&buf)
	assert.Empty(t, buf.String(), "no room for a border")

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	assert.Contains(t, out, "\033[1;1H┌────┐")
	assert.Contains(t, out, "\033[4;1H└────┘")
	assert.Contains(t, out, "\033[2;1H│\033[2;6H│")
	assert.Contains(t, out, "\033[3;1H│\033[3;6H│")
}
