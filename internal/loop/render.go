package loop

import (
	"image/color"
	"io"
	"math"

	"github.com/tomz197/starduel/internal/draw"
	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/particle"
	"github.com/tomz197/starduel/internal/physics"
)

// Renderer draws a Match to a terminal. It keeps the canvas between frames
// so only changed cells are sent.
type Renderer struct {
	canvas    *draw.Canvas
	screen    *draw.Screen
	termSize  draw.TermSizeFunc
	prevScene Scene
}

// NewRenderer creates a renderer writing to w. termSize reports the
// terminal size each frame; nil uses the local terminal.
func NewRenderer(w io.Writer, termSize draw.TermSizeFunc) *Renderer {
	if termSize == nil {
		termSize = draw.LocalTermSize
	}
	canvas := draw.NewScaledCanvas(0, 0, config.PlayfieldWidth, config.PlayfieldHeight)
	r := &Renderer{
		canvas:    canvas,
		screen:    draw.NewScreen(w, canvas),
		termSize:  termSize,
		prevScene: -1,
	}
	r.fit()
	return r
}

// Canvas exposes the render canvas.
func (r *Renderer) Canvas() *draw.Canvas { return r.canvas }

// Open hides the cursor and blanks the terminal before the first frame.
func (r *Renderer) Open() error {
	r.screen.Enter()
	return r.screen.Present()
}

// Close blanks the terminal and gives the cursor back.
func (r *Renderer) Close() error {
	return r.screen.Leave()
}

// Draw renders one frame of the match.
func (r *Renderer) Draw(m *Match) error {
	// A resize or a scene change swaps the whole picture; start clean.
	if r.fit() || m.Scene != r.prevScene {
		r.screen.Wipe()
		r.prevScene = m.Scene
	}

	r.canvas.Clear()
	r.drawField(m)
	r.screen.Paint()
	r.drawUI(m)

	return r.screen.Present()
}

// fit follows the terminal size, clamped to the max render resolution.
// It reports whether the viewport moved or changed size.
func (r *Renderer) fit() bool {
	width, height, err := r.termSize()
	if err != nil {
		return false
	}
	return r.canvas.Fit(draw.FitViewport(width, height, config.MaxTermWidth, config.MaxTermHeight))
}

// toCanvas converts a playfield position to canvas logical coordinates.
func toCanvas(m *Match, p physics.Vec2) draw.Point {
	return draw.Point{X: p.X - m.Bounds.Min.X, Y: p.Y - m.Bounds.Min.Y}
}

func (r *Renderer) drawField(m *Match) {
	r.drawStar(m)
	if m.Scene == SceneTitle {
		return
	}

	for _, t := range m.Torpedoes.Items() {
		p := toCanvas(m, t.Pos)
		r.canvas.Plot(p.X, p.Y, 1)
		r.canvas.Plot(p.X+0.5, p.Y, 0.6)
		r.canvas.Plot(p.X, p.Y+0.5, 0.6)
	}

	for i := range m.Players {
		r.drawShip(m, &m.Players[i].Ship)
	}

	for _, p := range m.Particles.Particles() {
		pos := toCanvas(m, p.Pos)
		r.canvas.Plot(pos.X, pos.Y, particleIntensity(&p))
	}
}

// drawStar draws the star as a filled disc with a faint corona and slowly
// turning spokes.
func (r *Renderer) drawStar(m *Match) {
	center := toCanvas(m, m.Star.Pos)
	radius := m.Star.Radius

	const segments = 16
	pts := r.canvas.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = draw.Point{X: center.X + math.Cos(a)*radius, Y: center.Y + math.Sin(a)*radius}
	}
	r.canvas.DrawPolygon(pts, 0.8, true)
	r.canvas.DrawCircle(center, radius*1.6, 0.12, 24)

	for k := 0; k < 4; k++ {
		dir := physics.FromAngle(m.Star.Rotation+float64(k)*math.Pi/2, 1)
		inner := draw.Point{X: center.X + dir.X*radius*1.2, Y: center.Y + dir.Y*radius*1.2}
		outer := draw.Point{X: center.X + dir.X*radius*2, Y: center.Y + dir.Y*radius*2}
		r.canvas.DrawLine(inner, outer, 0.3)
	}
}

// drawShip draws the rotated hull outline. Ships in hyperspace are not
// drawn; wrecks are drawn dim.
func (r *Renderer) drawShip(m *Match, s *object.Ship) {
	if s.Hyperspacing {
		return
	}
	intensity := 1.0
	if s.Destroyed {
		intensity = 0.3
	}

	outline := object.HullFor(s.Type).Outline
	pts := r.canvas.BorrowPoints(len(outline))
	for i, v := range outline {
		pts[i] = toCanvas(m, s.Pos.Add(v.Rotate(s.Rotation)))
	}
	r.canvas.DrawPolygon(pts, intensity, false)
}

// particleIntensity maps a particle's fade and color to canvas brightness.
func particleIntensity(p *particle.Particle) float64 {
	return p.Alpha() * (0.4 + 0.6*luminance(p.Color))
}

func luminance(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
