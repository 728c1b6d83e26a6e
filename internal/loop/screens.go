package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/starduel/internal/draw"
	"github.com/tomz197/starduel/internal/object"
)

// drawUI draws the text overlay for the current scene.
func (r *Renderer) drawUI(m *Match) {
	termWidth := r.canvas.TerminalWidth()
	termHeight := r.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch m.Scene {
	case SceneTitle:
		r.drawTitleScreen(m, centerX, centerY)
	case ScenePlay:
		r.drawPlayingHUD(m, termWidth, termHeight)
	case SceneEndRound:
		r.drawPlayingHUD(m, termWidth, termHeight)
		r.drawEndRoundScreen(m, centerX, centerY)
	case SceneEndMatch:
		r.drawEndMatchScreen(m, centerX, centerY)
	}
}

// drawTitleScreen draws the title and both players' controls.
func (r *Renderer) drawTitleScreen(m *Match, centerX, centerY int) {
	titleY := centerY - 9
	r.screen.TextCentered(centerX, titleY, "S T A R D U E L", draw.Title)
	r.screen.TextCentered(centerX, titleY+2, "~ two ships, one star ~", draw.Plain)

	a := strings.ToUpper(m.Players[object.PlayerA].ShipType.String())
	b := strings.ToUpper(m.Players[object.PlayerB].ShipType.String())
	controls := []string{
		fmt.Sprintf("%-14s%-10s%s", "", a, b),
		fmt.Sprintf("%-14s%-10s%s", "Rotate", "A D", "J L / < >"),
		fmt.Sprintf("%-14s%-10s%s", "Thrust", "W", "I / Up"),
		fmt.Sprintf("%-14s%-10s%s", "Fire", "E F", "O /"),
		fmt.Sprintf("%-14s%-10s%s", "Hyperspace", "S", "K / Down"),
	}
	for i, line := range controls {
		r.screen.TextCentered(centerX, centerY+4+i, line, draw.Plain)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		r.screen.TextCentered(centerX, centerY+11, ">>  Press SPACE to Start  <<", draw.Plain)
	} else {
		r.screen.TextCentered(centerX, centerY+11, strings.Repeat(" ", 28), draw.Plain)
	}
	r.screen.TextCentered(centerX, centerY+13, fmt.Sprintf("First to %d  -  Q to quit", m.TargetScore), draw.Plain)
}

// drawPlayingHUD draws both players' status along the top edge.
// Fields use fixed widths so shrinking values don't leave residue.
func (r *Renderer) drawPlayingHUD(m *Match, termWidth, termHeight int) {
	left := playerStatus(m, object.PlayerA)
	r.screen.Text(2, 1, left, draw.Plain)

	right := playerStatus(m, object.PlayerB)
	col := termWidth - len([]rune(right))
	if col < 1 {
		col = 1
	}
	r.screen.Text(col, 1, right, draw.Plain)

	round := fmt.Sprintf("Round %-3d  First to %-3d", m.Round+1, m.TargetScore)
	r.screen.TextCentered(termWidth/2, termHeight, round, draw.Plain)
}

func playerStatus(m *Match, id object.PlayerID) string {
	p := &m.Players[id]
	ship := &p.Ship

	hyper := "ready"
	switch {
	case ship.Hyperspacing:
		hyper = "jump "
	case !ship.HyperspaceReady():
		hyper = "---  "
	}
	return fmt.Sprintf("%s %-6s %2d  fuel %s  torp %2d  hyp %s",
		id, strings.ToUpper(ship.Type.String()), m.Scores[id], fuelGauge(ship.FuelFraction()), ship.Torpedoes, hyper)
}

// fuelGauge renders a fraction as a fixed-width bar.
func fuelGauge(fraction float64) string {
	const width = 8
	filled := int(fraction*width + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

// drawEndRoundScreen shows the round result and the running score, and
// tags each ship with its player.
func (r *Renderer) drawEndRoundScreen(m *Match, centerX, centerY int) {
	style := draw.Winner
	if !m.Outcome.Decided {
		style = draw.Tied
	}
	r.screen.TextCentered(centerX, centerY-3, m.Banner, style)
	score := fmt.Sprintf("%d  :  %d", m.Scores[object.PlayerA], m.Scores[object.PlayerB])
	r.screen.TextCentered(centerX, centerY-1, score, draw.Plain)

	for i := range m.Players {
		ship := &m.Players[i].Ship
		if ship.Hyperspacing {
			continue
		}
		p := toCanvas(m, ship.Pos)
		col, row := r.canvas.LogicalToTerminal(p.X, p.Y-ship.Length-2)
		if row < 2 || col < 1 || col > r.canvas.TerminalWidth() {
			continue
		}
		r.screen.Text(col, row, m.Players[i].ID.String(), draw.Plain)
	}
}

// drawEndMatchScreen shows the match result and the restart countdown.
func (r *Renderer) drawEndMatchScreen(m *Match, centerX, centerY int) {
	r.screen.TextCentered(centerX, centerY-4, m.Banner, draw.Title)
	score := fmt.Sprintf("%s %d  :  %d %s",
		strings.ToUpper(m.Players[object.PlayerA].ShipType.String()), m.Scores[object.PlayerA],
		m.Scores[object.PlayerB], strings.ToUpper(m.Players[object.PlayerB].ShipType.String()))
	r.screen.TextCentered(centerX, centerY-2, score, draw.Plain)

	remaining := m.matchTimer.Remaining().Seconds()
	r.screen.TextCentered(centerX, centerY+1, fmt.Sprintf("New match in %.1f seconds...", remaining), draw.Faint)
}
