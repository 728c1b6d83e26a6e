package loop

import (
	"time"

	"github.com/tomz197/starduel/internal/input"
	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/particle"
)

// Update advances the match by one frame and returns the intents raised
// during it. The returned slice is reused by the next call.
func (m *Match) Update(dt time.Duration, frame input.Frame) []object.Event {
	m.events.Reset()
	if dt > config.MaxFrameStep {
		dt = config.MaxFrameStep
	}
	if dt < 0 {
		dt = 0
	}
	m.Clock += dt
	m.Star.Update(dt)

	switch m.Scene {
	case SceneTitle:
		if frame.Confirm {
			m.startPlay()
		}
	case ScenePlay:
		m.updatePlay(dt, frame)
	case SceneEndRound:
		m.updateEndRound(dt)
	case SceneEndMatch:
		m.updateEndMatch(dt)
	}

	m.Particles.Update(dt)
	return m.events
}

// updatePlay runs the simulation pipeline: ships, torpedoes, collisions,
// then effects for whatever happened.
func (m *Match) updatePlay(dt time.Duration, frame input.Frame) {
	for i := range m.Players {
		p := &m.Players[i]
		p.Input = frame.Players[i]
		p.Ship.Update(object.UpdateContext{
			Delta:     dt,
			Now:       m.Clock,
			Input:     p.Input,
			Owner:     p.ID,
			Bounds:    m.Bounds,
			Gravity:   m.Gravity,
			Star:      &m.Star,
			Torpedoes: m.Torpedoes,
			Rand:      m.rng,
			Events:    &m.events,
		})
	}

	m.Torpedoes.Update(dt, m.Clock, m.Bounds)
	m.resolveCollisions()

	for _, ev := range m.events {
		switch ev.Type {
		case object.EventHyperspaceEnter, object.EventHyperspaceExit:
			m.Particles.SpawnBurst(particle.EmitterHyperspace, ev.Pos)
		}
	}
	m.Particles.SyncThrust(m.ships[:])
}

// startPlay puts fresh ships on the field and clears torpedoes and effects.
func (m *Match) startPlay() {
	for i := range m.Players {
		m.Players[i].Respawn()
	}
	m.Torpedoes.Clear()
	m.Particles.Reset()
	m.Outcome = Outcome{}
	m.Banner = ""
	m.roundTimer.Reset()
	m.matchTimer.Reset()
	m.cueFired = false

	m.setScene(ScenePlay)
	m.events.Emit(object.Event{Type: object.EventRoundStart})
	m.logger.Info("round started", "round", m.Round+1)
}

// endRound moves Play to End_Round. Further destructions in the same frame
// still score but keep the first outcome.
func (m *Match) endRound(o Outcome) {
	if m.Scene != ScenePlay {
		return
	}
	m.Round++
	m.Outcome = o
	m.Banner = roundBanner(o)
	m.roundTimer.Restart()
	m.cueFired = false

	for i := range m.Players {
		ship := &m.Players[i].Ship
		if ship.Thrusting {
			ship.Thrusting = false
			m.events.Emit(object.Event{Type: object.EventThrustStop, Player: m.Players[i].ID, Ship: ship.Type, Pos: ship.Pos})
		}
	}

	m.setScene(SceneEndRound)
	m.events.Emit(object.Event{Type: object.EventRoundOver, Player: o.Winner, Ship: o.Ship})
	m.logger.Info("round over", "round", m.Round, "decided", o.Decided, "winner", o.Ship, "score_a", m.Scores[object.PlayerA], "score_b", m.Scores[object.PlayerB])
}

func (m *Match) updateEndRound(dt time.Duration) {
	m.roundTimer.Tick(dt)
	if !m.cueFired && m.roundTimer.Passed(config.RoundEndCueAt) {
		m.cueFired = true
		m.events.Emit(object.Event{Type: object.EventRoundEndCue})
	}
	if !m.roundTimer.IsDone() {
		return
	}
	if m.matchPointReached() {
		m.endMatch()
		return
	}
	m.startPlay()
}

func (m *Match) matchPointReached() bool {
	for _, s := range m.Scores {
		if s >= m.TargetScore {
			return true
		}
	}
	return false
}

func (m *Match) endMatch() {
	m.Banner = matchBanner(m)
	m.matchTimer.Restart()
	m.setScene(SceneEndMatch)

	leader, _ := m.Leader()
	m.events.Emit(object.Event{Type: object.EventMatchOver, Player: leader, Ship: m.Players[leader].ShipType})
	m.logger.Info("match over", "rounds", m.Round, "score_a", m.Scores[object.PlayerA], "score_b", m.Scores[object.PlayerB])
}

// updateEndMatch waits out the result screen, then starts a new match with
// the same ships.
func (m *Match) updateEndMatch(dt time.Duration) {
	m.matchTimer.Tick(dt)
	if !m.matchTimer.IsDone() {
		return
	}
	m.Scores = [object.PlayerCount]int{}
	m.Round = 0
	m.startPlay()
}

func (m *Match) setScene(s Scene) {
	if m.Scene == s {
		return
	}
	m.logger.Debug("scene change", "from", m.Scene, "to", s)
	m.Scene = s
}
