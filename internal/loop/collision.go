package loop

import (
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/particle"
	"github.com/tomz197/starduel/internal/physics"
)

// targetOrder is the order ships are tested against each torpedo.
var targetOrder = [object.PlayerCount]object.PlayerID{object.PlayerB, object.PlayerA}

// resolveCollisions runs the three collision categories in order. The
// first hit in a category ends that category; categories are independent
// and may all fire in one frame.
func (m *Match) resolveCollisions() {
	var world [object.PlayerCount]object.CircleSet
	for i := range m.Players {
		world[i] = m.Players[i].Ship.WorldCircles()
	}

	m.checkShipCollision(&world)
	m.checkTorpedoHits(&world)
	m.checkStarCollisions(&world)
}

// checkShipCollision destroys both ships when any of their circles touch.
func (m *Match) checkShipCollision(world *[object.PlayerCount]object.CircleSet) {
	a, b := m.Ship(object.PlayerA), m.Ship(object.PlayerB)
	if !a.Collidable() || !b.Collidable() {
		return
	}
	if !physics.AnyOverlap(world[object.PlayerA].Slice(), world[object.PlayerB].Slice()) {
		return
	}
	m.destroyShip(object.PlayerA)
	m.destroyShip(object.PlayerB)
	m.endRound(Outcome{})
}

// checkTorpedoHits finds the first torpedo touching an opposing ship. The
// shooter scores and the scan stops; later hits this frame are ignored.
func (m *Match) checkTorpedoHits(world *[object.PlayerCount]object.CircleSet) {
	for i := 0; i < m.Torpedoes.Len(); i++ {
		torp := m.Torpedoes.At(i)
		probe := [1]physics.Circle{torp.Circle()}

		for _, target := range targetOrder {
			if torp.Owner == target || !m.Ship(target).Collidable() {
				continue
			}
			if !physics.AnyOverlap(world[target].Slice(), probe[:]) {
				continue
			}

			shooter := torp.Owner
			m.Torpedoes.Remove(i)
			m.destroyShip(target)
			m.Scores[shooter]++
			m.endRound(Outcome{Decided: true, Winner: shooter, Ship: m.Players[shooter].ShipType})
			return
		}
	}
}

// checkStarCollisions destroys any ship touching the star and credits the
// other player.
func (m *Match) checkStarCollisions(world *[object.PlayerCount]object.CircleSet) {
	star := [1]physics.Circle{m.Star.Circle()}
	for i := range m.Players {
		id := m.Players[i].ID
		if !m.Ship(id).Collidable() {
			continue
		}
		if !physics.AnyOverlap(world[id].Slice(), star[:]) {
			continue
		}

		other := id.Other()
		m.destroyShip(id)
		m.Scores[other]++
		m.endRound(Outcome{Decided: true, Winner: other, Ship: m.Players[other].ShipType})
		return
	}
}

// destroyShip freezes a ship where it is and sets off its explosion.
func (m *Match) destroyShip(id object.PlayerID) {
	ship := m.Ship(id)
	if ship.Destroyed {
		return
	}
	if ship.Thrusting {
		m.events.Emit(object.Event{Type: object.EventThrustStop, Player: id, Ship: ship.Type, Pos: ship.Pos})
	}
	ship.Destroy()
	m.Particles.SpawnBurst(particle.EmitterShipDestruction, ship.Pos)
	m.events.Emit(object.Event{Type: object.EventShipDestroyed, Player: id, Ship: ship.Type, Pos: ship.Pos})
	m.logger.Debug("ship destroyed", "player", id, "ship", ship.Type, "x", ship.Pos.X, "y", ship.Pos.Y)
}
