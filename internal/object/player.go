package object

import "github.com/tomz197/starduel/internal/loop/config"

// PlayerID identifies one of the two seats.
type PlayerID int

const (
	PlayerA PlayerID = iota
	PlayerB
	PlayerCount
)

func (id PlayerID) String() string {
	switch id {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "?"
	}
}

// Other returns the opposing player.
func (id PlayerID) Other() PlayerID {
	if id == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Player is a seat: the ship it flies and this frame's input.
type Player struct {
	ID       PlayerID
	ShipType ShipType
	Ship     Ship
	Input    Input
}

// NewPlayer creates a player flying the given ship type, already spawned.
func NewPlayer(id PlayerID, shipType ShipType) Player {
	p := Player{ID: id, ShipType: shipType}
	p.Respawn()
	return p
}

// Respawn re-initializes the ship at the player's spawn point and clears
// the held input.
func (p *Player) Respawn() {
	p.Ship = NewShip(p.ShipType, config.SpawnPositions[p.ID], config.SpawnRotations[p.ID])
	p.Input = Input{}
}
