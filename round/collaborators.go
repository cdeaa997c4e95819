package round

import (
	"github.com/google/uuid"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/session"
	"github.com/zucenko/arena/shrink"
)

// NoAttacker is passed to a hit callback when the arena itself defeated the player.
const NoAttacker input.Slot = -1

// Actor is a spawned player body inside the physics collaborator.
type Actor interface {
	Accelerate(angle float64)
	Aim(angle float64)
	Fire()
	StopAutoFire()
	Dash()
	Reload()
}

// World is the physics and rendering collaborator. onHit must be called once,
// when the actor is removed from the simulation, with the slot that caused it.
type World interface {
	shrink.TileGrid
	Spawns() []model.Coord
	Spawn(slot input.Slot, at model.Coord, onHit func(attacker input.Slot)) Actor
}

// Scoreboard receives the outcome of every completed round.
type Scoreboard interface {
	RoundComplete(res session.Result)
}

// Listener observes a round. All calls happen on the game loop.
type Listener interface {
	RoundStarted(id uuid.UUID, number int, spawns map[input.Slot]model.Coord)
	TileSealed(c model.Coord, sealed int)
	PlayerEliminated(victim, attacker input.Slot)
}

type nopListener struct{}

func (nopListener) RoundStarted(uuid.UUID, int, map[input.Slot]model.Coord) {}
func (nopListener) TileSealed(model.Coord, int)                             {}
func (nopListener) PlayerEliminated(input.Slot, input.Slot)                 {}
