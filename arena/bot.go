package arena

import (
	"math"
	"math/rand"

	"github.com/zucenko/arena/input"
)

// Bot plays a slot by feeding the router the samples a controller would send.
// It never touches the actor directly, so every bot action goes through the
// same bindings as a human player.
type Bot struct {
	Slot input.Slot

	router *input.Router
	world  *World
	rng    *rand.Rand

	wander     float64
	wanderLeft float64
	held       []input.Code
}

func NewBot(slot input.Slot, router *input.Router, world *World, rng *rand.Rand) *Bot {
	return &Bot{Slot: slot, router: router, world: world, rng: rng}
}

// Attach points the bot at the next round's world.
func (b *Bot) Attach(world *World) {
	b.world = world
}

// Think samples the bot's "controller" for one frame.
func (b *Bot) Think(dt float64) error {
	for _, c := range b.held {
		if err := b.router.ButtonUpdate(b.Slot, c, false); err != nil {
			return err
		}
	}
	b.held = b.held[:0]

	me := b.world.actor(b.Slot)
	if me == nil || me.Removed {
		return b.sticks(0, 0, 0, 0)
	}

	b.wanderLeft -= dt
	if b.wanderLeft <= 0 {
		b.wander = b.rng.Float64() * 2 * math.Pi
		b.wanderLeft = 0.8 + b.rng.Float64()*0.8
	}
	move := Heading(b.wander).Scale(0.9)

	var aim Vec
	if target := b.nearestEnemy(me); target != nil {
		d := target.Pos.Sub(me.Pos)
		aim = d.Scale(1 / d.Len())
	}
	if err := b.sticks(move.X, move.Y, aim.X, aim.Y); err != nil {
		return err
	}

	switch {
	case me.Ammo == 0 && !me.Reloading():
		return b.press(input.CodeRightTrigger)
	case aim != Vec{} && b.rng.Float64() < 0.08:
		return b.press(input.CodeRightBumper)
	case b.rng.Float64() < 0.01:
		return b.press(input.CodeLeftBumper)
	}
	return nil
}

func (b *Bot) press(c input.Code) error {
	b.held = append(b.held, c)
	return b.router.ButtonUpdate(b.Slot, c, true)
}

func (b *Bot) sticks(lx, ly, rx, ry float64) error {
	axes := []struct {
		axis  input.Axis
		value float64
	}{
		{input.AxisLeftX, lx},
		{input.AxisLeftY, ly},
		{input.AxisRightX, rx},
		{input.AxisRightY, ry},
	}
	for _, a := range axes {
		if err := b.router.AxisUpdate(b.Slot, a.axis, a.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) nearestEnemy(me *Actor) *Actor {
	var best *Actor
	bestDist := math.Inf(1)
	for _, a := range b.world.Live() {
		if a.Slot == me.Slot {
			continue
		}
		if d := a.Pos.Dist(me.Pos); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}
