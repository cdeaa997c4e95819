package arena

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
)

// Actor is one player body. Its methods are the round controller's verbs.
type Actor struct {
	Slot    input.Slot
	Pos     Vec
	Vel     Vec
	Facing  float64
	Ammo    int
	Shield  int
	Removed bool

	thrust    *float64
	autoFire  bool
	firing    bool
	cooldown  float64
	reloading float64
	dashWait  float64

	tuning Tuning
	world  *World
	onHit  func(attacker input.Slot)
}

func (a *Actor) Accelerate(angle float64) {
	a.thrust = &angle
}

func (a *Actor) Aim(angle float64) {
	a.Facing = angle
}

func (a *Actor) Fire() {
	a.firing = a.tuning.AutoFire
	a.shoot()
}

func (a *Actor) StopAutoFire() {
	a.firing = false
}

func (a *Actor) Dash() {
	if a.Removed || a.dashWait > 0 {
		return
	}
	dir := a.Facing
	if a.thrust != nil {
		dir = *a.thrust
	}
	a.Vel = a.Vel.Add(Heading(dir).Scale(dashImpulse))
	a.dashWait = a.tuning.DashCooldown
}

func (a *Actor) Reload() {
	if a.Removed || a.reloading > 0 || a.Ammo >= a.tuning.Magazine {
		return
	}
	a.reloading = a.tuning.ReloadTime
}

func (a *Actor) Reloading() bool {
	return a.reloading > 0
}

func (a *Actor) shoot() {
	if a.Removed || a.cooldown > 0 || a.reloading > 0 || a.Ammo == 0 {
		return
	}
	a.Ammo--
	a.cooldown = fireCooldown
	h := Heading(a.Facing)
	a.world.Blasts = append(a.world.Blasts, &Blast{
		Pos:   a.Pos.Add(h.Scale(ActorRadius + BlastRadius + 1)),
		Vel:   h.Scale(a.tuning.BlastSpeed),
		Owner: a.Slot,
	})
}

func (a *Actor) step(dt float64) {
	a.cooldown = math.Max(0, a.cooldown-dt)
	a.dashWait = math.Max(0, a.dashWait-dt)
	if a.reloading > 0 {
		a.reloading -= dt
		if a.reloading <= 0 {
			a.reloading = 0
			a.Ammo = a.tuning.Magazine
		}
	}
	if a.firing {
		a.shoot()
	}

	if a.thrust != nil {
		a.Vel = a.Vel.Add(Heading(*a.thrust).Scale(acceleration * dt))
		a.thrust = nil
	}
	a.Vel = a.Vel.Scale(math.Pow(damping, dt))
	limit := a.tuning.MaxSpeed
	if a.dashWait > 0 {
		limit += dashImpulse * a.tuning.DashKeep
	}
	if s := a.Vel.Len(); s > limit {
		a.Vel = a.Vel.Scale(limit / s)
	}

	// an actor half covered by a freshly sealed tile may still slide out
	stuck := a.world.blocked(a.Pos, ActorRadius)
	next := Vec{a.Pos.X + a.Vel.X*dt, a.Pos.Y}
	if !stuck && a.world.blocked(next, ActorRadius) {
		a.Vel.X = 0
	} else {
		a.Pos = next
	}
	next = Vec{a.Pos.X, a.Pos.Y + a.Vel.Y*dt}
	if !stuck && a.world.blocked(next, ActorRadius) {
		a.Vel.Y = 0
	} else {
		a.Pos = next
	}
}

func (a *Actor) takeHit(attacker input.Slot) {
	if a.Shield > 0 {
		a.Shield--
		logger.Log.WithFields(log.Fields{"slot": a.Slot, "shield": a.Shield}).Debug("shield absorbed blast")
		return
	}
	a.remove(attacker)
}

func (a *Actor) remove(attacker input.Slot) {
	if a.Removed {
		return
	}
	a.Removed = true
	a.Vel = Vec{}
	a.firing = false
	if a.onHit != nil {
		a.onHit(attacker)
	}
}
