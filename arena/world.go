// Package arena is a small top down simulation standing in for the physics
// collaborator: actors, blasts and tile collision on the walkable grid.
package arena

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/round"
	"github.com/zucenko/arena/session"
)

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) Tile() model.Coord {
	return model.Coord{X: int(math.Floor(v.X / TileSize)), Y: int(math.Floor(v.Y / TileSize))}
}

// Heading turns a stick angle (0 is up, clockwise) into a unit vector in screen space.
func Heading(angle float64) Vec {
	return Vec{math.Sin(angle), -math.Cos(angle)}
}

// TileCenter is the pixel center of a tile.
func TileCenter(c model.Coord) Vec {
	return Vec{(float64(c.X) + 0.5) * TileSize, (float64(c.Y) + 0.5) * TileSize}
}

type Blast struct {
	Pos, Vel Vec
	Owner    input.Slot
	Bounced  int
	age      float64
	dead     bool
}

type World struct {
	Grid   *model.Grid
	Actors []*Actor
	Blasts []*Blast

	levels func(input.Slot) session.Levels
}

// NewWorld wraps a grid. levels may be nil, every actor then gets stock tuning.
func NewWorld(g *model.Grid, levels func(input.Slot) session.Levels) *World {
	if levels == nil {
		levels = func(input.Slot) session.Levels { return session.Levels{} }
	}
	return &World{Grid: g, levels: levels}
}

func (w *World) IsWall(c model.Coord) bool {
	return w.Grid.IsWall(c)
}

// SetWall seals a tile. Any actor standing on it is crushed.
func (w *World) SetWall(c model.Coord) bool {
	if !w.Grid.SetWall(c) {
		return false
	}
	for _, a := range w.Actors {
		if !a.Removed && a.Pos.Tile() == c {
			a.remove(round.NoAttacker)
		}
	}
	return true
}

func (w *World) Spawns() []model.Coord {
	return w.Grid.Spawns
}

func (w *World) Spawn(slot input.Slot, at model.Coord, onHit func(attacker input.Slot)) round.Actor {
	t := TuningFor(w.levels(slot))
	a := &Actor{
		Slot:   slot,
		Pos:    TileCenter(at),
		Ammo:   t.Magazine,
		Shield: t.Shield,
		tuning: t,
		world:  w,
		onHit:  onHit,
	}
	w.Actors = append(w.Actors, a)
	logger.Log.WithFields(log.Fields{"slot": slot, "tile": at.String()}).Debug("actor spawned")
	return a
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	for _, a := range w.Actors {
		if a.Removed {
			continue
		}
		a.step(dt)
		if w.Grid.IsWall(a.Pos.Tile()) {
			a.remove(round.NoAttacker)
		}
	}
	for _, b := range w.Blasts {
		if !b.dead {
			w.stepBlast(b, dt)
		}
	}
	live := w.Blasts[:0]
	for _, b := range w.Blasts {
		if !b.dead {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(w.Blasts); i++ {
		w.Blasts[i] = nil
	}
	w.Blasts = live
}

// blocked reports whether a circle at p overlaps any wall tile.
func (w *World) blocked(p Vec, r float64) bool {
	lo := Vec{p.X - r, p.Y - r}.Tile()
	hi := Vec{p.X + r, p.Y + r}.Tile()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			if w.Grid.IsWall(model.Coord{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}

func (w *World) stepBlast(b *Blast, dt float64) {
	b.age += dt
	if b.age >= blastLife {
		b.dead = true
		return
	}
	next := b.Pos.Add(b.Vel.Scale(dt))
	if w.Grid.IsWall(next.Tile()) {
		owner := w.actor(b.Owner)
		if owner == nil || b.Bounced >= owner.tuning.Bounces {
			b.dead = true
			return
		}
		if w.Grid.IsWall(Vec{next.X, b.Pos.Y}.Tile()) {
			b.Vel.X = -b.Vel.X
		}
		if w.Grid.IsWall(Vec{b.Pos.X, next.Y}.Tile()) {
			b.Vel.Y = -b.Vel.Y
		}
		b.Bounced++
		return
	}
	b.Pos = next

	for _, a := range w.Actors {
		if a.Removed || a.Pos.Dist(b.Pos) > ActorRadius+BlastRadius {
			continue
		}
		if a.Slot == b.Owner && (b.Bounced == 0 || a.tuning.SelfImmune) {
			continue
		}
		b.dead = true
		a.takeHit(b.Owner)
		return
	}
}

func (w *World) actor(slot input.Slot) *Actor {
	for _, a := range w.Actors {
		if a.Slot == slot {
			return a
		}
	}
	return nil
}

// Live lists the actors still in the simulation.
func (w *World) Live() []*Actor {
	out := make([]*Actor, 0, len(w.Actors))
	for _, a := range w.Actors {
		if !a.Removed {
			out = append(out, a)
		}
	}
	return out
}
