package arena

import (
	"github.com/zucenko/arena/session"
)

// Stock tuning, in pixels and seconds.
const (
	TileSize = 32.0

	ActorRadius  = 11.0
	BlastRadius  = 4.0
	acceleration = 1400.0
	damping      = 0.002 // fraction of speed left after one second without thrust
	maxSpeed     = 220.0
	dashImpulse  = 520.0
	dashCooldown = 1.0
	blastSpeed   = 480.0
	blastLife    = 3.0
	fireCooldown = 0.18
	reloadTime   = 1.2
	magazine     = 6
)

// Tuning is the actor tuning after mods.
type Tuning struct {
	MaxSpeed     float64
	DashCooldown float64
	DashKeep     float64
	BlastSpeed   float64
	ReloadTime   float64
	Magazine     int
	Shield       int
	Bounces      int
	AutoFire     bool
	SelfImmune   bool
}

func TuningFor(l session.Levels) Tuning {
	return Tuning{
		MaxSpeed:     maxSpeed * (1 + 0.15*float64(l.Of(session.JustPlainFaster))),
		DashCooldown: dashCooldown * (1 - 0.2*float64(l.Of(session.DashRecovery))),
		DashKeep:     0.25 + 0.15*float64(l.Of(session.DashRecovery)),
		BlastSpeed:   blastSpeed * (1 + 0.25*float64(l.Of(session.FasterBlaster))),
		ReloadTime:   reloadTime * (1 - 0.2*float64(l.Of(session.FasterReload))),
		Magazine:     magazine + 3*l.Of(session.AmmoBlammo),
		Shield:       l.Of(session.Shield),
		Bounces:      l.Of(session.BlastBounce),
		AutoFire:     l.Of(session.AutoBlaster) > 0,
		SelfImmune:   l.Of(session.BlastBounce) > 0,
	}
}
