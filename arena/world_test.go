package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/round"
	"github.com/zucenko/arena/session"
)

const frame = 1.0 / 60

func run(w *World, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		w.Step(frame)
	}
}

func TestHeading(t *testing.T) {
	up := Heading(0)
	assert.InDelta(t, 0, up.X, 1e-12)
	assert.InDelta(t, -1, up.Y, 1e-12)

	right := Heading(math.Pi / 2)
	assert.InDelta(t, 1, right.X, 1e-12)
	assert.InDelta(t, 0, right.Y, 1e-12)
}

func TestHeadingMatchesStickAngle(t *testing.T) {
	r := input.NewRouter(nil)
	require.NoError(t, r.AxisUpdate(0, input.AxisLeftX, 0.6))
	require.NoError(t, r.AxisUpdate(0, input.AxisLeftY, -0.8))
	angle, ok := r.LeftStickAngle(0)
	require.True(t, ok)

	h := Heading(angle)
	assert.InDelta(t, 0.6, h.X, 1e-9)
	assert.InDelta(t, -0.8, h.Y, 1e-9)
}

func TestActorStopsAtWalls(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(10, 10), nil)
	a := w.Spawn(0, model.Coord{X: 2, Y: 2}, nil).(*Actor)

	for i := 0; i < 300; i++ {
		a.Accelerate(-math.Pi / 2) // left
		w.Step(frame)
	}
	assert.False(t, a.Removed)
	assert.GreaterOrEqual(t, a.Pos.X, TileSize+ActorRadius-0.001)
	assert.Equal(t, 1, a.Pos.Tile().X)
}

func TestBlastKillsAndCredits(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(20, 10), nil)
	var hitBy []input.Slot
	shooter := w.Spawn(0, model.Coord{X: 2, Y: 5}, nil).(*Actor)
	w.Spawn(1, model.Coord{X: 10, Y: 5}, func(a input.Slot) { hitBy = append(hitBy, a) })

	shooter.Aim(math.Pi / 2)
	shooter.Fire()
	assert.Equal(t, magazine-1, shooter.Ammo)
	run(w, 1)

	assert.Equal(t, []input.Slot{0}, hitBy)
	assert.Len(t, w.Live(), 1)
	assert.Empty(t, w.Blasts)
}

func TestShieldAbsorbsOneBlast(t *testing.T) {
	sess, err := session.New(2)
	require.NoError(t, err)
	_, err = sess.Upgrade(1, session.Shield)
	require.NoError(t, err)

	w := NewWorld(model.NewBorderedGrid(20, 10), sess.Levels)
	shooter := w.Spawn(0, model.Coord{X: 2, Y: 5}, nil).(*Actor)
	target := w.Spawn(1, model.Coord{X: 10, Y: 5}, nil).(*Actor)
	assert.Equal(t, 1, target.Shield)

	shooter.Aim(math.Pi / 2)
	shooter.Fire()
	run(w, 1)
	assert.False(t, target.Removed)
	assert.Zero(t, target.Shield)

	shooter.Fire()
	run(w, 1)
	assert.True(t, target.Removed)
}

func TestBlastDiesOnWallWithoutBounce(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(10, 10), nil)
	a := w.Spawn(0, model.Coord{X: 5, Y: 5}, nil).(*Actor)
	a.Aim(0)
	a.Fire()
	run(w, 0.5)
	assert.Empty(t, w.Blasts)
	assert.False(t, a.Removed, "own blast never hits before a bounce")
}

func TestBouncedBlastCanHitOwner(t *testing.T) {
	sess, err := session.New(1)
	require.NoError(t, err)
	w := NewWorld(model.NewBorderedGrid(10, 10), sess.Levels)
	var hitBy []input.Slot
	a := w.Spawn(0, model.Coord{X: 5, Y: 5}, func(s input.Slot) { hitBy = append(hitBy, s) }).(*Actor)
	a.tuning.Bounces = 1

	a.Aim(0)
	a.Fire()
	run(w, 1)
	assert.True(t, a.Removed)
	assert.Equal(t, []input.Slot{0}, hitBy)
}

func TestSelfImmunityWithBlastBounce(t *testing.T) {
	sess, err := session.New(1)
	require.NoError(t, err)
	_, err = sess.Upgrade(0, session.BlastBounce)
	require.NoError(t, err)
	w := NewWorld(model.NewBorderedGrid(10, 10), sess.Levels)
	a := w.Spawn(0, model.Coord{X: 5, Y: 5}, nil).(*Actor)

	a.Aim(0)
	a.Fire()
	run(w, 1)
	assert.False(t, a.Removed)
}

func TestReload(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(10, 10), nil)
	a := w.Spawn(0, model.Coord{X: 5, Y: 5}, nil).(*Actor)
	for i := 0; i < magazine; i++ {
		a.Fire()
		run(w, fireCooldown+frame)
	}
	assert.Zero(t, a.Ammo)
	a.Fire()
	assert.Zero(t, a.Ammo)

	a.Reload()
	assert.True(t, a.Reloading())
	run(w, reloadTime+frame)
	assert.Equal(t, magazine, a.Ammo)
}

func TestAutoFireUntilReleased(t *testing.T) {
	sess, err := session.New(1)
	require.NoError(t, err)
	_, err = sess.Upgrade(0, session.AutoBlaster)
	require.NoError(t, err)
	w := NewWorld(model.NewBorderedGrid(40, 22), sess.Levels)
	a := w.Spawn(0, model.Coord{X: 20, Y: 11}, nil).(*Actor)

	a.Fire()
	run(w, 0.5)
	shots := magazine - a.Ammo
	assert.Greater(t, shots, 1)

	a.StopAutoFire()
	run(w, 0.5)
	assert.Equal(t, shots, magazine-a.Ammo)
}

func TestSealedTileCrushesActor(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(10, 10), nil)
	var hitBy []input.Slot
	w.Spawn(0, model.Coord{X: 4, Y: 4}, func(s input.Slot) { hitBy = append(hitBy, s) })

	assert.True(t, w.SetWall(model.Coord{X: 4, Y: 4}))
	assert.Equal(t, []input.Slot{round.NoAttacker}, hitBy)
	assert.False(t, w.SetWall(model.Coord{X: 4, Y: 4}))
}

func TestDashCooldown(t *testing.T) {
	w := NewWorld(model.NewBorderedGrid(40, 22), nil)
	a := w.Spawn(0, model.Coord{X: 20, Y: 11}, nil).(*Actor)
	a.Aim(math.Pi / 2)

	a.Dash()
	assert.InDelta(t, dashImpulse, a.Vel.X, 1e-9)
	a.Dash()
	assert.InDelta(t, dashImpulse, a.Vel.X, 1e-9, "second dash waits for the cooldown")
}

func TestTuningFor(t *testing.T) {
	stock := TuningFor(session.Levels{})
	assert.Equal(t, magazine, stock.Magazine)
	assert.False(t, stock.AutoFire)

	boosted := TuningFor(session.Levels{session.AmmoBlammo: 2, session.JustPlainFaster: 1, session.AutoBlaster: 1})
	assert.Equal(t, magazine+6, boosted.Magazine)
	assert.Greater(t, boosted.MaxSpeed, stock.MaxSpeed)
	assert.True(t, boosted.AutoFire)
}
