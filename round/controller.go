// Package round runs one round of the arena: spawning, input bindings, arena
// shrinking, kill attribution and the hand off to the scoreboard.
package round

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/arena/clock"
	"github.com/zucenko/arena/input"
	"github.com/zucenko/arena/logger"
	"github.com/zucenko/arena/model"
	"github.com/zucenko/arena/session"
	"github.com/zucenko/arena/shrink"
)

var (
	ErrNotEnoughSpawns = errors.New("not enough spawn points")
	ErrStarted         = errors.New("round already started")
)

type State int

const (
	Setup State = iota
	Active
	Ending
	Complete
)

func (s State) Name() string {
	switch s {
	case Setup:
		return "SETUP"
	case Active:
		return "ACTIVE"
	case Ending:
		return "ENDING"
	case Complete:
		return "COMPLETE"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Options struct {
	Cols, Rows     int
	Center         model.Coord
	ShrinkInterval time.Duration
	EndDelay       time.Duration
	Rand           *rand.Rand
	Listener       Listener
}

// Player is the per round record of one active slot.
type Player struct {
	Slot       input.Slot
	Spawn      model.Coord
	Kills      []input.Slot
	Eliminated bool

	actor Actor
}

type Controller struct {
	ID     uuid.UUID
	Number int

	state   State
	session *session.Session
	router  *input.Router
	world   World
	clock   *clock.Clock
	board   Scoreboard
	opts    Options

	players    []*Player
	bySlot     map[input.Slot]*Player
	eliminated []input.Slot

	spiral      *shrink.Spiral
	scheduler   *shrink.Scheduler
	shrinkTimer *clock.Timer
	endTimer    *clock.Timer

	log *log.Entry
}

func New(sess *session.Session, router *input.Router, world World, clk *clock.Clock, board Scoreboard, opts Options) (*Controller, error) {
	spiral, err := shrink.NewSpiral(opts.Cols, opts.Rows, opts.Center)
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}
	c := &Controller{
		ID:      uuid.New(),
		Number:  sess.Round + 1,
		state:   Setup,
		session: sess,
		router:  router,
		world:   world,
		clock:   clk,
		board:   board,
		opts:    opts,
		bySlot:  make(map[input.Slot]*Player),
		spiral:  spiral,
	}
	c.log = logger.Log.WithFields(log.Fields{"round": c.Number, "round_id": c.ID})
	return c, nil
}

func (c *Controller) State() State {
	return c.state
}

// Players returns the active set in slot order. Slots eliminated in earlier
// rounds are not part of it.
func (c *Controller) Players() []*Player {
	return c.players
}

func (c *Controller) Player(slot input.Slot) (*Player, bool) {
	p, ok := c.bySlot[slot]
	return p, ok
}

// Remaining counts active players still in the round.
func (c *Controller) Remaining() int {
	n := 0
	for _, p := range c.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// EndProgress runs from 0 to 1 across the ENDING delay.
func (c *Controller) EndProgress() float32 {
	if c.endTimer == nil {
		return 0
	}
	return c.endTimer.Progress()
}

// Start spawns the eligible players on distinct random spawn markers, binds
// their controllers and starts sealing the arena.
func (c *Controller) Start() error {
	if c.state != Setup {
		return ErrStarted
	}
	eligible := c.session.Eligible()
	spawns := append([]model.Coord(nil), c.world.Spawns()...)
	if len(spawns) < len(eligible) {
		return fmt.Errorf("%d players, %d spawns: %w", len(eligible), len(spawns), ErrNotEnoughSpawns)
	}

	c.router.ResetCallbacks()
	players := make([]*Player, 0, len(eligible))
	for _, slot := range eligible {
		i := c.opts.Rand.Intn(len(spawns))
		at := spawns[i]
		spawns = append(spawns[:i], spawns[i+1:]...)

		p := &Player{Slot: slot, Spawn: at}
		if err := c.bind(p); err != nil {
			c.router.ResetCallbacks()
			return err
		}
		players = append(players, p)
	}

	placed := make(map[input.Slot]model.Coord, len(players))
	for _, p := range players {
		p.actor = c.world.Spawn(p.Slot, p.Spawn, c.hitBy(p.Slot))
		c.players = append(c.players, p)
		c.bySlot[p.Slot] = p
		placed[p.Slot] = p.Spawn
	}

	c.scheduler = shrink.NewScheduler(c.spiral, c.world)
	c.shrinkTimer = c.clock.Loop(c.opts.ShrinkInterval, c.sealNext)
	c.state = Active
	c.opts.Listener.RoundStarted(c.ID, c.Number, placed)
	c.log.WithField("players", len(c.players)).Info("round started")
	return nil
}

// bind installs the player's handlers. They reach the actor when fired, so
// binding can happen before the spawn.
func (c *Controller) bind(p *Player) error {
	live := func(fn func(Actor)) input.Handler {
		return func() {
			if !p.Eliminated && p.actor != nil {
				fn(p.actor)
			}
		}
	}
	bindings := []struct {
		press  bool
		button input.Button
		fn     func(Actor)
	}{
		{true, input.Fire, Actor.Fire},
		{false, input.Fire, Actor.StopAutoFire},
		{true, input.Dash, Actor.Dash},
		{true, input.Reload, Actor.Reload},
	}
	for _, b := range bindings {
		var err error
		if b.press {
			err = c.router.OnPress(p.Slot, b.button, live(b.fn))
		} else {
			err = c.router.OnRelease(p.Slot, b.button, live(b.fn))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Update is the per frame step: stick input for every live player in slot
// order, then the end of round check.
func (c *Controller) Update() {
	if c.state != Active && c.state != Ending {
		return
	}
	for _, p := range c.players {
		if p.Eliminated {
			continue
		}
		if angle, ok := c.router.LeftStickAngle(p.Slot); ok {
			p.actor.Accelerate(angle)
		}
		if angle, ok := c.router.RightStickAngle(p.Slot); ok {
			p.actor.Aim(angle)
		}
	}

	if c.state == Active && c.Remaining() <= 1 {
		c.state = Ending
		c.endTimer = c.clock.After(c.opts.EndDelay, c.complete)
		c.log.WithField("remaining", c.Remaining()).Info("round ending")
	}
}

func (c *Controller) hitBy(victim input.Slot) func(attacker input.Slot) {
	return func(attacker input.Slot) {
		p := c.bySlot[victim]
		if c.state == Setup || c.state == Complete || p == nil || p.Eliminated {
			return
		}
		p.Eliminated = true
		c.eliminated = append(c.eliminated, victim)

		fields := log.Fields{"victim": victim}
		if a, ok := c.bySlot[attacker]; ok {
			a.Kills = append(a.Kills, victim)
			fields["attacker"] = attacker
		}
		c.opts.Listener.PlayerEliminated(victim, attacker)
		c.log.WithFields(fields).Info("player eliminated")
	}
}

func (c *Controller) sealNext() {
	at, ok := c.scheduler.Step()
	if !ok {
		c.shrinkTimer.Stop()
		c.log.WithField("sealed", c.scheduler.Sealed()).Info("arena fully sealed")
		return
	}
	c.opts.Listener.TileSealed(at, c.scheduler.Sealed())
}

func (c *Controller) complete() {
	if c.state == Complete {
		return
	}
	c.state = Complete
	c.shrinkTimer.Stop()
	c.router.ResetCallbacks()

	res := c.Result()
	c.board.RoundComplete(res)
	c.log.WithField("kills", res.Kills).Info("round complete")
}

// Result snapshots the kill lists of every session slot and who went out.
func (c *Controller) Result() session.Result {
	kills := make([][]input.Slot, c.session.Players)
	for i := range kills {
		kills[i] = []input.Slot{}
		if p, ok := c.bySlot[input.Slot(i)]; ok {
			kills[i] = append(kills[i], p.Kills...)
		}
	}
	return session.Result{
		RoundID:    c.ID,
		Round:      c.Number,
		Players:    c.session.Players,
		Kills:      kills,
		Eliminated: append([]input.Slot(nil), c.eliminated...),
	}
}
